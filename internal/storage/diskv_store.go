package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const diskvMarker = ".codelit"

// DiskvStore writes each key to its own file under a base directory.
type DiskvStore struct {
	basePath string
	d        *diskv.Diskv
}

func NewDiskvStore(basePath string) *DiskvStore {
	return &DiskvStore{basePath: strings.TrimRight(basePath, "/")}
}

func (s *DiskvStore) open() {
	s.d = diskv.New(diskv.Options{
		BasePath:     s.basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
		FilePerm:     0600,
		PathPerm:     0700,
	})
}

func (s *DiskvStore) Init() error {
	if err := os.MkdirAll(s.basePath, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	s.open()
	if s.d.Has(diskvMarker) {
		return fmt.Errorf("storage already initialized at %s", s.basePath)
	}
	if err := s.d.Write(diskvMarker, []byte("1")); err != nil {
		return fmt.Errorf("failed to write store marker: %w", err)
	}
	return nil
}

func (s *DiskvStore) Load() error {
	if _, err := os.Stat(s.basePath); os.IsNotExist(err) {
		return NotInitialized()
	}
	s.open()
	if !s.d.Has(diskvMarker) {
		return NotInitialized()
	}
	return nil
}

func (s *DiskvStore) Close() error {
	s.d = nil
	return nil
}

func (s *DiskvStore) Get(key string) ([]byte, error) {
	if s.d == nil {
		return nil, ErrNotLoaded
	}
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return val, nil
}

func (s *DiskvStore) Put(key string, value []byte) error {
	if s.d == nil {
		return ErrNotLoaded
	}
	if key == diskvMarker {
		return fmt.Errorf("reserved key: %s", key)
	}
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *DiskvStore) Keys() ([]string, error) {
	if s.d == nil {
		return nil, ErrNotLoaded
	}
	var keys []string
	for k := range s.d.Keys(nil) {
		if k == diskvMarker {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *DiskvStore) GetConfigPath() string {
	return s.basePath
}
