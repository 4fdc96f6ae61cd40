// Package prayer stores the meditation prayer journal and the intercessory
// prayer list. Both are id-keyed lists persisted as one blob each.
package prayer

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/logger"
	"github.com/julianstephens/codelit/internal/models"
	"github.com/julianstephens/codelit/internal/storage"
)

// ErrNotFound is returned when an id does not match any stored prayer.
var ErrNotFound = errors.New("prayer not found")

// Record is satisfied by pointers to models.Prayer and to any type that
// embeds it.
type Record[T any] interface {
	*T
	Meta() *models.Prayer
}

type Store[T any, PT Record[T]] struct {
	provider storage.Provider
	key      string
	items    []T

	now   func() time.Time
	newID func() (string, error)
}

func newStore[T any, PT Record[T]](p storage.Provider, key string) *Store[T, PT] {
	return &Store[T, PT]{
		provider: p,
		key:      key,
		items:    []T{},
		now:      time.Now,
		newID: func() (string, error) {
			id, err := uuid.NewV7()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
	}
}

// NewPrayerStore returns the store for the "meditationPrayers" list.
func NewPrayerStore(p storage.Provider) *Store[models.Prayer, *models.Prayer] {
	return newStore[models.Prayer, *models.Prayer](p, constants.KeyMeditationPrayers)
}

func meta[T any, PT Record[T]](rec *T) *models.Prayer {
	return PT(rec).Meta()
}

// Load reads the persisted list. A missing key is an empty list; an
// unparseable blob is logged and treated as empty.
func (s *Store[T, PT]) Load() ([]T, error) {
	data, err := s.provider.Get(s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.items = []T{}
			return s.All(), nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", s.key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("Stored prayers could not be parsed, starting empty", "key", s.key, "error", err)
		items = nil
	}
	if items == nil {
		items = []T{}
	}
	s.items = items
	return s.All(), nil
}

func (s *Store[T, PT]) Save() error {
	items := s.items
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", s.key, err)
	}
	if err := s.provider.Put(s.key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.key, err)
	}
	return nil
}

func (s *Store[T, PT]) index(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.items {
		if meta[T, PT](&s.items[i]).ID == id {
			return i
		}
	}
	return -1
}

func (s *Store[T, PT]) All() []T {
	return slices.Clone(s.items)
}

func (s *Store[T, PT]) Len() int {
	return len(s.items)
}

func (s *Store[T, PT]) Get(id string) (T, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Upsert creates rec when its id is empty, assigning a new id and creation
// date. Otherwise it replaces the stored record with that id, keeping the
// original creation date and stamping UpdatedAt.
func (s *Store[T, PT]) Upsert(rec T) (T, error) {
	m := meta[T, PT](&rec)
	now := s.now()

	if m.ID == "" {
		id, err := s.newID()
		if err != nil {
			return rec, fmt.Errorf("failed to generate id: %w", err)
		}
		m.ID = id
		m.Date = now
		m.UpdatedAt = nil
		s.items = append(s.items, rec)
	} else {
		i := s.index(m.ID)
		if i < 0 {
			return rec, fmt.Errorf("%w: %s", ErrNotFound, m.ID)
		}
		m.Date = meta[T, PT](&s.items[i]).Date
		m.UpdatedAt = &now
		s.items[i] = rec
	}
	return rec, s.Save()
}

// Delete removes the record with id. A missing id is a no-op.
func (s *Store[T, PT]) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.items = slices.Delete(s.items, i, i+1)
	return s.Save()
}

// Sorted returns all records, newest creation date first.
func (s *Store[T, PT]) Sorted() []T {
	out := s.All()
	slices.SortStableFunc(out, func(a, b T) int {
		return meta[T, PT](&b).Date.Compare(meta[T, PT](&a).Date)
	})
	return out
}
