// Package backup snapshots every stored blob to timestamped JSON files and
// restores them through any storage.Provider.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/logger"
	"github.com/julianstephens/codelit/internal/storage"
)

// Snapshot is the on-disk backup format. Blobs hold the raw stored text so
// even an unparseable value restores byte for byte.
type Snapshot struct {
	Version   int               `json:"version"`
	CreatedAt time.Time         `json:"createdAt"`
	Source    string            `json:"source"`
	Blobs     map[string]string `json:"blobs"`
}

// BackupInfo describes one backup file.
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

type Manager struct {
	provider  storage.Provider
	backupDir string
	now       func() time.Time
}

// NewManager keeps backups in <configDir>/backups.
func NewManager(p storage.Provider, configDir string) *Manager {
	return &Manager{
		provider:  p,
		backupDir: filepath.Join(configDir, constants.BackupDirName),
		now:       time.Now,
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup skips rotation when called from a restore so the snapshot
// of the current state cannot push out the file being restored.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	snap, err := m.snapshot()
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize backup: %w", err)
	}

	path, err := m.uniquePath()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return path, nil
}

func (m *Manager) snapshot() (Snapshot, error) {
	keys, err := m.provider.Keys()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list stored keys: %w", err)
	}
	snap := Snapshot{
		Version:   1,
		CreatedAt: m.now().UTC(),
		Source:    m.provider.GetConfigPath(),
		Blobs:     make(map[string]string, len(keys)),
	}
	for _, k := range keys {
		v, err := m.provider.Get(k)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to read %s: %w", k, err)
		}
		snap.Blobs[k] = string(v)
	}
	return snap, nil
}

func (m *Manager) uniquePath() (string, error) {
	now := m.now()
	name := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}

	path := name(now.Format("20060102-1504"))
	if !exists(path) {
		return path, nil
	}
	stamp := now.Format("20060102-150405")
	path = name(stamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", errors.New("failed to generate unique backup filename")
		}
		path = name(fmt.Sprintf("%s-%d", stamp, counter))
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// parseTimestamp reads the time out of a backup file name.
func parseTimestamp(name string) (time.Time, bool) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
	if t, err := time.ParseInLocation("20060102-150405", stamp, time.Local); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("20060102-1504", stamp, time.Local); err == nil {
		return t, true
	}
	// Counter suffix: 20060102-150405-N
	if i := strings.LastIndex(stamp, "-"); i > 0 {
		if t, err := time.ParseInLocation("20060102-150405", stamp[:i], time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ListBackups returns backups newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}
		ts, ok := parseTimestamp(name)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	slices.SortStableFunc(backups, func(a, b BackupInfo) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return backups, nil
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// ReadBackup loads and checks a backup file.
func ReadBackup(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("backup file does not exist: %s", path)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	if snap.Version != 1 || snap.Blobs == nil {
		return Snapshot{}, fmt.Errorf("backup file is corrupted or invalid: unsupported version %d", snap.Version)
	}
	return snap, nil
}

// RestoreBackup snapshots the current state, then writes every blob from
// the backup. It returns the path of the pre-restore snapshot.
func (m *Manager) RestoreBackup(path string) (string, error) {
	snap, err := ReadBackup(path)
	if err != nil {
		return "", err
	}

	current, err := m.createBackup(true)
	if err != nil {
		return "", fmt.Errorf("failed to backup current state before restore: %w", err)
	}

	keys := make([]string, 0, len(snap.Blobs))
	for k := range snap.Blobs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := m.provider.Put(k, []byte(snap.Blobs[k])); err != nil {
			return current, fmt.Errorf("failed to restore %s: %w", k, err)
		}
	}
	// Lists the backup predates are emptied rather than left as they were.
	for _, k := range []string{constants.KeyMeditations, constants.KeyMeditationPrayers, constants.KeyIntercessoryPrayers} {
		if _, ok := snap.Blobs[k]; ok {
			continue
		}
		if err := m.provider.Put(k, []byte("[]")); err != nil {
			return current, fmt.Errorf("failed to reset %s: %w", k, err)
		}
	}
	return current, nil
}
