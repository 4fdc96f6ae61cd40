package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/storage"
)

func setupStore(t *testing.T) (*storage.JSONStore, string) {
	t.Helper()
	dir := t.TempDir()
	p := storage.NewJSONStore(filepath.Join(dir, "codelit.json"))
	if err := p.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := p.Put(constants.KeyMeditations, []byte(`[{"date":"2024-03-05","title":"t"}]`)); err != nil {
		t.Fatal(err)
	}
	return p, dir
}

// steppingClock advances one minute per call so backup names never collide.
func steppingClock() func() time.Time {
	next := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.Local)
	return func() time.Time {
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

func TestCreateBackup(t *testing.T) {
	p, dir := setupStore(t)
	mgr := NewManager(p, dir)
	mgr.now = steppingClock()

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Base(path) != "codelit-20240305-0900.json" {
		t.Errorf("unexpected backup name %s", filepath.Base(path))
	}
	snap, err := ReadBackup(path)
	if err != nil {
		t.Fatalf("ReadBackup failed: %v", err)
	}
	if !strings.Contains(snap.Blobs[constants.KeyMeditations], "2024-03-05") {
		t.Errorf("snapshot missing meditations: %+v", snap.Blobs)
	}
}

func TestCreateBackupSameMinute(t *testing.T) {
	p, dir := setupStore(t)
	mgr := NewManager(p, dir)
	fixed := time.Date(2024, time.March, 5, 9, 0, 30, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	third, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if first == second || second == third {
		t.Fatalf("expected unique names, got %s, %s, %s", first, second, third)
	}
	if filepath.Base(second) != "codelit-20240305-090030.json" {
		t.Errorf("expected seconds precision, got %s", filepath.Base(second))
	}
	if filepath.Base(third) != "codelit-20240305-090030-1.json" {
		t.Errorf("expected counter suffix, got %s", filepath.Base(third))
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Errorf("expected all three listed, got %d", len(backups))
	}
}

func TestListBackupsEmpty(t *testing.T) {
	p, dir := setupStore(t)
	backups, err := NewManager(p, dir).ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRotation(t *testing.T) {
	p, dir := setupStore(t)
	mgr := NewManager(p, dir)
	mgr.now = steppingClock()

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	if !backups[0].Timestamp.After(backups[len(backups)-1].Timestamp) {
		t.Error("expected newest first")
	}
	if _, err := os.Stat(filepath.Join(mgr.GetBackupDir(), "codelit-20240305-0900.json")); !os.IsNotExist(err) {
		t.Error("expected the oldest backup to be rotated out")
	}
}

func TestRestoreBackup(t *testing.T) {
	p, dir := setupStore(t)
	mgr := NewManager(p, dir)
	mgr.now = steppingClock()

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Put(constants.KeyMeditations, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	if err := p.Put(constants.KeyMeditationPrayers, []byte(`[{"id":"later"}]`)); err != nil {
		t.Fatal(err)
	}

	pre, err := mgr.RestoreBackup(path)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	got, _ := p.Get(constants.KeyMeditations)
	if !strings.Contains(string(got), "2024-03-05") {
		t.Errorf("meditations not restored: %s", got)
	}
	got, _ = p.Get(constants.KeyMeditationPrayers)
	if string(got) != "[]" {
		t.Errorf("prayers absent from the backup should be emptied, got %s", got)
	}

	preSnap, err := ReadBackup(pre)
	if err != nil {
		t.Fatalf("pre-restore snapshot unreadable: %v", err)
	}
	if preSnap.Blobs[constants.KeyMeditationPrayers] != `[{"id":"later"}]` {
		t.Errorf("pre-restore snapshot should hold the replaced state: %+v", preSnap.Blobs)
	}
}

func TestRestoreInvalidBackup(t *testing.T) {
	p, dir := setupStore(t)
	mgr := NewManager(p, dir)

	if _, err := mgr.RestoreBackup(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(bad); err == nil || !strings.Contains(err.Error(), "corrupted") {
		t.Errorf("expected corrupted error, got %v", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"codelit-20240305-0900.json", true},
		{"codelit-20240305-090030.json", true},
		{"codelit-20240305-090030-2.json", true},
		{"codelit-garbage.json", false},
	}
	for _, tt := range tests {
		if _, ok := parseTimestamp(tt.name); ok != tt.ok {
			t.Errorf("parseTimestamp(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}
