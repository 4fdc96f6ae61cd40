package system

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/codelit/internal/cli"
	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/storage"
	"github.com/julianstephens/codelit/internal/storage/sqlite"
)

func setupTestDoctorDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	ctx := cli.NewContext(store, tempDir, "")

	cleanup := func() {
		store.Close()
	}

	return ctx, cleanup
}

const duplicated = `[
  {"date":"2024-03-05","bibleReference":"요한복음 1:1","title":"first","capture":"c","organize":"o","distill":"d","express":"e"},
  {"date":"2024-03-06","bibleReference":"창세기 1:1","title":"other","capture":"c","organize":"o","distill":"d","express":"e"},
  {"date":"2024-03-05","bibleReference":"요한복음 1:1","title":"second","capture":"c","organize":"o","distill":"d","express":"e"}
]`

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	// Should pass all checks (except backups which is a warning)
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v", err)
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if _, err := ctx.Backups().CreateBackup(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}
	if err := checkBackupsPresent(ctx); err != nil {
		t.Errorf("expected backups check to pass: %v", err)
	}
}

func TestDoctorCmd_MissingBackups(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := checkBackupsPresent(ctx); err == nil {
		t.Error("expected warning when no backups exist")
	}
	// Missing backups is a warning, not a failure
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command should not fail on missing backups: %v", err)
	}
}

func TestDoctorCmd_SchemaVersion(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := checkSchemaVersion(ctx); err != nil {
		t.Errorf("fresh database should be at the latest schema: %v", err)
	}
}

func TestDoctorCmd_UninitializedStore(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	ctx := cli.NewContext(store, t.TempDir(), "")

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail when the store is not initialized")
	}
}

func TestDoctorCmd_CorruptList(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := ctx.Store.Put(constants.KeyMeditationPrayers, []byte(`{not json`)); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail on an unparseable list")
	}
}

func TestDoctorCmd_Duplicates(t *testing.T) {
	ctx, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := ctx.Store.Put(constants.KeyMeditations, []byte(duplicated)); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("doctor should report duplicate meditations")
	}
	if ctx.Journal.Len() != 3 {
		t.Errorf("doctor without --fix must not modify data, got %d records", ctx.Journal.Len())
	}

	if err := (&DoctorCmd{Fix: true}).Run(ctx); err != nil {
		t.Fatalf("doctor --fix failed: %v", err)
	}
	if ctx.Journal.Len() != 2 {
		t.Errorf("expected 2 meditations after fix, got %d", ctx.Journal.Len())
	}
	rec, _ := ctx.Journal.Get("2024-03-05")
	if rec.Title != "second" {
		t.Errorf("expected the last write to win, got %q", rec.Title)
	}
}
