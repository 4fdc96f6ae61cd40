package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/models"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withProcess(t *testing.T, exe string) {
	t.Helper()
	old := findProcessFunc
	t.Cleanup(func() { findProcessFunc = old })
	findProcessFunc = func(pid int) (ps.Process, error) {
		if exe == "" {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func writeLockfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), constants.SyncLockfileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSaveMeditation(t *testing.T) {
	var got models.Meditation
	var secret string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		secret = r.Header.Get(constants.SyncSecretHeader)
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	rec := models.Meditation{Date: "2024-03-05", BibleReference: "요한복음 3:16", Title: "사랑"}
	c := New(srv.URL)
	c.secret = "s3cret"
	if err := c.SaveMeditation(context.Background(), rec); err != nil {
		t.Fatalf("SaveMeditation failed: %v", err)
	}
	if got != rec {
		t.Errorf("server received %+v", got)
	}
	if secret != "s3cret" {
		t.Errorf("expected secret header, got %q", secret)
	}
}

func TestSaveMeditationNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := New(srv.URL).SaveMeditation(context.Background(), models.Meditation{Date: "2024-03-05"})
	if err == nil || !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected status error with body, got %v", err)
	}
}

func TestSaveMeditationTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	if err := New(url).SaveMeditation(context.Background(), models.Meditation{}); err == nil {
		t.Error("expected transport error from a closed server")
	}
}

func TestDiscover(t *testing.T) {
	withProcess(t, constants.SyncProcessName)

	c, err := Discover(writeLockfile(t, "4321|100|abc\n"))
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if c.Endpoint() != "http://127.0.0.1:4321/meditations" {
		t.Errorf("unexpected endpoint %q", c.Endpoint())
	}
	if c.secret != "abc" {
		t.Errorf("unexpected secret %q", c.secret)
	}
}

func TestDiscoverErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		exe     string
		want    string
	}{
		{"malformed", "4321|100", constants.SyncProcessName, "malformed"},
		{"bad port", "abc|100|s", constants.SyncProcessName, "invalid port"},
		{"port range", "70000|100|s", constants.SyncProcessName, "outside valid range"},
		{"bad pid", "4321|x|s", constants.SyncProcessName, "invalid process ID"},
		{"empty secret", "4321|100| ", constants.SyncProcessName, "secret"},
		{"stale pid", "4321|100|s", "", "not running"},
		{"wrong process", "4321|100|s", "bash", "is not"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withProcess(t, tt.exe)
			_, err := Discover(writeLockfile(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	c, err := Resolve("http://localhost:9000/api/")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if c.Endpoint() != "http://localhost:9000/api" {
		t.Errorf("unexpected endpoint %q", c.Endpoint())
	}

	dir := t.TempDir()
	old := userConfigDirFunc
	t.Cleanup(func() { userConfigDirFunc = old })
	userConfigDirFunc = func() (string, error) { return dir, nil }

	if _, err := Resolve(""); !errors.Is(err, ErrNoEndpoint) {
		t.Errorf("expected ErrNoEndpoint without a lockfile, got %v", err)
	}
}
