package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/codelit/internal/backup"
	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/form"
	"github.com/julianstephens/codelit/internal/journal"
	"github.com/julianstephens/codelit/internal/logger"
	"github.com/julianstephens/codelit/internal/models"
	"github.com/julianstephens/codelit/internal/prayer"
	"github.com/julianstephens/codelit/internal/remote"
	"github.com/julianstephens/codelit/internal/storage"
	"github.com/julianstephens/codelit/internal/view"
)

type Context struct {
	Store     storage.Provider
	ConfigDir string
	RemoteURL string

	Journal       *journal.Store
	Prayers       *prayer.Store[models.Prayer, *models.Prayer]
	Intercessions *prayer.IntercessionStore
	Controller    *form.Controller
	App           *view.App
}

// NewContext builds the stores over an unloaded provider. Call Open once
// the provider has been loaded.
func NewContext(store storage.Provider, configDir, remoteURL string) *Context {
	c := &Context{
		Store:         store,
		ConfigDir:     configDir,
		RemoteURL:     remoteURL,
		Journal:       journal.NewStore(store),
		Prayers:       prayer.NewPrayerStore(store),
		Intercessions: prayer.NewIntercessionStore(store),
	}
	c.App = view.NewApp(c.Journal, c.Prayers, c.Intercessions)
	return c
}

// Open reads all three lists and wires the form controller. The remote
// client is attached only when an endpoint is configured or discovered.
func (c *Context) Open() error {
	if _, err := c.Journal.Load(); err != nil {
		return fmt.Errorf("failed to load meditations: %w", err)
	}
	if _, err := c.Prayers.Load(); err != nil {
		return fmt.Errorf("failed to load prayers: %w", err)
	}
	if _, err := c.Intercessions.Load(); err != nil {
		return fmt.Errorf("failed to load intercessions: %w", err)
	}

	var saver form.RemoteSaver
	client, err := remote.Resolve(c.RemoteURL)
	switch {
	case err == nil:
		logger.Debug("Remote save enabled", "endpoint", client.Endpoint())
		saver = client
	case errors.Is(err, remote.ErrNoEndpoint):
	default:
		logger.Warn("Sync service not usable, saving locally only", "error", err)
	}
	c.Controller = form.NewController(c.Journal, c.Prayers, c.Intercessions, saver)
	return nil
}

func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.Store, c.ConfigDir)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.Backups().CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseDate accepts YYYY-MM-DD, "today", or "yesterday".
func ParseDate(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return time.Now().Format(constants.DateFormat), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1).Format(constants.DateFormat), nil
	}
	if !journal.ValidDate(s) {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD or 'today'", s)
	}
	return s, nil
}

// Confirm asks a y/N question on stdin. assumeYes skips the prompt.
func Confirm(prompt string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// ResolveBackupPath maps a bare backup filename onto the backup directory.
func ResolveBackupPath(mgr *backup.Manager, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	candidate := filepath.Join(mgr.GetBackupDir(), name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return name
}
