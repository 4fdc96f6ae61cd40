// Package remote posts meditations to an optional local sync service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/models"
)

// ErrNoEndpoint means no URL is configured and no running sync service was found.
var ErrNoEndpoint = errors.New("no sync endpoint configured")

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

type Client struct {
	endpoint string
	secret   string
	http     *http.Client
}

// New returns a client for an explicitly configured endpoint.
func New(endpoint string) *Client {
	return &Client{endpoint: strings.TrimRight(endpoint, "/"), http: http.DefaultClient}
}

// Resolve returns a client for endpoint when set, otherwise one discovered
// from the sync service lockfile.
func Resolve(endpoint string) (*Client, error) {
	if strings.TrimSpace(endpoint) != "" {
		return New(endpoint), nil
	}
	dir, err := LockfileDir()
	if err != nil {
		return nil, err
	}
	return Discover(filepath.Join(dir, constants.SyncLockfileName))
}

// LockfileDir is the directory the sync service writes its lockfile to.
func LockfileDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.AppName), nil
}

// Discover reads a "port|pid|secret" lockfile and checks that pid is a live
// sync service process.
func Discover(lockfilePath string) (*Client, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoEndpoint
		}
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return nil, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, errors.New("invalid process ID in lockfile")
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return nil, errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return nil, fmt.Errorf("%s is not running (stale lockfile)", constants.SyncProcessName)
	}
	if !strings.HasPrefix(process.Executable(), constants.SyncProcessName) {
		return nil, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.SyncProcessName, process.Executable())
	}

	c := New(fmt.Sprintf("http://127.0.0.1:%d/meditations", port))
	c.secret = secret
	return c, nil
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// SaveMeditation POSTs rec as JSON. Any non-2xx status is an error; the
// response body is only used for the error message.
func (c *Client) SaveMeditation(ctx context.Context, rec models.Meditation) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode meditation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set(constants.SyncSecretHeader, c.secret)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote save failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	return fmt.Errorf("remote save failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
}
