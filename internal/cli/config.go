package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	"github.com/mitchellh/go-homedir"

	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/storage/postgres"
)

// TOML is a kong.ConfigurationLoader for flat config files such as
//
//	store = "~/journal/codelit.json"
//	remote_url = "http://127.0.0.1:8787/meditations"
//	debug = true
//
// Keys match flag names with dashes or underscores.
func TOML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if _, err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	var resolver kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if v, ok := values[flag.Name]; ok {
			return v, nil
		}
		if v, ok := values[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
			return v, nil
		}
		return nil, nil
	}
	return resolver, nil
}

// ConfigDir is where logs and backups live for a store target: next to a
// file store, or the default config directory for PostgreSQL.
func ConfigDir(store string) (string, error) {
	target := store
	if target == "" || postgres.IsConnString(target) {
		target = constants.DefaultConfigPath
	}
	path, err := homedir.Expand(target)
	if err != nil {
		return "", err
	}
	return filepath.Dir(filepath.Clean(path)), nil
}
