// Package migrations embeds the versioned SQL files applied by the sqlite
// and postgres backends.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
