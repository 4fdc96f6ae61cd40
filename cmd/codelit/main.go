package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/codelit/internal/cli"
	"github.com/julianstephens/codelit/internal/cli/backups"
	"github.com/julianstephens/codelit/internal/cli/meditations"
	"github.com/julianstephens/codelit/internal/cli/prayers"
	"github.com/julianstephens/codelit/internal/cli/system"
	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/errors"
	"github.com/julianstephens/codelit/internal/logger"
	"github.com/julianstephens/codelit/internal/storage/backend"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    kong.ConfigFlag `help:"Load flag defaults from a TOML file."`
	Store     string          `help:"Store path (.db sqlite, .json file, .kv/ directory) or PostgreSQL connection string. Credentials must NOT be embedded in the connection string." env:"CODELIT_STORE" default:"~/.config/codelit/codelit.db"`
	RemoteURL string          `name:"remote-url" help:"Local sync service endpoint for best-effort meditation saves." env:"CODELIT_REMOTE_URL"`
	Debug     bool            `help:"Mirror logs to stderr." env:"CODELIT_DEBUG"`

	Init     system.InitCmd          `cmd:"" help:"Initialize codelit storage."`
	Tui      system.TuiCmd           `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Doctor   system.DoctorCmd        `cmd:"" help:"Run health checks and diagnostics."`
	Add      meditations.AddCmd      `cmd:"" help:"Write a meditation."`
	Edit     meditations.EditCmd     `cmd:"" help:"Edit a meditation."`
	Show     meditations.ShowCmd     `cmd:"" help:"Show a meditation."`
	Delete   meditations.DeleteCmd   `cmd:"" help:"Delete a meditation."`
	Recent   meditations.RecentCmd   `cmd:"" help:"List recent meditations."`
	Search   meditations.SearchCmd   `cmd:"" help:"Search meditations."`
	Calendar meditations.CalendarCmd `cmd:"" help:"Show a month calendar."`
	Books    meditations.BooksCmd    `cmd:"" help:"List Bible books with meditation counts."`
	Book     meditations.BookCmd     `cmd:"" help:"List meditations for one book."`
	Prayer   struct {
		Add    prayers.PrayerAddCmd    `cmd:"" help:"Add a meditation prayer."`
		Edit   prayers.PrayerEditCmd   `cmd:"" help:"Edit a meditation prayer."`
		List   prayers.PrayerListCmd   `cmd:"" help:"List meditation prayers." default:"1"`
		Delete prayers.PrayerDeleteCmd `cmd:"" help:"Delete a meditation prayer."`
	} `cmd:"" help:"Manage meditation prayers."`
	Intercession struct {
		Add    prayers.IntercessionAddCmd    `cmd:"" help:"Add an intercessory prayer."`
		Edit   prayers.IntercessionEditCmd   `cmd:"" help:"Edit an intercessory prayer."`
		List   prayers.IntercessionListCmd   `cmd:"" help:"List intercessory prayers by category." default:"1"`
		Answer prayers.IntercessionAnswerCmd `cmd:"" help:"Record an answer to an intercessory prayer."`
		Delete prayers.IntercessionDeleteCmd `cmd:"" help:"Delete an intercessory prayer."`
	} `cmd:"" help:"Manage intercessory prayers."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show where the connection string comes from."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

// Commands that manage the store themselves and must run before it loads.
var selfLoading = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("codelit"),
		kong.Description("Bible CODE meditation journal: Capture, Organize, Distill, Express"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(cli.TOML, constants.DefaultConfigFile),
		kong.Vars{"version": constants.Version},
	)

	configDir, err := cli.ConfigDir(CLI.Store)
	if err != nil {
		errors.InitFailure(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		errors.InitFailure(err)
	}

	store, kind, err := backend.Open(CLI.Store, constants.DefaultConfigPath)
	if err != nil {
		errors.InitFailure(err)
	}
	logger.Debug("Store selected", "kind", kind, "path", store.GetConfigPath())

	appCtx := cli.NewContext(store, configDir, CLI.RemoteURL)

	command := strings.Fields(ctx.Command())
	if len(command) == 0 || !selfLoading[command[0]] {
		if err := store.Load(); err != nil {
			errors.InitFailure(fmt.Errorf("%w (run 'codelit init' first)", err))
		}
		if err := appCtx.Open(); err != nil {
			errors.InitFailure(err)
		}
	}

	err = ctx.Run(appCtx)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close store", "error", cerr)
	}
	errors.Fatal(err)
}
