package constants

import "time"

// SessionState represents the current view of the TUI application
type SessionState int

const (
	AppName            = "codelit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/codelit/codelit.db"
	DefaultConfigFile  = "~/.config/codelit/config.toml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Storage keys, one serialized list per key
	KeyMeditations         = "meditations"
	KeyMeditationPrayers   = "meditationPrayers"
	KeyIntercessoryPrayers = "intercessoryPrayers"

	// Listing limits
	SearchLimit          = 10
	HomeRecentCount      = 3
	DefaultPageSize      = 10
	RecentPreviewLength  = 50
	ResultPreviewLength  = 100
	PrayerPreviewLength  = 80
	CalendarGridCells    = 42
	CalendarWeekdayCount = 7

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "codelit-"
	BackupFileSuffix = ".json"

	// Remote sync constants
	SyncLockfileName = "codelit-sync.lock"
	SyncSecretHeader = "X-Codelit-Secret"
	SyncProcessName  = "codelit-sync"

	// StatusDuration is how long a transient status message stays in the TUI
	StatusDuration = 3 * time.Second

	// RemoteSaveTimeout bounds the best-effort remote save made from the TUI and CLI
	RemoteSaveTimeout = 5 * time.Second

	// Environment variables
	EnvStore        = "CODELIT_STORE"
	EnvDBConnection = "CODELIT_DB_CONNECTION"
	EnvRemoteURL    = "CODELIT_REMOTE_URL"
	EnvDebug        = "CODELIT_DEBUG"
)

// Session states. The first six are the navigable views, in tab order.
const (
	StateHome SessionState = iota
	StateCalendar
	StateBibleList
	StateMeditationPrayer
	StateIntercessoryPrayer
	StateSearch
	StateBookDetail
	StateDetail
	StateEditMeditation
	StateEditPrayer
	StateEditIntercession
	StateAnswer
	StateConfirmDelete
)

// ViewCount is the number of top-level navigable views.
const ViewCount = 6
