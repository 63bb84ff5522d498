package constants

import "time"

const (
	AppName        = "habittrove"
	Version        = "v0.1.0"
	DefaultDataDir = "./data"

	// DefaultTimezone is used when neither the flag nor settings name one.
	DefaultTimezone = "UTC"

	// Data files, one per resource type.
	SettingsFile = "settings.json"
	HabitsFile   = "habits.json"
	CoinsFile    = "coins.json"
	WishlistFile = "wishlist.json"
	AuthFile     = "auth.json"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habittrove-"
	BackupFileSuffix = ".zip"

	// Freshness poller
	DefaultWatchInterval = 30 * time.Second
)

// DataFiles lists every persisted resource in backup order.
var DataFiles = []string{SettingsFile, HabitsFile, CoinsFile, WishlistFile, AuthFile}
