package models

import "github.com/dohsimpson/habittrove/internal/constants"

// Settings represents application-wide settings
type Settings struct {
	UI      UISettings      `json:"ui"`
	System  SystemSettings  `json:"system"`
	Profile ProfileSettings `json:"profile"`
}

type UISettings struct {
	UseNumberFormatting bool `json:"useNumberFormatting"`
	UseGrouping         bool `json:"useGrouping"`
}

type SystemSettings struct {
	Timezone          string `json:"timezone"`     // IANA timezone name (e.g. "America/New_York")
	WeekStartDay      int    `json:"weekStartDay"` // 0=Sunday
	AutoBackupEnabled bool   `json:"autoBackupEnabled"`
	Language          string `json:"language,omitempty"`
}

type ProfileSettings struct{}

// DefaultSettings returns the settings written for a fresh data directory.
func DefaultSettings() Settings {
	return Settings{
		UI: UISettings{
			UseNumberFormatting: true,
			UseGrouping:         true,
		},
		System: SystemSettings{
			Timezone:          constants.DefaultTimezone,
			AutoBackupEnabled: true,
			Language:          "en",
		},
	}
}

// ApplyDefaultSettings fills in values missing from older settings files.
func ApplyDefaultSettings(settings *Settings) {
	if settings.System.Timezone == "" {
		settings.System.Timezone = constants.DefaultTimezone
	}
	if settings.System.Language == "" {
		settings.System.Language = "en"
	}
}
