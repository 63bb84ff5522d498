package storage

import "github.com/dohsimpson/habittrove/internal/models"

// Provider persists the application state, one resource per file.
type Provider interface {
	// Lifecycle
	Init() error
	Load() (models.State, error)

	// Settings
	LoadSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits and tasks
	LoadHabits() (models.HabitsData, error)
	SaveHabits(models.HabitsData) error

	// Coins
	LoadCoins() (models.CoinsData, error)
	SaveCoins(models.CoinsData) error

	// Read-only resources
	LoadWishlist() (models.WishlistData, error)
	LoadUsers() (models.UserData, error)

	// Utils
	DataDir() string
}
