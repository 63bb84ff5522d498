package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dohsimpson/habittrove/internal/constants"
	"github.com/dohsimpson/habittrove/internal/logger"
	"github.com/dohsimpson/habittrove/internal/models"
)

// JSONStore keeps each resource in its own JSON file under a data directory. Writes go through a
// temp file and a rename, and at most one write per resource runs at a time.
type JSONStore struct {
	dir   string
	locks map[string]*sync.Mutex
}

var _ Provider = (*JSONStore)(nil)

func NewJSONStore(dataDir string) *JSONStore {
	locks := make(map[string]*sync.Mutex, len(constants.DataFiles))
	for _, name := range constants.DataFiles {
		locks[name] = &sync.Mutex{}
	}
	return &JSONStore{dir: dataDir, locks: locks}
}

// Init creates the data directory and writes defaults for every missing resource file.
func (s *JSONStore) Init() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	defaults := map[string]any{
		constants.SettingsFile: models.DefaultSettings(),
		constants.HabitsFile:   emptyHabits(),
		constants.CoinsFile:    emptyCoins(),
		constants.WishlistFile: models.WishlistData{Items: []models.WishlistItem{}},
		constants.AuthFile:     models.UserData{Users: []models.User{}},
	}
	for _, name := range constants.DataFiles {
		if _, err := os.Stat(s.path(name)); err == nil {
			continue
		}
		if err := s.write(name, defaults[name]); err != nil {
			return err
		}
		logger.Debug("Created data file", "file", name)
	}
	return nil
}

// Load reads every resource.
func (s *JSONStore) Load() (models.State, error) {
	var state models.State
	var err error

	if state.Settings, err = s.LoadSettings(); err != nil {
		return models.State{}, err
	}
	if state.Habits, err = s.LoadHabits(); err != nil {
		return models.State{}, err
	}
	if state.Coins, err = s.LoadCoins(); err != nil {
		return models.State{}, err
	}
	if state.Wishlist, err = s.LoadWishlist(); err != nil {
		return models.State{}, err
	}
	if state.Users, err = s.LoadUsers(); err != nil {
		return models.State{}, err
	}
	return state, nil
}

func (s *JSONStore) LoadSettings() (models.Settings, error) {
	settings := models.DefaultSettings()
	if err := s.read(constants.SettingsFile, &settings); err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	return s.write(constants.SettingsFile, settings)
}

func (s *JSONStore) LoadHabits() (models.HabitsData, error) {
	data := emptyHabits()
	if err := s.read(constants.HabitsFile, &data); err != nil {
		return models.HabitsData{}, err
	}
	if data.Habits == nil {
		data.Habits = []models.Habit{}
	}
	return data, nil
}

func (s *JSONStore) SaveHabits(data models.HabitsData) error {
	return s.write(constants.HabitsFile, data)
}

func (s *JSONStore) LoadCoins() (models.CoinsData, error) {
	data := emptyCoins()
	if err := s.read(constants.CoinsFile, &data); err != nil {
		return models.CoinsData{}, err
	}
	if data.Transactions == nil {
		data.Transactions = []models.CoinTransaction{}
	}
	return data, nil
}

func (s *JSONStore) SaveCoins(data models.CoinsData) error {
	return s.write(constants.CoinsFile, data)
}

func (s *JSONStore) LoadWishlist() (models.WishlistData, error) {
	data := models.WishlistData{Items: []models.WishlistItem{}}
	if err := s.read(constants.WishlistFile, &data); err != nil {
		return models.WishlistData{}, err
	}
	return data, nil
}

func (s *JSONStore) LoadUsers() (models.UserData, error) {
	data := models.UserData{Users: []models.User{}}
	if err := s.read(constants.AuthFile, &data); err != nil {
		return models.UserData{}, err
	}
	return data, nil
}

// DataDir returns the directory holding the resource files.
//
// Concurrency note:
//   - A JSONStore serializes writes per resource within one process only.
//   - Running several processes against the same data directory can lose updates; the
//     freshness hash is how clients notice.
func (s *JSONStore) DataDir() string {
	return s.dir
}

func (s *JSONStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *JSONStore) lock(name string) func() {
	mu, ok := s.locks[name]
	if !ok {
		panic(fmt.Sprintf("storage: unknown resource %q", name))
	}
	mu.Lock()
	return mu.Unlock
}

// read decodes name into v. A missing or empty file leaves v untouched.
func (s *JSONStore) read(name string, v any) error {
	defer s.lock(name)()

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *JSONStore) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}

	defer s.lock(name)()

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func emptyHabits() models.HabitsData {
	return models.HabitsData{Habits: []models.Habit{}}
}

func emptyCoins() models.CoinsData {
	return models.CoinsData{Transactions: []models.CoinTransaction{}}
}
