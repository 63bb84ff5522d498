package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/dohsimpson/habittrove/internal/backup"
	"github.com/dohsimpson/habittrove/internal/constants"
	"github.com/dohsimpson/habittrove/internal/frequency"
	"github.com/dohsimpson/habittrove/internal/logger"
	"github.com/dohsimpson/habittrove/internal/models"
	"github.com/dohsimpson/habittrove/internal/scheduler"
	"github.com/dohsimpson/habittrove/internal/storage"
	"github.com/dohsimpson/habittrove/internal/utils"
)

var ErrHabitNotFound = errors.New("habit not found")

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Parser    *frequency.Parser
	Clock     utils.Clock

	// Timezone overrides settings.system.timezone when set.
	Timezone string
	// Out receives command output; nil means stdout.
	Out io.Writer
	// In answers confirmation prompts; nil means stdin.
	In io.Reader
}

// NewContext wires the scheduler and parser to one clock.
func NewContext(store storage.Provider, clock utils.Clock, timezone string) *Context {
	clock = utils.OrSystem(clock)
	return &Context{
		Store:     store,
		Scheduler: scheduler.New(clock),
		Parser:    frequency.NewParser(clock),
		Clock:     clock,
		Timezone:  timezone,
	}
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) in() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// ResolveTimezone picks the flag value, then the stored setting, then UTC.
func (c *Context) ResolveTimezone() (string, error) {
	if c.Timezone != "" {
		if !utils.ValidateTimezone(c.Timezone) {
			return "", fmt.Errorf("invalid timezone: %s", c.Timezone)
		}
		return c.Timezone, nil
	}

	settings, err := c.Store.LoadSettings()
	if err != nil {
		return "", err
	}
	tz := settings.System.Timezone
	if tz == "" {
		return constants.DefaultTimezone, nil
	}
	if !utils.ValidateTimezone(tz) {
		logger.Warn("Invalid timezone in settings, using default", "timezone", tz)
		return constants.DefaultTimezone, nil
	}
	return tz, nil
}

// Backups returns a backup manager for the store's data directory.
func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.Store.DataDir(), c.Clock)
}

// PerformAutomaticBackup creates an automatic backup when enabled in settings and silently
// handles errors
func (c *Context) PerformAutomaticBackup() {
	settings, err := c.Store.LoadSettings()
	if err != nil || !settings.System.AutoBackupEnabled {
		return
	}
	if _, err := c.Backups().CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// findHabit returns the index of the habit with id.
func findHabit(habits []models.Habit, id string) (int, error) {
	i := slices.IndexFunc(habits, func(h models.Habit) bool { return h.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	return i, nil
}
