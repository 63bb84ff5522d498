package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/dohsimpson/habittrove/internal/constants"
	"github.com/dohsimpson/habittrove/internal/ledger"
	"github.com/dohsimpson/habittrove/internal/models"
	"github.com/dohsimpson/habittrove/internal/scheduler"
	"github.com/dohsimpson/habittrove/internal/utils"
)

type CompleteCmd struct {
	ID string `arg:"" help:"Habit or task ID."`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	tz, err := ctx.ResolveTimezone()
	if err != nil {
		return err
	}
	data, err := ctx.Store.LoadHabits()
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	i, err := findHabit(data.Habits, c.ID)
	if err != nil {
		return err
	}

	h := data.Habits[i]
	if h.Archived {
		return fmt.Errorf("%q is archived", h.Name)
	}

	today := ctx.Scheduler.Today(tz)
	done := progress(h, today, tz)
	if done >= h.Target() {
		return fmt.Errorf("%q is already complete for %s", h.Name, dayLabel(today, tz))
	}

	ctx.PerformAutomaticBackup()

	h.Completions = append(slices.Clone(h.Completions), utils.FormatForStorage(ctx.Clock.Now()))
	data.Habits[i] = h
	if err := ctx.Store.SaveHabits(data); err != nil {
		return fmt.Errorf("failed to save habits: %w", err)
	}
	done++

	// Coins are credited once, on the completion that reaches the target.
	if done == h.Target() {
		tx := ledger.CompletionTransaction(h, "", ctx.Clock)
		if err := ctx.recordTransaction(tx); err != nil {
			return err
		}
		ctx.printf("%s %s (%d/%d), +%d coins\n", doneStyle.Render("✓"), h.Name, done, h.Target(), tx.Amount)
		return nil
	}

	ctx.printf("%s %s (%d/%d)\n", dueStyle.Render("+"), h.Name, done, h.Target())
	return nil
}

type UndoCmd struct {
	ID string `arg:"" help:"Habit or task ID."`
}

func (c *UndoCmd) Run(ctx *Context) error {
	tz, err := ctx.ResolveTimezone()
	if err != nil {
		return err
	}
	data, err := ctx.Store.LoadHabits()
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	i, err := findHabit(data.Habits, c.ID)
	if err != nil {
		return err
	}

	h := data.Habits[i]
	today := ctx.Scheduler.Today(tz)
	before := progress(h, today, tz)

	idx := lastCompletion(h, today, tz)
	if idx < 0 {
		return fmt.Errorf("%q has no completion to undo for %s", h.Name, dayLabel(today, tz))
	}

	ctx.PerformAutomaticBackup()

	h.Completions = slices.Delete(slices.Clone(h.Completions), idx, idx+1)
	data.Habits[i] = h
	if err := ctx.Store.SaveHabits(data); err != nil {
		return fmt.Errorf("failed to save habits: %w", err)
	}

	if before >= h.Target() && before-1 < h.Target() {
		tx := ledger.UndoTransaction(h, "", ctx.Clock)
		if err := ctx.recordTransaction(tx); err != nil {
			return err
		}
		ctx.printf("Undid %s (%d/%d), %d coins\n", h.Name, before-1, h.Target(), tx.Amount)
		return nil
	}

	ctx.printf("Undid %s (%d/%d)\n", h.Name, before-1, h.Target())
	return nil
}

// progress counts completions toward the current target: today's for habits, all of them for
// tasks.
func progress(h models.Habit, today time.Time, tz string) int {
	if h.IsTask() {
		return len(h.Completions)
	}
	return scheduler.CompletionsOnDate(h, today, tz)
}

// lastCompletion returns the index of the most recent completion that counts toward progress, or
// -1.
func lastCompletion(h models.Habit, today time.Time, tz string) int {
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	day := utils.CalendarDate(today, loc)

	idx := -1
	var latest time.Time
	for i, c := range h.Completions {
		t, err := utils.ParseStoredTimestamp(c)
		if err != nil {
			continue
		}
		if !h.IsTask() && utils.CalendarDate(t, loc) != day {
			continue
		}
		if idx < 0 || !t.Before(latest) {
			idx, latest = i, t
		}
	}
	return idx
}

// recordTransaction prepends tx to the ledger and recomputes the balance.
func (c *Context) recordTransaction(tx models.CoinTransaction) error {
	coins, err := c.Store.LoadCoins()
	if err != nil {
		return fmt.Errorf("failed to load coins: %w", err)
	}
	coins.Transactions = ledger.Prepend(coins.Transactions, tx)
	coins.Balance = ledger.Balance(coins.Transactions)
	if err := c.Store.SaveCoins(coins); err != nil {
		return fmt.Errorf("failed to save coins: %w", err)
	}
	return nil
}

// dayLabel renders date for messages about completions.
func dayLabel(date time.Time, tz string) string {
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return utils.FormatForDisplay(date, loc, constants.DisplayDateFormat)
}
