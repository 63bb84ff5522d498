package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dohsimpson/habittrove/internal/constants"
	"github.com/dohsimpson/habittrove/internal/frequency"
	"github.com/dohsimpson/habittrove/internal/models"
	"github.com/dohsimpson/habittrove/internal/recurrence"
	"github.com/dohsimpson/habittrove/internal/scheduler"
	"github.com/dohsimpson/habittrove/internal/utils"
)

// frequencyOrder sorts listings from the most to the least frequent cadence.
var frequencyOrder = map[recurrence.Frequency]int{
	recurrence.Daily:   0,
	recurrence.Weekly:  1,
	recurrence.Monthly: 2,
	recurrence.Yearly:  3,
}

type DueCmd struct {
	Date    string `help:"Date to check (YYYY-MM-DD). Defaults to today."`
	All     bool   `help:"Include habits that are not due."`
	ShowIDs bool   `help:"Show habit IDs." name:"show-ids"`
}

func (c *DueCmd) Run(ctx *Context) error {
	tz, err := ctx.ResolveTimezone()
	if err != nil {
		return err
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return err
	}

	date := ctx.Scheduler.Today(tz)
	if c.Date != "" {
		date, err = utils.ParseDateInLocation(c.Date, loc)
		if err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
		}
	}

	data, err := ctx.Store.LoadHabits()
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}

	habits := listable(data.Habits)
	ctx.println(titleStyle.Render(fmt.Sprintf("Habits for %s (%s)", utils.FormatForDisplay(date, loc, constants.DisplayDateFormat), tz)))

	shown := 0
	for _, h := range habits {
		status := ctx.Scheduler.Status(h, tz, date)
		if status == scheduler.NotDue && !c.All {
			continue
		}
		shown++

		done := progress(h, date, tz)
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", h.ID)
		}
		label := statusStyle(status).Render(fmt.Sprintf("%-9s", "["+status.String()+"]"))
		ctx.printf("  %s %s%s - %s (%d/%d, %d coins)\n",
			label, h.Name, idStr, frequency.Render(h.Schedule, tz), done, h.Target(), h.CoinReward)
	}

	if shown == 0 {
		ctx.println(mutedStyle.Render("  Nothing due."))
	}
	return nil
}

// listable drops archived habits and orders the rest: pinned first, then by cadence.
func listable(habits []models.Habit) []models.Habit {
	type entry struct {
		habit models.Habit
		rank  int
	}
	var entries []entry
	for _, h := range habits {
		if !h.Archived {
			entries = append(entries, entry{h, frequencyOrder[scheduler.FrequencyClass(h)]})
		}
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		if a.habit.Pinned != b.habit.Pinned {
			if a.habit.Pinned {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.rank, b.rank)
	})

	out := make([]models.Habit, len(entries))
	for i, e := range entries {
		out[i] = e.habit
	}
	return out
}

type RenderCmd struct {
	ID string `arg:"" help:"Habit or task ID."`
}

func (c *RenderCmd) Run(ctx *Context) error {
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
	ctx.printf("%s: %s\n", h.Name, frequency.Render(h.Schedule, tz))
	return nil
}

type ParseCmd struct {
	Text      []string `arg:"" help:"Schedule text, e.g. \"every week on Mon, Wed\" or \"tomorrow\"."`
	Recurring bool     `help:"Parse as a recurring habit schedule instead of a task due date."`
}

func (c *ParseCmd) Run(ctx *Context) error {
	tz, err := ctx.ResolveTimezone()
	if err != nil {
		return err
	}

	res, err := ctx.Parser.Parse(strings.Join(c.Text, " "), c.Recurring, tz)
	if res.Kind != frequency.KindNone {
		ctx.printResult(res, tz)
	}
	return err
}

func (c *Context) printResult(res frequency.Result, tz string) {
	switch res.Kind {
	case frequency.KindRule:
		c.printf("Rule:   %s\n", recurrence.Serialize(res.Rule))
		c.printf("Reads:  %s\n", frequency.Describe(res, tz))
	case frequency.KindInstant:
		c.printf("Due:    %s\n", frequency.Describe(res, tz))
		c.printf("Stored: %s\n", utils.FormatForStorage(res.Instant))
	}
}
