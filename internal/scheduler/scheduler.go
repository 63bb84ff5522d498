// Package scheduler decides, for a habit or task on a calendar date in a timezone, whether it is
// due, completed or overdue. Every decision is a pure function of the habit and the clock.
package scheduler

import (
	"time"

	"github.com/dohsimpson/habittrove/internal/logger"
	"github.com/dohsimpson/habittrove/internal/models"
	"github.com/dohsimpson/habittrove/internal/recurrence"
	"github.com/dohsimpson/habittrove/internal/utils"
)

// Status is the state of a habit on one date.
type Status int

const (
	NotDue Status = iota
	DueIncomplete
	DueComplete
	Overdue
)

func (s Status) String() string {
	switch s {
	case DueIncomplete:
		return "due"
	case DueComplete:
		return "done"
	case Overdue:
		return "overdue"
	default:
		return "not due"
	}
}

type Scheduler struct {
	clock utils.Clock
}

// New creates a Scheduler reading "now" from clock; nil uses the system clock.
func New(clock utils.Clock) *Scheduler {
	return &Scheduler{clock: utils.OrSystem(clock)}
}

// Today returns the current instant in timezone.
func (s *Scheduler) Today(timezone string) time.Time {
	return s.clock.Now().In(location(timezone))
}

// IsDue reports whether h is due on date's calendar day in timezone.
func (s *Scheduler) IsDue(h models.Habit, timezone string, date time.Time) bool {
	if h.Archived {
		return false
	}

	loc := location(timezone)
	switch sched := h.Schedule.(type) {
	case models.OneOffDueDate:
		return sched.IsSet() && utils.IsSameDay(sched.Due, date, loc)
	case models.RecurringSchedule:
		rule, err := recurrence.Deserialize(sched.Rule)
		if err != nil {
			logger.Warn("Unparseable habit frequency, treating as not due", "habit", h.ID, "frequency", sched.Rule, "error", err)
			return false
		}
		return occursOn(rule, date, loc)
	}
	return false
}

// occursOn anchors the rule at local midnight of date, takes its first occurrence and checks that
// the occurrence lands inside the same local day.
func occursOn(rule recurrence.Rule, date time.Time, loc *time.Location) bool {
	start := utils.StartOfDay(date, loc)
	end := utils.EndOfDay(date, loc)

	occ, ok, err := recurrence.FirstOccurrence(rule, start)
	if err != nil {
		logger.Warn("Failed to expand recurrence rule", "rule", recurrence.Serialize(rule), "error", err)
		return false
	}
	if !ok {
		return false
	}
	return !occ.Before(start) && !occ.After(end)
}

// IsDueToday reports whether h is due today in timezone.
func (s *Scheduler) IsDueToday(h models.Habit, timezone string) bool {
	return s.IsDue(h, timezone, s.Today(timezone))
}

// CompletionsOnDate counts completions of h that fall on date's calendar day in timezone.
func CompletionsOnDate(h models.Habit, date time.Time, timezone string) int {
	loc := location(timezone)
	day := utils.CalendarDate(date, loc)

	count := 0
	for _, c := range h.Completions {
		t, err := utils.ParseStoredTimestamp(c)
		if err != nil {
			continue
		}
		if utils.CalendarDate(t, loc) == day {
			count++
		}
	}
	return count
}

// IsCompletedOnDate reports whether h reached its target on date.
func IsCompletedOnDate(h models.Habit, date time.Time, timezone string) bool {
	return CompletionsOnDate(h, date, timezone) >= h.Target()
}

// IsCompleted reports whether h reached its target today.
func (s *Scheduler) IsCompleted(h models.Habit, timezone string) bool {
	return IsCompletedOnDate(h, s.Today(timezone), timezone)
}

// IsOverdue reports whether a non-archived task's due date is before today and it was never
// completed. Habits are never overdue.
func (s *Scheduler) IsOverdue(h models.Habit, timezone string) bool {
	due, ok := h.Schedule.(models.OneOffDueDate)
	if !ok || h.Archived || !due.IsSet() {
		return false
	}

	loc := location(timezone)
	if utils.CalendarDate(due.Due, loc) >= utils.CalendarDate(s.Today(timezone), loc) {
		return false
	}
	return !taskDone(h)
}

// taskDone counts every completion of a one-off task, early, on time or late.
func taskDone(h models.Habit) bool {
	return len(h.Completions) >= h.Target()
}

// Status combines IsDue, IsCompletedOnDate and IsOverdue for date.
func (s *Scheduler) Status(h models.Habit, timezone string, date time.Time) Status {
	loc := location(timezone)
	if utils.IsSameDay(date, s.Today(timezone), loc) && s.IsOverdue(h, timezone) {
		return Overdue
	}
	if !s.IsDue(h, timezone, date) {
		return NotDue
	}
	if IsCompletedOnDate(h, date, timezone) {
		return DueComplete
	}
	return DueIncomplete
}

// DueOn returns the habits due on date, preserving order.
func (s *Scheduler) DueOn(habits []models.Habit, timezone string, date time.Time) []models.Habit {
	var due []models.Habit
	for _, h := range habits {
		if s.IsDue(h, timezone, date) {
			due = append(due, h)
		}
	}
	return due
}

// FrequencyClass returns the cadence h is grouped and sorted by. Tasks count as daily.
func FrequencyClass(h models.Habit) recurrence.Frequency {
	sched, ok := h.Schedule.(models.RecurringSchedule)
	if !ok {
		return recurrence.Daily
	}
	rule, err := recurrence.Deserialize(sched.Rule)
	if err != nil {
		logger.Error("Invalid habit frequency, defaulting to daily", "habit", h.ID, "frequency", sched.Rule, "error", err)
		return recurrence.Daily
	}
	return rule.Freq
}

func location(timezone string) *time.Location {
	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		logger.Warn("Invalid timezone, falling back to UTC", "timezone", timezone, "error", err)
		return time.UTC
	}
	return loc
}
