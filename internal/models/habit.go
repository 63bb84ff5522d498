package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dohsimpson/habittrove/internal/utils"
)

// Schedule is either a RecurringSchedule (habits) or a OneOffDueDate (tasks).
type Schedule interface {
	isSchedule()
}

// RecurringSchedule holds a serialized recurrence rule. The rule is kept as text so that a
// rule this build cannot parse still round-trips to disk unchanged.
type RecurringSchedule struct {
	Rule string
}

// OneOffDueDate is a task's due instant. A zero Due means no date has been chosen yet, or that
// the stored text could not be read; that text is kept and written back unchanged.
type OneOffDueDate struct {
	Due time.Time
	raw string
}

func (RecurringSchedule) isSchedule() {}
func (OneOffDueDate) isSchedule()     {}

// IsSet reports whether a due date has been chosen.
func (d OneOffDueDate) IsSet() bool { return !d.Due.IsZero() }

// Habit is a recurring habit or a one-off task.
type Habit struct {
	ID                string
	Name              string
	Description       string
	Schedule          Schedule
	CoinReward        int
	TargetCompletions *int
	Completions       []string // UTC ISO-8601 instants
	Archived          bool
	Pinned            bool
	UserIDs           []string
	Drawing           string
}

// habitJSON is the persisted shape. Field names match existing data files.
type habitJSON struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Frequency         string   `json:"frequency"`
	CoinReward        int      `json:"coinReward"`
	TargetCompletions *int     `json:"targetCompletions,omitempty"`
	Completions       []string `json:"completions"`
	IsTask            bool     `json:"isTask,omitempty"`
	Archived          bool     `json:"archived,omitempty"`
	Pinned            bool     `json:"pinned,omitempty"`
	UserIDs           []string `json:"userIds,omitempty"`
	Drawing           string   `json:"drawing,omitempty"`
}

// IsTask reports whether the habit is a one-off task.
func (h Habit) IsTask() bool {
	_, ok := h.Schedule.(OneOffDueDate)
	return ok
}

// Target returns the completions needed per occurrence, defaulting to 1.
func (h Habit) Target() int {
	if h.TargetCompletions == nil || *h.TargetCompletions < 1 {
		return 1
	}
	return *h.TargetCompletions
}

func (h Habit) MarshalJSON() ([]byte, error) {
	out := habitJSON{
		ID:                h.ID,
		Name:              h.Name,
		Description:       h.Description,
		CoinReward:        h.CoinReward,
		TargetCompletions: h.TargetCompletions,
		Completions:       h.Completions,
		Archived:          h.Archived,
		Pinned:            h.Pinned,
		UserIDs:           h.UserIDs,
		Drawing:           h.Drawing,
	}
	if out.Completions == nil {
		out.Completions = []string{}
	}

	switch s := h.Schedule.(type) {
	case RecurringSchedule:
		out.Frequency = s.Rule
	case OneOffDueDate:
		out.IsTask = true
		switch {
		case s.IsSet():
			out.Frequency = utils.FormatForStorage(s.Due)
		case s.raw != "":
			out.Frequency = s.raw
		}
	case nil:
	default:
		return nil, fmt.Errorf("habit %s: unknown schedule type %T", h.ID, h.Schedule)
	}

	return json.Marshal(out)
}

func (h *Habit) UnmarshalJSON(data []byte) error {
	var in habitJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*h = Habit{
		ID:                in.ID,
		Name:              in.Name,
		Description:       in.Description,
		CoinReward:        in.CoinReward,
		TargetCompletions: in.TargetCompletions,
		Completions:       in.Completions,
		Archived:          in.Archived,
		Pinned:            in.Pinned,
		UserIDs:           in.UserIDs,
		Drawing:           in.Drawing,
	}

	if !in.IsTask {
		h.Schedule = RecurringSchedule{Rule: in.Frequency}
		return nil
	}

	// A task whose due date cannot be read is treated as unset rather than failing the whole file.
	due := OneOffDueDate{}
	if in.Frequency != "" {
		if t, err := utils.ParseStoredTimestamp(in.Frequency); err == nil {
			due.Due = t
		} else {
			due.raw = in.Frequency
		}
	}
	h.Schedule = due
	return nil
}

// HabitsData is the content of habits.json.
type HabitsData struct {
	Habits []Habit `json:"habits"`
}
