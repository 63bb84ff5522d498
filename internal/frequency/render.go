package frequency

import (
	"time"

	"github.com/dohsimpson/habittrove/internal/constants"
	"github.com/dohsimpson/habittrove/internal/models"
	"github.com/dohsimpson/habittrove/internal/recurrence"
	"github.com/dohsimpson/habittrove/internal/utils"
)

// Render returns the readable form of a stored schedule: the rule's English text for habits, the
// due date with weekday in timezone for tasks.
func Render(s models.Schedule, timezone string) string {
	switch s := s.(type) {
	case models.RecurringSchedule:
		rule, err := recurrence.Deserialize(s.Rule)
		if err != nil {
			return InvalidText
		}
		return recurrence.ToText(rule)
	case models.OneOffDueDate:
		if !s.IsSet() {
			return InitialDueDate
		}
		return utils.FormatForDisplay(s.Due, location(timezone), constants.DisplayDateFormat)
	}
	return InvalidText
}

// Describe renders a parse result, including the time of day for instants.
func Describe(res Result, timezone string) string {
	switch res.Kind {
	case KindRule:
		return recurrence.ToText(res.Rule)
	case KindInstant:
		return utils.FormatForDisplay(res.Instant, location(timezone), constants.DisplayFormat)
	}
	return ""
}

func location(timezone string) *time.Location {
	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
