// Package frequency turns user-entered schedule text into a recurrence rule (habits) or a due
// instant (tasks), and renders stored schedules back into readable text.
package frequency

import (
	"fmt"
	"time"

	"github.com/dohsimpson/habittrove/internal/models"
	"github.com/dohsimpson/habittrove/internal/recurrence"
)

// Kind tags which member of Result is populated.
type Kind int

const (
	KindNone Kind = iota
	KindRule
	KindInstant
)

func (k Kind) String() string {
	switch k {
	case KindRule:
		return "rule"
	case KindInstant:
		return "instant"
	default:
		return "none"
	}
}

// Result is the outcome of parsing schedule text: a Rule, an Instant, or nothing.
type Result struct {
	Kind    Kind
	Rule    recurrence.Rule
	Instant time.Time
}

// ErrorKind classifies parse and validation failures.
type ErrorKind string

const (
	InvalidDueDate  ErrorKind = "invalid_due_date"
	InvalidRule     ErrorKind = "invalid_rule"
	Unsupported     ErrorKind = "unsupported"
	MissingWeekday  ErrorKind = "missing_weekday"
	MissingMonthDay ErrorKind = "missing_month_day"
	MissingYearDay  ErrorKind = "missing_year_day"
)

// User-facing validation messages.
const (
	MsgInvalidDueDate  = "Invalid due date."
	MsgInvalidRule     = "Invalid recurrence rule."
	MsgMissingWeekday  = `Please specify day(s) of the week (e.g., "every week on Mon, Wed").`
	MsgMissingMonthDay = `Please specify day of the month (e.g., "every month on the 15th") or position (e.g., "every month on the last Friday").`
	MsgMissingYearDay  = `Please specify the date (e.g., "every year in March on the 1st").`
)

// Placeholders rendered for schedules that have not been filled in.
const (
	InitialDueDate    = "today"
	InitialRecurrence = "every day"
	InvalidText       = "invalid"
)

// Error is a parse or validation failure with a message suitable for display.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Validate checks that a parsed rule can schedule a habit.
func Validate(r recurrence.Rule) error {
	if err := recurrence.Supported(r); err != nil {
		return &Error{Kind: Unsupported, Message: err.Error(), Err: err}
	}

	switch {
	case r.Freq == recurrence.Weekly && len(r.ByWeekday) == 0:
		return &Error{Kind: MissingWeekday, Message: MsgMissingWeekday}
	case r.Freq == recurrence.Monthly && len(r.ByMonthDay) == 0 && !r.HasPosition():
		return &Error{Kind: MissingMonthDay, Message: MsgMissingMonthDay}
	case r.Freq == recurrence.Yearly && !pinsYearDay(r):
		return &Error{Kind: MissingYearDay, Message: MsgMissingYearDay}
	}
	return nil
}

// pinsYearDay reports whether a yearly rule selects days itself. Without such a part the
// expansion takes its day from the anchor, which would make the rule due every day.
func pinsYearDay(r recurrence.Rule) bool {
	return len(r.ByMonthDay) > 0 || len(r.ByYearDay) > 0 || len(r.ByWeekNo) > 0 ||
		len(r.ByWeekday) > 0 || len(r.ByEaster) > 0
}

// ToSchedule converts a successful result into the habit schedule it is stored as.
func ToSchedule(res Result) (models.Schedule, error) {
	switch res.Kind {
	case KindRule:
		return models.RecurringSchedule{Rule: recurrence.Serialize(res.Rule)}, nil
	case KindInstant:
		return models.OneOffDueDate{Due: res.Instant.UTC()}, nil
	}
	return nil, fmt.Errorf("nothing to store for an empty frequency result")
}
