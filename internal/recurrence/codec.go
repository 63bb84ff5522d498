package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

const (
	rrulePrefix   = "RRULE:"
	dtstartPrefix = "DTSTART"
	// icalDatetime is the UTC form used for DTSTART lines.
	icalDatetime      = "20060102T150405Z"
	icalLocalDatetime = "20060102T150405"
)

var (
	// ErrInvalidRule is returned when text is not a readable recurrence rule.
	ErrInvalidRule = errors.New("invalid recurrence rule")
	// ErrUnsupported marks rules that parse but are outside what habits can be scheduled with.
	ErrUnsupported = errors.New("unsupported recurrence rule")
)

// Unsupported-rule messages shown to users.
const (
	MsgHourlyUnsupported        = "Hourly frequency is not supported."
	MsgMinutelyUnsupported      = "Minutely frequency is not supported."
	MsgSecondlyUnsupported      = "Secondly frequency is not supported."
	MsgDailyIntervalUnsupported = "Daily frequency with interval greater than 1 is not supported."
)

// UnsupportedError carries the reason a parseable rule is rejected.
type UnsupportedError struct {
	Message string
}

func (e *UnsupportedError) Error() string { return e.Message }

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

// Serialize renders r in the stored single-rule format:
//
//	[DTSTART:20240101T000000Z\n]RRULE:FREQ=WEEKLY;BYDAY=MO,WE
func Serialize(r Rule) string {
	opt := r.option()
	opt.Dtstart = time.Time{}
	body := rrulePrefix + opt.RRuleString()
	if r.Dtstart.IsZero() {
		return body
	}
	return dtstartPrefix + ":" + r.Dtstart.UTC().Format(icalDatetime) + "\n" + body
}

// Deserialize parses stored rule text. Any failure is reported as ErrInvalidRule; it never panics.
func Deserialize(s string) (rule Rule, err error) {
	defer func() {
		if p := recover(); p != nil {
			rule, err = Rule{}, fmt.Errorf("%w: %v", ErrInvalidRule, p)
		}
	}()

	s = strings.TrimSpace(s)
	if s == "" {
		return Rule{}, fmt.Errorf("%w: empty", ErrInvalidRule)
	}

	var body string
	var dtstart time.Time
	for _, line := range strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' }) {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(strings.ToUpper(line), dtstartPrefix):
			dtstart, err = parseDtstart(line)
			if err != nil {
				return Rule{}, err
			}
		case strings.HasPrefix(strings.ToUpper(line), rrulePrefix):
			body = line[len(rrulePrefix):]
		case strings.Contains(strings.ToUpper(line), "FREQ="):
			body = line
		}
	}
	if body == "" {
		return Rule{}, fmt.Errorf("%w: no RRULE in %q", ErrInvalidRule, s)
	}

	opt, err := rrule.StrToROption(body)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	rule = fromOption(opt)
	if rule.Freq == "" {
		return Rule{}, fmt.Errorf("%w: unknown frequency", ErrInvalidRule)
	}
	if !dtstart.IsZero() {
		rule.Dtstart = dtstart
	}
	return rule, nil
}

// parseDtstart reads "DTSTART:20240101T000000Z" or "DTSTART;TZID=Europe/Paris:20240101T090000".
func parseDtstart(line string) (time.Time, error) {
	head, value, ok := strings.Cut(line, ":")
	if !ok {
		return time.Time{}, fmt.Errorf("%w: malformed DTSTART %q", ErrInvalidRule, line)
	}

	loc := time.UTC
	if _, tzid, found := strings.Cut(head, ";TZID="); found {
		l, err := time.LoadLocation(tzid)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: DTSTART timezone: %v", ErrInvalidRule, err)
		}
		loc = l
	}

	if t, err := time.Parse(icalDatetime, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(icalLocalDatetime, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: DTSTART value %q", ErrInvalidRule, value)
	}
	return t, nil
}

// Supported returns nil when habits can be scheduled with r, or an *UnsupportedError.
// Daily rules are limited to an interval of 1 because the habit form has no custom daily
// interval; this is product policy rather than an expansion limit.
func Supported(r Rule) error {
	switch r.Freq {
	case Hourly:
		return &UnsupportedError{Message: MsgHourlyUnsupported}
	case Minutely:
		return &UnsupportedError{Message: MsgMinutelyUnsupported}
	case Secondly:
		return &UnsupportedError{Message: MsgSecondlyUnsupported}
	case Daily:
		if r.Every() > 1 {
			return &UnsupportedError{Message: MsgDailyIntervalUnsupported}
		}
	}
	return nil
}
