package frequency

import (
	"errors"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/dohsimpson/habittrove/internal/constants"
	"github.com/dohsimpson/habittrove/internal/recurrence"
	"github.com/dohsimpson/habittrove/internal/utils"
)

// dueDateAliases expands shorthand before natural-language date parsing.
var dueDateAliases = map[string]string{
	"tmr":  "tomorrow",
	"tmrw": "tomorrow",
	"tom":  "tomorrow",
	"tdy":  "today",
	"tod":  "today",
	"eod":  "today",
	"now":  "today",
}

// exactDueLayouts are tried before the natural-language parser.
var exactDueLayouts = []string{
	constants.DateFormat + " " + constants.TimeFormat,
	constants.DateFormat,
}

// Parser parses schedule text relative to its clock.
type Parser struct {
	clock utils.Clock
	w     *when.Parser
}

// NewParser builds a Parser; a nil clock reads the system time.
func NewParser(clock utils.Clock) *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{clock: utils.OrSystem(clock), w: w}
}

// Parse interprets text as a recurrence (recurring) or a due date (otherwise). On failure the
// error is an *Error; for unsupported rules the parsed rule is still returned in the Result.
func (p *Parser) Parse(text string, recurring bool, timezone string) (Result, error) {
	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	now := p.clock.Now().In(loc)

	if recurring {
		return p.parseRecurring(text, now)
	}
	return p.parseDueDate(text, now)
}

func (p *Parser) parseDueDate(text string, now time.Time) (Result, error) {
	text = strings.TrimSpace(text)
	if alias, ok := dueDateAliases[strings.ToLower(text)]; ok {
		text = alias
	}
	if text == "" {
		return Result{}, &Error{Kind: InvalidDueDate, Message: MsgInvalidDueDate}
	}

	for _, layout := range exactDueLayouts {
		if t, err := time.ParseInLocation(layout, text, now.Location()); err == nil {
			return Result{Kind: KindInstant, Instant: t}, nil
		}
	}

	// Relative phrases shift by whole days. Parsing against the wall clock read as UTC keeps a
	// DST change from moving the result onto another local date.
	floating := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.UTC)
	found, err := p.w.Parse(text, floating)
	if err != nil || found == nil {
		return Result{}, &Error{Kind: InvalidDueDate, Message: MsgInvalidDueDate, Err: err}
	}
	t := found.Time.In(time.UTC)
	due := utils.DateIn(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), now.Location())
	return Result{Kind: KindInstant, Instant: due}, nil
}

func (p *Parser) parseRecurring(text string, now time.Time) (Result, error) {
	rule, ok := keywordRule(strings.ToLower(strings.TrimSpace(text)), now)
	if !ok {
		var err error
		rule, err = recurrence.FromText(text)
		if err != nil {
			return Result{}, &Error{Kind: InvalidRule, Message: MsgInvalidRule, Err: err}
		}
	}

	res := Result{Kind: KindRule, Rule: rule}
	if err := Validate(rule); err != nil {
		var perr *Error
		if errors.As(err, &perr) && perr.Kind == Unsupported {
			return res, err
		}
		return Result{}, err
	}
	return res, nil
}

// keywordRule maps the canonical one-word schedules directly to rules. Weekly, monthly and
// yearly take their day from today so the rule is complete without further input.
func keywordRule(text string, now time.Time) (recurrence.Rule, bool) {
	switch text {
	case "daily":
		return recurrence.Rule{Freq: recurrence.Daily}, true
	case "weekly":
		return recurrence.Rule{Freq: recurrence.Weekly, ByWeekday: recurrence.Weekdays(now.Weekday())}, true
	case "monthly":
		return recurrence.Rule{Freq: recurrence.Monthly, ByMonthDay: []int{now.Day()}}, true
	case "yearly":
		return recurrence.Rule{
			Freq:       recurrence.Yearly,
			ByMonth:    []time.Month{now.Month()},
			ByMonthDay: []int{now.Day()},
		}, true
	case "weekdays":
		return recurrence.Rule{Freq: recurrence.Weekly, ByWeekday: recurrence.Weekdays(recurrence.WorkWeek...)}, true
	}
	return recurrence.Rule{}, false
}
