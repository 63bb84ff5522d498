package recurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday, "su": time.Sunday,
	"monday": time.Monday, "mon": time.Monday, "mo": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday, "tu": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday, "we": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "th": time.Thursday,
	"friday": time.Friday, "fri": time.Friday, "fr": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday, "sa": time.Saturday,
}

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
	"other": 2,
}

var positionWords = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5, "last": -1,
}

var untilLayouts = []string{"2006-01-02", "January 2 2006", "Jan 2 2006", "2 January 2006", "2 Jan 2006"}

// FromText parses an English recurrence phrase ("every 2 weeks on Mon, Thu", "every month on
// the last Friday", "daily for 10 times") into a Rule. The result is not checked with Supported.
func FromText(text string) (Rule, error) {
	p := newPhraseParser(text)
	if p.done() {
		return Rule{}, fmt.Errorf("%w: empty phrase", ErrInvalidRule)
	}

	var r Rule
	switch tok := p.next(); tok {
	case "daily":
		r.Freq = Daily
	case "weekly":
		r.Freq = Weekly
	case "monthly":
		r.Freq = Monthly
	case "yearly", "annually":
		r.Freq = Yearly
	case "hourly":
		r.Freq = Hourly
	case "every", "each":
		if err := p.every(&r); err != nil {
			return Rule{}, err
		}
	default:
		return Rule{}, fmt.Errorf("%w: unexpected %q", ErrInvalidRule, tok)
	}

	if err := p.modifiers(&r); err != nil {
		return Rule{}, err
	}
	return r, nil
}

type phraseParser struct {
	toks []string
	pos  int
}

func newPhraseParser(text string) *phraseParser {
	text = strings.ToLower(text)
	text = strings.NewReplacer(",", " ", "&", " ", ".", " ").Replace(text)
	var toks []string
	for _, f := range strings.Fields(text) {
		if f == "and" {
			continue
		}
		toks = append(toks, f)
	}
	return &phraseParser{toks: toks}
}

func (p *phraseParser) done() bool { return p.pos >= len(p.toks) }

func (p *phraseParser) peek() string {
	if p.done() {
		return ""
	}
	return p.toks[p.pos]
}

func (p *phraseParser) next() string {
	tok := p.peek()
	p.pos++
	return tok
}

// every parses what follows "every": an optional count and a unit, weekday or month.
func (p *phraseParser) every(r *Rule) error {
	if n, ok := parseCount(p.peek()); ok {
		p.next()
		r.Interval = n
	}

	tok := p.next()
	switch strings.TrimSuffix(tok, "s") {
	case "day":
		r.Freq = Daily
	case "weekday":
		r.Freq = Weekly
		r.ByWeekday = Weekdays(WorkWeek...)
	case "weekend":
		r.Freq = Weekly
		r.ByWeekday = Weekdays(time.Saturday, time.Sunday)
	case "week":
		r.Freq = Weekly
	case "month":
		r.Freq = Monthly
	case "year":
		r.Freq = Yearly
	case "hour":
		r.Freq = Hourly
	case "minute":
		r.Freq = Minutely
	case "second":
		r.Freq = Secondly
	default:
		if _, ok := weekday(tok); ok {
			p.pos--
			r.Freq = Weekly
			return p.onList(r)
		}
		if m, ok := monthNames[tok]; ok {
			r.Freq = Yearly
			r.ByMonth = append(r.ByMonth, m)
			return nil
		}
		if tok == "" {
			return fmt.Errorf("%w: missing unit after \"every\"", ErrInvalidRule)
		}
		return fmt.Errorf("%w: unknown unit %q", ErrInvalidRule, tok)
	}
	return nil
}

func (p *phraseParser) modifiers(r *Rule) error {
	for !p.done() {
		switch tok := p.next(); tok {
		case "on":
			if err := p.onList(r); err != nil {
				return err
			}
		case "in":
			if err := p.monthList(r); err != nil {
				return err
			}
		case "for":
			n, ok := parseCount(p.next())
			if !ok {
				return fmt.Errorf("%w: expected a count after \"for\"", ErrInvalidRule)
			}
			r.Count = n
			switch p.peek() {
			case "time", "times", "occurrence", "occurrences":
				p.next()
			}
		case "until":
			until, err := parseUntil(p.toks[p.pos:])
			if err != nil {
				return err
			}
			r.Until = until
			p.pos = len(p.toks)
		default:
			if _, ok := weekday(tok); ok {
				p.pos--
				if err := p.onList(r); err != nil {
					return err
				}
				continue
			}
			return fmt.Errorf("%w: unexpected %q", ErrInvalidRule, tok)
		}
	}
	return nil
}

// onList parses the items after "on": weekdays, month days and positional weekdays.
func (p *phraseParser) onList(r *Rule) error {
	items := 0
	for !p.done() {
		tok := p.peek()
		if tok == "the" {
			p.next()
			continue
		}

		if d, ok := weekday(tok); ok {
			p.next()
			r.ByWeekday = append(r.ByWeekday, Weekday{Day: d})
			items++
			continue
		}

		if strings.TrimSuffix(tok, "s") == "weekday" {
			p.next()
			r.ByWeekday = append(r.ByWeekday, Weekdays(WorkWeek...)...)
			items++
			continue
		}

		pos, isPosition := positionWords[tok]
		n, isOrdinal := parseOrdinal(tok)
		if !isPosition && !isOrdinal {
			break
		}
		p.next()
		if !isPosition {
			pos = n
		}

		following := p.peek()
		switch {
		case following == "day":
			p.next()
			r.ByMonthDay = append(r.ByMonthDay, pos)
		case strings.TrimSuffix(following, "s") == "weekday":
			p.next()
			r.BySetPos = append(r.BySetPos, pos)
			r.ByWeekday = append(r.ByWeekday, Weekdays(WorkWeek...)...)
		default:
			if d, ok := weekday(following); ok {
				p.next()
				r.ByWeekday = append(r.ByWeekday, Weekday{Day: d, N: pos})
				break
			}
			if isPosition && pos < 0 {
				return fmt.Errorf("%w: expected a day after %q", ErrInvalidRule, tok)
			}
			if pos < 1 || pos > 31 {
				return fmt.Errorf("%w: day of month %d out of range", ErrInvalidRule, pos)
			}
			r.ByMonthDay = append(r.ByMonthDay, pos)
		}
		items++
	}

	if items == 0 {
		return fmt.Errorf("%w: expected a day after \"on\"", ErrInvalidRule)
	}
	return nil
}

func (p *phraseParser) monthList(r *Rule) error {
	items := 0
	for m, ok := monthNames[p.peek()]; ok; m, ok = monthNames[p.peek()] {
		p.next()
		r.ByMonth = append(r.ByMonth, m)
		items++
	}
	if items == 0 {
		return fmt.Errorf("%w: expected a month after \"in\"", ErrInvalidRule)
	}
	return nil
}

func weekday(tok string) (time.Weekday, bool) {
	if d, ok := weekdayNames[tok]; ok {
		return d, true
	}
	// "mondays"
	d, ok := weekdayNames[strings.TrimSuffix(tok, "s")]
	if ok && len(tok) > 3 {
		return d, true
	}
	return 0, false
}

func parseCount(tok string) (int, bool) {
	if n, ok := numberWords[tok]; ok {
		return n, true
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// parseOrdinal reads "15th", "1st", "22nd", "3rd" or a bare "15".
func parseOrdinal(tok string) (int, bool) {
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if strings.HasSuffix(tok, suffix) {
			tok = strings.TrimSuffix(tok, suffix)
			break
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseUntil reads the remaining tokens as a date. The end of that day is the last allowed instant.
func parseUntil(toks []string) (time.Time, error) {
	text := strings.Join(toks, " ")
	for _, layout := range untilLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Add(24*time.Hour - time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unreadable date %q after \"until\"", ErrInvalidRule, text)
}
