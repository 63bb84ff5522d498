// Package recurrence models repeating schedules as RFC 5545 recurrence rules. It converts rules
// to and from their stored text, renders them as English, parses English phrases into rules and
// expands a rule to its first occurrence from a given local day.
package recurrence

import (
	"slices"
	"time"

	"github.com/teambition/rrule-go"
)

// Frequency is the base cadence of a rule.
type Frequency string

const (
	Yearly   Frequency = "yearly"
	Monthly  Frequency = "monthly"
	Weekly   Frequency = "weekly"
	Daily    Frequency = "daily"
	Hourly   Frequency = "hourly"
	Minutely Frequency = "minutely"
	Secondly Frequency = "secondly"
)

var toRRuleFreq = map[Frequency]rrule.Frequency{
	Yearly:   rrule.YEARLY,
	Monthly:  rrule.MONTHLY,
	Weekly:   rrule.WEEKLY,
	Daily:    rrule.DAILY,
	Hourly:   rrule.HOURLY,
	Minutely: rrule.MINUTELY,
	Secondly: rrule.SECONDLY,
}

// Weekday is a day of the week, optionally pinned to its Nth occurrence within the period
// (1 = first, -1 = last). N == 0 means every such day.
type Weekday struct {
	Day time.Weekday
	N   int
}

// Weekdays returns plain weekdays for days.
func Weekdays(days ...time.Weekday) []Weekday {
	out := make([]Weekday, len(days))
	for i, d := range days {
		out[i] = Weekday{Day: d}
	}
	return out
}

// WorkWeek is Monday through Friday.
var WorkWeek = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// Rule is a recurrence rule. Rules are values: no method mutates its receiver, and slices handed
// out by With* helpers are fresh copies.
type Rule struct {
	Freq       Frequency
	Interval   int // 0 and 1 both mean every period
	ByWeekday  []Weekday
	ByMonthDay []int
	ByMonth    []time.Month
	BySetPos   []int
	ByYearDay  []int
	ByWeekNo   []int
	ByEaster   []int // day offsets from Easter Sunday
	ByHour     []int
	ByMinute   []int
	BySecond   []int
	Wkst       *time.Weekday // nil means Monday
	Dtstart    time.Time     // zero when the rule carries no anchor of its own
	Count      int
	Until      time.Time
}

// Every returns the interval, normalised so that 0 reads as 1.
func (r Rule) Every() int {
	if r.Interval < 1 {
		return 1
	}
	return r.Interval
}

// HasPosition reports whether the rule pins a weekday to a position in the period, either as an
// Nth weekday ("-1FR") or as BYSETPOS combined with BYDAY.
func (r Rule) HasPosition() bool {
	for _, wd := range r.ByWeekday {
		if wd.N != 0 {
			return true
		}
	}
	return len(r.BySetPos) > 0 && len(r.ByWeekday) > 0
}

// Clone returns a deep copy.
func (r Rule) Clone() Rule {
	r.ByWeekday = slices.Clone(r.ByWeekday)
	r.ByMonthDay = slices.Clone(r.ByMonthDay)
	r.ByMonth = slices.Clone(r.ByMonth)
	r.BySetPos = slices.Clone(r.BySetPos)
	r.ByYearDay = slices.Clone(r.ByYearDay)
	r.ByWeekNo = slices.Clone(r.ByWeekNo)
	r.ByEaster = slices.Clone(r.ByEaster)
	r.ByHour = slices.Clone(r.ByHour)
	r.ByMinute = slices.Clone(r.ByMinute)
	r.BySecond = slices.Clone(r.BySecond)
	if r.Wkst != nil {
		wkst := *r.Wkst
		r.Wkst = &wkst
	}
	return r
}

// rruleWeekdays is indexed by time.Weekday.
var rruleWeekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

func (r Rule) option() rrule.ROption {
	opt := rrule.ROption{
		Freq:       toRRuleFreq[r.Freq],
		Interval:   r.Interval,
		Count:      r.Count,
		Until:      r.Until,
		Dtstart:    r.Dtstart,
		Bymonthday: slices.Clone(r.ByMonthDay),
		Bysetpos:   slices.Clone(r.BySetPos),
		Byyearday:  slices.Clone(r.ByYearDay),
		Byweekno:   slices.Clone(r.ByWeekNo),
		Byeaster:   slices.Clone(r.ByEaster),
		Byhour:     slices.Clone(r.ByHour),
		Byminute:   slices.Clone(r.ByMinute),
		Bysecond:   slices.Clone(r.BySecond),
		Wkst:       rrule.MO,
	}
	if r.Wkst != nil {
		opt.Wkst = rruleWeekdays[*r.Wkst]
	}
	for _, m := range r.ByMonth {
		opt.Bymonth = append(opt.Bymonth, int(m))
	}
	for _, wd := range r.ByWeekday {
		day := rruleWeekdays[wd.Day]
		if wd.N != 0 {
			day = day.Nth(wd.N)
		}
		opt.Byweekday = append(opt.Byweekday, day)
	}
	return opt
}

func fromOption(opt *rrule.ROption) Rule {
	r := Rule{
		Interval:   opt.Interval,
		Count:      opt.Count,
		Until:      opt.Until,
		Dtstart:    opt.Dtstart,
		ByMonthDay: slices.Clone(opt.Bymonthday),
		BySetPos:   slices.Clone(opt.Bysetpos),
		ByYearDay:  slices.Clone(opt.Byyearday),
		ByWeekNo:   slices.Clone(opt.Byweekno),
		ByEaster:   slices.Clone(opt.Byeaster),
		ByHour:     slices.Clone(opt.Byhour),
		ByMinute:   slices.Clone(opt.Byminute),
		BySecond:   slices.Clone(opt.Bysecond),
	}
	if opt.Wkst != rrule.MO {
		wkst := fromRRuleWeekday(opt.Wkst)
		r.Wkst = &wkst
	}
	for f, rf := range toRRuleFreq {
		if rf == opt.Freq {
			r.Freq = f
			break
		}
	}
	for _, m := range opt.Bymonth {
		r.ByMonth = append(r.ByMonth, time.Month(m))
	}
	for i := range opt.Byweekday {
		wd := opt.Byweekday[i]
		r.ByWeekday = append(r.ByWeekday, Weekday{Day: fromRRuleWeekday(wd), N: wd.N()})
	}
	return r
}

// fromRRuleWeekday converts rrule-go's Monday-based numbering.
func fromRRuleWeekday(wd rrule.Weekday) time.Weekday {
	return time.Weekday((wd.Day() + 1) % 7)
}
