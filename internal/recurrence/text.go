package recurrence

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// untilLayout renders UNTIL dates in English text.
const untilLayout = "January 2, 2006"

var unitNames = map[Frequency]string{
	Yearly:   "year",
	Monthly:  "month",
	Weekly:   "week",
	Daily:    "day",
	Hourly:   "hour",
	Minutely: "minute",
	Secondly: "second",
}

var positionNames = map[int]string{
	1:  "first",
	2:  "second",
	3:  "third",
	4:  "fourth",
	5:  "fifth",
	-1: "last",
	-2: "second to last",
}

// ToText renders r as an English phrase such as "every week on Monday, Wednesday, Friday" or
// "every month on the last Friday". FromText accepts everything ToText produces except the
// year-day, week-number, Easter and time-of-day parts.
func ToText(r Rule) string {
	unit, ok := unitNames[r.Freq]
	if !ok {
		return "invalid"
	}

	var b strings.Builder
	n := r.Every()

	if r.Freq == Weekly && n == 1 && len(r.BySetPos) == 0 && isWorkWeek(r.ByWeekday) {
		b.WriteString("every weekday")
	} else {
		b.WriteString("every ")
		if n > 1 {
			fmt.Fprintf(&b, "%d %ss", n, unit)
		} else {
			b.WriteString(unit)
		}

		if len(r.ByMonth) > 0 {
			names := make([]string, len(r.ByMonth))
			for i, m := range r.ByMonth {
				names[i] = m.String()
			}
			b.WriteString(" in " + strings.Join(names, ", "))
		}

		switch {
		case r.HasPosition():
			b.WriteString(" on the " + positionalText(r))
		case len(r.ByWeekday) > 0:
			b.WriteString(" on " + dayNames(r.ByWeekday))
		}

		if len(r.ByMonthDay) > 0 {
			days := make([]string, len(r.ByMonthDay))
			for i, d := range r.ByMonthDay {
				days[i] = monthDayText(d)
			}
			if r.HasPosition() || len(r.ByWeekday) > 0 {
				b.WriteString(" and")
			}
			b.WriteString(" on the " + strings.Join(days, ", "))
		}

		b.WriteString(calendarText(r))
	}

	if r.Count > 0 {
		if r.Count == 1 {
			b.WriteString(" for 1 time")
		} else {
			fmt.Fprintf(&b, " for %d times", r.Count)
		}
	}
	if !r.Until.IsZero() {
		b.WriteString(" until " + r.Until.UTC().Format(untilLayout))
	}
	return b.String()
}

// calendarText renders the parts that have no phrase form in FromText.
func calendarText(r Rule) string {
	var b strings.Builder
	if len(r.ByWeekNo) > 0 {
		b.WriteString(" in week " + joinInts(r.ByWeekNo))
	}
	if len(r.ByYearDay) > 0 {
		days := make([]string, len(r.ByYearDay))
		for i, d := range r.ByYearDay {
			days[i] = monthDayText(d)
			if d > 0 {
				days[i] += " day"
			}
		}
		b.WriteString(" on the " + strings.Join(days, ", ") + " of the year")
	}
	for _, offset := range r.ByEaster {
		switch {
		case offset == 0:
			b.WriteString(" on Easter")
		case offset == 1 || offset == -1:
			fmt.Fprintf(&b, " 1 day %s Easter", easterSide(offset))
		default:
			fmt.Fprintf(&b, " %d days %s Easter", max(offset, -offset), easterSide(offset))
		}
	}
	if len(r.ByHour) > 0 || len(r.ByMinute) > 0 || len(r.BySecond) > 0 {
		b.WriteString(" at " + strings.Join(clockTimes(r), ", "))
	}
	return b.String()
}

func easterSide(offset int) string {
	if offset < 0 {
		return "before"
	}
	return "after"
}

// clockTimes lists every time of day the rule selects. Missing parts read as 0, matching an
// expansion anchored at midnight.
func clockTimes(r Rule) []string {
	hours, minutes, seconds := orZero(r.ByHour), orZero(r.ByMinute), r.BySecond
	var out []string
	for _, h := range hours {
		for _, m := range minutes {
			if len(seconds) == 0 {
				out = append(out, fmt.Sprintf("%d:%02d", h, m))
				continue
			}
			for _, sec := range seconds {
				out = append(out, fmt.Sprintf("%d:%02d:%02d", h, m, sec))
			}
		}
	}
	return out
}

func orZero(v []int) []int {
	if len(v) == 0 {
		return []int{0}
	}
	return v
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func positionalText(r Rule) string {
	if len(r.BySetPos) > 0 {
		var positions []string
		for _, p := range r.BySetPos {
			positions = append(positions, positionName(p))
		}
		days := dayNames(r.ByWeekday)
		if isWorkWeek(r.ByWeekday) {
			days = "weekday"
		}
		return strings.Join(positions, ", ") + " " + days
	}

	var parts []string
	for _, wd := range r.ByWeekday {
		if wd.N == 0 {
			parts = append(parts, wd.Day.String())
			continue
		}
		parts = append(parts, positionName(wd.N)+" "+wd.Day.String())
	}
	return strings.Join(parts, ", ")
}

func positionName(n int) string {
	if name, ok := positionNames[n]; ok {
		return name
	}
	if n < 0 {
		return ordinal(-n) + " to last"
	}
	return ordinal(n)
}

func monthDayText(d int) string {
	switch {
	case d == -1:
		return "last day"
	case d < 0:
		return ordinal(-d) + " to last day"
	}
	return ordinal(d)
}

func dayNames(days []Weekday) string {
	names := make([]string, len(days))
	for i, wd := range days {
		names[i] = wd.Day.String()
	}
	return strings.Join(names, ", ")
}

func isWorkWeek(days []Weekday) bool {
	if len(days) != len(WorkWeek) {
		return false
	}
	for _, wd := range days {
		if wd.N != 0 || !slices.Contains(WorkWeek, wd.Day) {
			return false
		}
	}
	return true
}

// ordinal renders 1 as "1st", 22 as "22nd", 13 as "13th".
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
