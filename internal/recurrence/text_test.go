package recurrence

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestToText(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		want string
	}{
		{"daily", Rule{Freq: Daily}, "every day"},
		{"weekly days", Rule{Freq: Weekly, ByWeekday: Weekdays(time.Monday, time.Wednesday, time.Friday)}, "every week on Monday, Wednesday, Friday"},
		{"work week", Rule{Freq: Weekly, ByWeekday: Weekdays(WorkWeek...)}, "every weekday"},
		{"every other week", Rule{Freq: Weekly, Interval: 2, ByWeekday: Weekdays(time.Tuesday)}, "every 2 weeks on Tuesday"},
		{"month day", Rule{Freq: Monthly, Interval: 2, ByMonthDay: []int{15}}, "every 2 months on the 15th"},
		{"last day", Rule{Freq: Monthly, ByMonthDay: []int{-1}}, "every month on the last day"},
		{"last friday", Rule{Freq: Monthly, ByWeekday: []Weekday{{Day: time.Friday, N: -1}}}, "every month on the last Friday"},
		{"second tuesday", Rule{Freq: Monthly, ByWeekday: []Weekday{{Day: time.Tuesday, N: 2}}}, "every month on the second Tuesday"},
		{"last weekday", Rule{Freq: Monthly, BySetPos: []int{-1}, ByWeekday: Weekdays(WorkWeek...)}, "every month on the last weekday"},
		{"yearly", Rule{Freq: Yearly, ByMonth: []time.Month{time.March}, ByMonthDay: []int{1}}, "every year in March on the 1st"},
		{"count", Rule{Freq: Daily, Count: 5}, "every day for 5 times"},
		{"count one", Rule{Freq: Daily, Count: 1}, "every day for 1 time"},
		{"until", Rule{Freq: Weekly, ByWeekday: Weekdays(time.Monday), Until: time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)}, "every week on Monday until June 30, 2024"},
		{"hourly", Rule{Freq: Hourly}, "every hour"},
		{"ordinals", Rule{Freq: Monthly, ByMonthDay: []int{1, 2, 3, 11, 22}}, "every month on the 1st, 2nd, 3rd, 11th, 22nd"},
		{"unknown", Rule{}, "invalid"},
		{"year day", Rule{Freq: Yearly, ByYearDay: []int{100}}, "every year on the 100th day of the year"},
		{"last year day", Rule{Freq: Yearly, ByYearDay: []int{-1}}, "every year on the last day of the year"},
		{"week number", Rule{Freq: Yearly, ByWeekNo: []int{20}, ByWeekday: Weekdays(time.Monday)}, "every year on Monday in week 20"},
		{"easter", Rule{Freq: Yearly, ByEaster: []int{0}}, "every year on Easter"},
		{"before easter", Rule{Freq: Yearly, ByEaster: []int{-2}}, "every year 2 days before Easter"},
		{"time of day", Rule{Freq: Daily, ByHour: []int{9}, ByMinute: []int{30}}, "every day at 9:30"},
		{"times with seconds", Rule{Freq: Daily, ByHour: []int{9, 17}, BySecond: []int{5}}, "every day at 9:00:05, 17:00:05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToText(tt.rule); got != tt.want {
				t.Errorf("ToText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromText(t *testing.T) {
	tests := []struct {
		text string
		want Rule
	}{
		{"every day", Rule{Freq: Daily}},
		{"Daily", Rule{Freq: Daily}},
		{"every 2 days", Rule{Freq: Daily, Interval: 2}},
		{"every week on Mon, Wed", Rule{Freq: Weekly, ByWeekday: Weekdays(time.Monday, time.Wednesday)}},
		{"weekly on sat and sun", Rule{Freq: Weekly, ByWeekday: Weekdays(time.Saturday, time.Sunday)}},
		{"every friday", Rule{Freq: Weekly, ByWeekday: Weekdays(time.Friday)}},
		{"every other week on Tuesdays", Rule{Freq: Weekly, Interval: 2, ByWeekday: Weekdays(time.Tuesday)}},
		{"every weekday", Rule{Freq: Weekly, ByWeekday: Weekdays(WorkWeek...)}},
		{"every weekend", Rule{Freq: Weekly, ByWeekday: Weekdays(time.Saturday, time.Sunday)}},
		{"every month on the 15th", Rule{Freq: Monthly, ByMonthDay: []int{15}}},
		{"every month on the 1st and 15th", Rule{Freq: Monthly, ByMonthDay: []int{1, 15}}},
		{"every month on the last day", Rule{Freq: Monthly, ByMonthDay: []int{-1}}},
		{"every month on the last Friday", Rule{Freq: Monthly, ByWeekday: []Weekday{{Day: time.Friday, N: -1}}}},
		{"every 3 months on the second tuesday", Rule{Freq: Monthly, Interval: 3, ByWeekday: []Weekday{{Day: time.Tuesday, N: 2}}}},
		{"every month on the first weekday", Rule{Freq: Monthly, BySetPos: []int{1}, ByWeekday: Weekdays(WorkWeek...)}},
		{"every year in March on the 1st", Rule{Freq: Yearly, ByMonth: []time.Month{time.March}, ByMonthDay: []int{1}}},
		{"every march", Rule{Freq: Yearly, ByMonth: []time.Month{time.March}}},
		{"daily for 10 times", Rule{Freq: Daily, Count: 10}},
		{"every week on monday until 2024-06-30", Rule{Freq: Weekly, ByWeekday: Weekdays(time.Monday), Until: time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)}},
		{"every hour", Rule{Freq: Hourly}},
		{"every week", Rule{Freq: Weekly}},
		{"every month", Rule{Freq: Monthly}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := FromText(tt.text)
			if err != nil {
				t.Fatalf("FromText(%q) error = %v", tt.text, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromText(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFromTextInvalid(t *testing.T) {
	for _, text := range []string{
		"",
		"sometimes",
		"every",
		"every fortnight",
		"every month on the",
		"every month on the 32nd",
		"every week for",
		"every week until someday",
		"every week in",
	} {
		t.Run(text, func(t *testing.T) {
			if _, err := FromText(text); !errors.Is(err, ErrInvalidRule) {
				t.Errorf("FromText(%q) error = %v, want ErrInvalidRule", text, err)
			}
		})
	}
}

func TestToTextFromTextRoundTrip(t *testing.T) {
	rules := []Rule{
		{Freq: Daily},
		{Freq: Weekly, ByWeekday: Weekdays(time.Monday, time.Wednesday, time.Friday)},
		{Freq: Weekly, ByWeekday: Weekdays(WorkWeek...)},
		{Freq: Monthly, Interval: 2, ByMonthDay: []int{15}},
		{Freq: Monthly, ByWeekday: []Weekday{{Day: time.Friday, N: -1}}},
		{Freq: Monthly, BySetPos: []int{-1}, ByWeekday: Weekdays(WorkWeek...)},
		{Freq: Yearly, ByMonth: []time.Month{time.March}, ByMonthDay: []int{1}},
		{Freq: Daily, Count: 5},
		{Freq: Weekly, ByWeekday: Weekdays(time.Monday), Until: time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)},
	}
	for _, r := range rules {
		text := ToText(r)
		t.Run(text, func(t *testing.T) {
			back, err := FromText(text)
			if err != nil {
				t.Fatalf("FromText(%q) error = %v", text, err)
			}
			if !reflect.DeepEqual(back, r) {
				t.Errorf("FromText(ToText(r)) = %+v, want %+v", back, r)
			}
		})
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 101: "101st", 111: "111th"}
	for n, want := range tests {
		if got := ordinal(n); got != want {
			t.Errorf("ordinal(%d) = %s, want %s", n, got, want)
		}
	}
}
