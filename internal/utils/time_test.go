package utils

import (
	"testing"
	"time"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%q) error = %v", name, err)
	}
	return loc
}

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name    string
		tz      string
		want    string
		wantErr bool
	}{
		{"empty is UTC", "", "UTC", false},
		{"local", "Local", time.Local.String(), false},
		{"iana", "Asia/Kathmandu", "Asia/Kathmandu", false},
		{"invalid", "Mars/Olympus_Mons", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.tz)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation(%q) error = %v, wantErr %v", tt.tz, err, tt.wantErr)
			}
			if !tt.wantErr && loc.String() != tt.want {
				t.Errorf("LoadLocation(%q) = %s, want %s", tt.tz, loc, tt.want)
			}
		})
	}
}

func TestGetTodayInTimezone(t *testing.T) {
	// 2024-03-15 11:30 UTC
	clock := FixedClock(time.Date(2024, 3, 15, 11, 30, 0, 0, time.UTC))

	tests := []struct {
		tz   string
		want string
	}{
		{"UTC", "2024-03-15"},
		{"America/Los_Angeles", "2024-03-15"},
		{"Pacific/Honolulu", "2024-03-15"},
		{"Pacific/Kiritimati", "2024-03-16"}, // UTC+14
		{"Pacific/Tongatapu", "2024-03-16"},  // UTC+13
		{"Pacific/Pago_Pago", "2024-03-15"},  // UTC-11
		{"Asia/Kolkata", "2024-03-15"},
		{"Asia/Kathmandu", "2024-03-15"},
	}
	for _, tt := range tests {
		t.Run(tt.tz, func(t *testing.T) {
			got, err := GetTodayInTimezone(clock, tt.tz)
			if err != nil {
				t.Fatalf("GetTodayInTimezone error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GetTodayInTimezone(%s) = %s, want %s", tt.tz, got, tt.want)
			}
		})
	}

	if _, err := GetTodayInTimezone(clock, "Not/AZone"); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestCalendarDateOffsetZones(t *testing.T) {
	tests := []struct {
		name    string
		tz      string
		instant time.Time
		want    string
	}{
		// India is UTC+5:30: 18:29 UTC is 23:59 local, 18:30 is the next day.
		{"india before midnight", "Asia/Kolkata", time.Date(2024, 1, 1, 18, 29, 0, 0, time.UTC), "2024-01-01"},
		{"india at midnight", "Asia/Kolkata", time.Date(2024, 1, 1, 18, 30, 0, 0, time.UTC), "2024-01-02"},
		// Nepal is UTC+5:45.
		{"nepal before midnight", "Asia/Kathmandu", time.Date(2024, 1, 1, 18, 14, 0, 0, time.UTC), "2024-01-01"},
		{"nepal at midnight", "Asia/Kathmandu", time.Date(2024, 1, 1, 18, 15, 0, 0, time.UTC), "2024-01-02"},
		// Kiribati Line Islands are UTC+14.
		{"kiribati", "Pacific/Kiritimati", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), "2024-01-02"},
		{"kiribati late utc", "Pacific/Kiritimati", time.Date(2024, 1, 1, 9, 59, 0, 0, time.UTC), "2024-01-01"},
		// Tonga is UTC+13.
		{"tonga", "Pacific/Tongatapu", time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), "2024-01-02"},
		{"samoa negative", "Pacific/Pago_Pago", time.Date(2024, 1, 2, 10, 59, 0, 0, time.UTC), "2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalendarDate(tt.instant, mustLoad(t, tt.tz)); got != tt.want {
				t.Errorf("CalendarDate = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCalendarDateMonotonic(t *testing.T) {
	zones := []string{
		"UTC", "America/New_York", "Europe/London", "Australia/Lord_Howe",
		"Asia/Kolkata", "Asia/Kathmandu", "Pacific/Kiritimati", "Pacific/Tongatapu",
		"Pacific/Apia", "America/Havana",
	}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC)

	for _, tz := range zones {
		t.Run(tz, func(t *testing.T) {
			loc := mustLoad(t, tz)
			prev := CalendarDate(start, loc)
			for ts := start.Add(15 * time.Minute); ts.Before(end); ts = ts.Add(15 * time.Minute) {
				cur := CalendarDate(ts, loc)
				if cur < prev {
					t.Fatalf("date went backwards at %s: %s -> %s", ts, prev, cur)
				}
				prev = cur
			}
		})
	}
}

func TestDayBoundariesAcrossDST(t *testing.T) {
	tests := []struct {
		name      string
		tz        string
		day       time.Time
		wantHours float64
	}{
		{"spring forward", "America/New_York", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), 23},
		{"fall back", "America/New_York", time.Date(2024, 11, 3, 12, 0, 0, 0, time.UTC), 25},
		{"normal", "America/New_York", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), 24},
		{"lord howe half hour", "Australia/Lord_Howe", time.Date(2024, 4, 7, 0, 0, 0, 0, time.UTC), 24.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := mustLoad(t, tt.tz)
			start := StartOfDay(tt.day, loc)
			end := EndOfDay(tt.day, loc)

			if got := end.Add(time.Nanosecond).Sub(start).Hours(); got != tt.wantHours {
				t.Errorf("day length = %vh, want %vh", got, tt.wantHours)
			}
			if !IsSameDay(start, tt.day, loc) || !IsSameDay(end, tt.day, loc) {
				t.Errorf("boundaries %s .. %s not on the day of %s", start, end, tt.day)
			}
			if IsSameDay(start.Add(-time.Nanosecond), tt.day, loc) {
				t.Error("instant before StartOfDay is on the same day")
			}
			if IsSameDay(end.Add(time.Nanosecond), tt.day, loc) {
				t.Error("instant after EndOfDay is on the same day")
			}
		})
	}
}

func TestStartOfDayInMidnightGap(t *testing.T) {
	// Santiago skips from 00:00 to 01:00 on the first Sunday of September.
	loc := mustLoad(t, "America/Santiago")
	day := time.Date(2024, 9, 8, 15, 0, 0, 0, loc)

	start := StartOfDay(day, loc)
	if got := CalendarDate(start, loc); got != "2024-09-08" {
		t.Fatalf("StartOfDay landed on %s (%s)", got, start)
	}
	if start.In(loc).Hour() != 1 {
		t.Errorf("StartOfDay = %s, want 01:00 local", start.In(loc))
	}
	if CalendarDate(start.Add(-time.Nanosecond), loc) != "2024-09-07" {
		t.Error("instant before StartOfDay should be the previous day")
	}
}

func TestStorageRoundTrip(t *testing.T) {
	kolkata := mustLoad(t, "Asia/Kolkata")
	in := time.Date(2024, 3, 15, 9, 45, 30, 123000000, kolkata)

	stored := FormatForStorage(in)
	if stored != "2024-03-15T04:15:30.123Z" {
		t.Errorf("FormatForStorage = %s", stored)
	}
	back, err := ParseStoredTimestamp(stored)
	if err != nil {
		t.Fatalf("ParseStoredTimestamp error = %v", err)
	}
	if !back.Equal(in) {
		t.Errorf("round trip = %s, want %s", back, in)
	}
}

func TestParseStoredTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2024-03-15T04:15:30Z", time.Date(2024, 3, 15, 4, 15, 30, 0, time.UTC), false},
		{"2024-03-15T09:45:30+05:30", time.Date(2024, 3, 15, 4, 15, 30, 0, time.UTC), false},
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"yesterday", time.Time{}, true},
		{"", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStoredTimestamp(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFormatForDisplay(t *testing.T) {
	in := time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)
	tokyo := mustLoad(t, "Asia/Tokyo")
	if got := FormatForDisplay(in, tokyo, "Mon, Jan 2, 2006"); got != "Sat, Mar 16, 2024" {
		t.Errorf("FormatForDisplay = %s", got)
	}
}

func TestParseDateInLocation(t *testing.T) {
	loc := mustLoad(t, "Asia/Kathmandu")
	got, err := ParseDateInLocation("2024-07-04", loc)
	if err != nil {
		t.Fatalf("ParseDateInLocation error = %v", err)
	}
	want := time.Date(2024, 7, 4, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
	if _, err := ParseDateInLocation("07/04/2024", loc); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Europe/Berlin") {
		t.Error("Europe/Berlin should be valid")
	}
	if ValidateTimezone("Europe/Atlantis") {
		t.Error("Europe/Atlantis should be invalid")
	}
}

func TestClock(t *testing.T) {
	fixed := time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)
	if got := OrSystem(FixedClock(fixed)).Now(); !got.Equal(fixed) {
		t.Errorf("FixedClock.Now = %s", got)
	}
	if _, ok := OrSystem(nil).(SystemClock); !ok {
		t.Error("OrSystem(nil) should return SystemClock")
	}
}
