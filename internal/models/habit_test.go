package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestHabitUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		check func(t *testing.T, h Habit)
	}{
		{
			name: "recurring habit",
			in:   `{"id":"h1","name":"Read","description":"","frequency":"RRULE:FREQ=DAILY","coinReward":1,"completions":["2024-03-15T08:00:00.000Z"]}`,
			check: func(t *testing.T, h Habit) {
				rs, ok := h.Schedule.(RecurringSchedule)
				if !ok || rs.Rule != "RRULE:FREQ=DAILY" {
					t.Errorf("Schedule = %#v", h.Schedule)
				}
				if h.IsTask() || h.Target() != 1 || len(h.Completions) != 1 {
					t.Errorf("habit = %+v", h)
				}
			},
		},
		{
			name: "task with due date",
			in:   `{"id":"t1","name":"Taxes","frequency":"2024-04-15T16:00:00.000Z","isTask":true,"coinReward":10,"completions":[],"targetCompletions":2}`,
			check: func(t *testing.T, h Habit) {
				d, ok := h.Schedule.(OneOffDueDate)
				if !ok || !d.Due.Equal(time.Date(2024, 4, 15, 16, 0, 0, 0, time.UTC)) {
					t.Errorf("Schedule = %#v", h.Schedule)
				}
				if !h.IsTask() || h.Target() != 2 {
					t.Errorf("habit = %+v", h)
				}
			},
		},
		{
			name: "task without due date",
			in:   `{"id":"t2","name":"Someday","frequency":"","isTask":true,"completions":[]}`,
			check: func(t *testing.T, h Habit) {
				d, ok := h.Schedule.(OneOffDueDate)
				if !ok || d.IsSet() {
					t.Errorf("Schedule = %#v", h.Schedule)
				}
			},
		},
		{
			name: "task with unreadable due date",
			in:   `{"id":"t3","name":"Broken","frequency":"next tuesday","isTask":true,"completions":[]}`,
			check: func(t *testing.T, h Habit) {
				d, ok := h.Schedule.(OneOffDueDate)
				if !ok || d.IsSet() {
					t.Errorf("Schedule = %#v", h.Schedule)
				}
			},
		},
		{
			name: "zero target defaults to one",
			in:   `{"id":"h2","name":"x","frequency":"RRULE:FREQ=DAILY","targetCompletions":0,"completions":[]}`,
			check: func(t *testing.T, h Habit) {
				if h.Target() != 1 {
					t.Errorf("Target = %d, want 1", h.Target())
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h Habit
			if err := json.Unmarshal([]byte(tt.in), &h); err != nil {
				t.Fatalf("Unmarshal error = %v", err)
			}
			tt.check(t, h)
		})
	}
}

func TestHabitMarshalFieldNames(t *testing.T) {
	due := time.Date(2024, 4, 15, 16, 0, 0, 0, time.FixedZone("EST", -5*3600))
	task := Habit{ID: "t1", Name: "Taxes", Schedule: OneOffDueDate{Due: due}, CoinReward: 10}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	s := string(data)
	for _, want := range []string{
		`"id":"t1"`,
		`"frequency":"2024-04-15T21:00:00.000Z"`,
		`"isTask":true`,
		`"coinReward":10`,
		`"completions":[]`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("Marshal = %s, missing %s", s, want)
		}
	}

	habit := Habit{ID: "h1", Schedule: RecurringSchedule{Rule: "RRULE:FREQ=DAILY"}}
	data, _ = json.Marshal(habit)
	if strings.Contains(string(data), "isTask") || !strings.Contains(string(data), `"frequency":"RRULE:FREQ=DAILY"`) {
		t.Errorf("Marshal = %s", data)
	}
}

func TestTaskUnreadableDueDateSurvivesRoundTrip(t *testing.T) {
	for _, freq := range []string{"2024-05-01 10:00:00", "next tuesday"} {
		t.Run(freq, func(t *testing.T) {
			in := `{"id":"t1","name":"Taxes","frequency":"` + freq + `","isTask":true,"coinReward":1,"completions":[]}`
			var h Habit
			if err := json.Unmarshal([]byte(in), &h); err != nil {
				t.Fatalf("Unmarshal error = %v", err)
			}

			out, err := json.Marshal(h)
			if err != nil {
				t.Fatalf("Marshal error = %v", err)
			}
			if want := `"frequency":"` + freq + `"`; !strings.Contains(string(out), want) {
				t.Errorf("Marshal = %s, want it to contain %s", out, want)
			}
		})
	}

	// Choosing a due date replaces the unreadable text.
	var h Habit
	if err := json.Unmarshal([]byte(`{"id":"t1","frequency":"garbage","isTask":true}`), &h); err != nil {
		t.Fatal(err)
	}
	h.Schedule = OneOffDueDate{Due: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	out, _ := json.Marshal(h)
	if !strings.Contains(string(out), `"frequency":"2024-05-01T10:00:00.000Z"`) {
		t.Errorf("Marshal = %s", out)
	}
}

func TestSettingsDefaults(t *testing.T) {
	var s Settings
	if err := json.Unmarshal([]byte(`{"system":{"weekStartDay":1}}`), &s); err != nil {
		t.Fatal(err)
	}
	ApplyDefaultSettings(&s)
	if s.System.Timezone != "UTC" || s.System.Language != "en" || s.System.WeekStartDay != 1 {
		t.Errorf("ApplyDefaultSettings = %+v", s.System)
	}
}
