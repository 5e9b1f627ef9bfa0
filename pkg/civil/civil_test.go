package civil

import (
	"testing"
	"time"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := Parse(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func TestDaysBetween(t *testing.T) {
	from := mustParse(t, "2024-01-15")
	to := time.Date(2024, 1, 20, 23, 59, 0, 0, time.UTC)
	if got := DaysBetween(from, to); got != 5 {
		t.Errorf("DaysBetween = %d, want 5", got)
	}
}

func TestWeekOf(t *testing.T) {
	cases := []struct{ in, monday, sunday string }{
		{"2024-01-17", "2024-01-15", "2024-01-21"}, // wednesday
		{"2024-01-15", "2024-01-15", "2024-01-21"}, // monday itself
		{"2024-01-21", "2024-01-15", "2024-01-21"}, // sunday belongs to prior week
	}
	for _, c := range cases {
		mon, sun := WeekOf(mustParse(t, c.in))
		if Format(mon) != c.monday || Format(sun) != c.sunday {
			t.Errorf("WeekOf(%s) = %s..%s, want %s..%s",
				c.in, Format(mon), Format(sun), c.monday, c.sunday)
		}
	}
}
