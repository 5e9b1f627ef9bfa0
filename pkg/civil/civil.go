// Package civil handles schedule dates: calendar days with no time
// component, all in the same civil calendar (UTC midnight at rest).
package civil

import "time"

const Layout = "2006-01-02"

// Date truncates t to its civil date.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns whole days from one civil date to another.
func DaysBetween(from, to time.Time) int {
	return int(Date(to).Sub(Date(from)).Hours() / 24)
}

func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

func Format(t time.Time) string { return t.Format(Layout) }

// WeekOf returns the Monday and Sunday of the civil week containing t.
func WeekOf(t time.Time) (monday, sunday time.Time) {
	d := Date(t)
	offset := int(d.Weekday()) - 1
	if d.Weekday() == time.Sunday {
		offset = 6
	}
	monday = d.AddDate(0, 0, -offset)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}
