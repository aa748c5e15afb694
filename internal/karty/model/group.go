package model

import (
	"fmt"
	"strings"
	"time"
)

// WeekdaySet is a 7-bit mask of permitted weekdays.  Bit i corresponds to
// time.Weekday(i), so Sunday is bit 0.  The legacy schema stored one
// integer column per day; the mask replaces that layout.
type WeekdaySet uint8

const AllWeekdays WeekdaySet = 0x7f

// Weekdays builds a set from individual days.
func Weekdays(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// WorkWeek is Monday through Friday.
func WorkWeek() WeekdaySet {
	return Weekdays(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
}

func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) IsZero() bool { return s == 0 }

func (s WeekdaySet) String() string {
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	var out []string
	for i, n := range names {
		if s.Has(time.Weekday(i)) {
			out = append(out, n)
		}
	}
	return strings.Join(out, ",")
}

// TimeOfDay is a wall-clock time expressed as seconds since midnight.
type TimeOfDay int

func ClockTime(hour, min, sec int) TimeOfDay {
	return TimeOfDay(hour*3600 + min*60 + sec)
}

// TimeOfDayAt extracts the wall-clock time of t in t's own location.
func TimeOfDayAt(t time.Time) TimeOfDay {
	return ClockTime(t.Clock())
}

// ParseTimeOfDay accepts "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		sec = 0
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, fmt.Errorf("parse time of day %q: %w", s, err)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return ClockTime(h, m, sec), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)/60%60, int(t)%60)
}

// TimeWindow is a contiguous daily window.  Both bounds are inclusive:
// a scan at exactly From or exactly To is inside the window.
type TimeWindow struct {
	From TimeOfDay
	To   TimeOfDay
}

func (w TimeWindow) Valid() bool { return w.From <= w.To }

func (w TimeWindow) Contains(t TimeOfDay) bool {
	return t >= w.From && t <= w.To
}

// Group is a named weekly access schedule.  A group with an empty weekday
// set never grants anything.
type Group struct {
	ID     int64
	Name   string
	Days   WeekdaySet
	Window TimeWindow
}

// ActiveAt reports whether the group's schedule covers the given instant,
// evaluated against the instant's own wall clock.
func (g Group) ActiveAt(t time.Time) bool {
	return g.Days.Has(t.Weekday()) && g.Window.Contains(TimeOfDayAt(t))
}
