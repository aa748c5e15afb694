package model

import (
	"fmt"
	"time"
)

// Month is a calendar year+month, the granularity meal-voucher reports
// are computed at.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth accepts the "YYYY-MM" form used on the reporting API.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) Valid() bool {
	return m.Year >= 1 && m.Month >= time.January && m.Month <= time.December
}

// Start is midnight on the first day of the month in loc.
func (m Month) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
}

// Next is the following calendar month.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Contains reports whether t falls inside the month when viewed in loc.
func (m Month) Contains(t time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	return !t.Before(m.Start(loc)) && t.Before(m.Next().Start(loc))
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
