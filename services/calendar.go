package services

import (
	"time"

	"hotelsite/models"
)

// Calendar answers "what day is it at the hotel".
type Calendar struct {
	Now      func() time.Time
	Location *time.Location
}

func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{Now: time.Now, Location: loc}
}

// FixedCalendar always reports the given day. Used by tests and reports.
func FixedCalendar(day time.Time) Calendar {
	return Calendar{Now: func() time.Time { return day }, Location: time.UTC}
}

// Today returns the hotel's current calendar date.
func (c Calendar) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return models.DateOf(now().In(loc))
}
