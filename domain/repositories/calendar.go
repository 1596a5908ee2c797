package repositories

import (
	"context"
	"time"
)

// CalendarEvent describes an appointment to be written to the practice
// calendar.
type CalendarEvent struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Attendees   []string  `json:"attendees,omitempty"`
}

// Calendar abstracts the appointment backend consumed by the booking layer
// downstream of the voice pipeline.
type Calendar interface {
	CreateEvent(ctx context.Context, event CalendarEvent) error
}
