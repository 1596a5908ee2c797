package entities

import (
	"errors"
	"time"
)

// LeadStatus tracks where a lead sits in the outreach flow.
type LeadStatus string

const (
	LeadStatusNew          LeadStatus = "new"
	LeadStatusContacted    LeadStatus = "contacted"
	LeadStatusAwaitingTime LeadStatus = "awaiting_time"
	LeadStatusClarifyTime  LeadStatus = "clarify_time"
	LeadStatusBooked       LeadStatus = "booked"
	LeadStatusDeclined     LeadStatus = "declined"
)

// Lead represents a prospective caller in the outreach flow. The phone
// number is the lead's identity.
type Lead struct {
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Service     string     `json:"service"`
	Status      LeadStatus `json:"status"`
	LastMessage string     `json:"last_message,omitempty"`
	BookedFor   string     `json:"booked_for,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Validate checks the required lead fields.
func (l *Lead) Validate() error {
	if l.Name == "" {
		return errors.New("name is required")
	}
	if l.Phone == "" {
		return errors.New("phone is required")
	}
	return nil
}
