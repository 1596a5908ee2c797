// Package leads keeps the outreach pipeline's lead records. The store is
// in-memory; leads live only as long as the process, which is acceptable for
// a single-instance deployment where the practice calendar is the durable
// record.
package leads

import (
	"sort"
	"sync"
	"time"

	"github.com/timbra-ai/voicebridge/domain/entities"
)

// StatusUpdate carries the optional extras written alongside a status
// change.
type StatusUpdate struct {
	LastMessage string
	BookedFor   string
}

// Store is a thread-safe in-memory lead store keyed by phone number.
type Store struct {
	mu    sync.RWMutex
	leads map[string]entities.Lead
	now   func() time.Time
}

// NewStore creates an empty lead store.
func NewStore() *Store {
	return &Store{
		leads: make(map[string]entities.Lead),
		now:   time.Now,
	}
}

// Upsert creates or refreshes a lead and marks it contacted.
func (s *Store) Upsert(name, phone, service string) entities.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	lead, ok := s.leads[phone]
	if !ok {
		lead = entities.Lead{Phone: phone, CreatedAt: now}
	}
	lead.Name = name
	lead.Service = service
	lead.Status = entities.LeadStatusContacted
	lead.UpdatedAt = now

	s.leads[phone] = lead
	return lead
}

// GetByPhone returns the lead for a phone number, if known.
func (s *Store) GetByPhone(phone string) (entities.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lead, ok := s.leads[phone]
	return lead, ok
}

// SetStatus moves a lead to a new status, creating a bare record if the
// phone number is unknown.
func (s *Store) SetStatus(phone string, status entities.LeadStatus, update StatusUpdate) entities.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	lead, ok := s.leads[phone]
	if !ok {
		lead = entities.Lead{Phone: phone, CreatedAt: now}
	}
	lead.Status = status
	lead.UpdatedAt = now
	if update.LastMessage != "" {
		lead.LastMessage = update.LastMessage
	}
	if update.BookedFor != "" {
		lead.BookedFor = update.BookedFor
	}

	s.leads[phone] = lead
	return lead
}

// List returns all leads ordered by creation time, oldest first.
func (s *Store) List() []entities.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		out = append(out, lead)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
