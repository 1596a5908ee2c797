package leads

import (
	"testing"
	"time"

	"github.com/timbra-ai/voicebridge/domain/entities"
)

func TestStoreUpsert(t *testing.T) {
	store := NewStore()

	lead := store.Upsert("Max Mustermann", "+4915112345678", "Beratung")
	if lead.Status != entities.LeadStatusContacted {
		t.Errorf("expected status contacted, got %q", lead.Status)
	}
	if lead.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	// Upsert on the same phone keeps identity but refreshes the fields.
	again := store.Upsert("Max M.", "+4915112345678", "Check-up")
	if again.CreatedAt != lead.CreatedAt {
		t.Error("expected CreatedAt to survive the second upsert")
	}
	if again.Name != "Max M." || again.Service != "Check-up" {
		t.Errorf("expected refreshed fields, got %+v", again)
	}
	if got := store.List(); len(got) != 1 {
		t.Errorf("expected 1 lead, got %d", len(got))
	}
}

func TestStoreSetStatus(t *testing.T) {
	store := NewStore()
	store.Upsert("Erika", "+4915187654321", "Beratung")

	updated := store.SetStatus("+4915187654321", entities.LeadStatusBooked, StatusUpdate{
		LastMessage: "Top! Ich blocke dir den Slot.",
		BookedFor:   "2026-09-01T10:00:00Z",
	})
	if updated.Status != entities.LeadStatusBooked {
		t.Errorf("expected status booked, got %q", updated.Status)
	}
	if updated.BookedFor == "" || updated.LastMessage == "" {
		t.Errorf("expected extras to be written, got %+v", updated)
	}

	// Unknown phone creates a bare record instead of dropping the update.
	bare := store.SetStatus("+4900000000000", entities.LeadStatusDeclined, StatusUpdate{})
	if bare.Phone != "+4900000000000" || bare.Status != entities.LeadStatusDeclined {
		t.Errorf("expected bare declined lead, got %+v", bare)
	}
}

func TestStoreListOrder(t *testing.T) {
	store := NewStore()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base.Add(2 * time.Hour), base, base.Add(time.Hour)}
	i := 0
	store.now = func() time.Time {
		ts := times[i]
		i++
		return ts
	}

	store.Upsert("C", "+491", "x")
	store.Upsert("A", "+492", "x")
	store.Upsert("B", "+493", "x")

	got := store.List()
	if len(got) != 3 {
		t.Fatalf("expected 3 leads, got %d", len(got))
	}
	if got[0].Name != "A" || got[1].Name != "B" || got[2].Name != "C" {
		t.Errorf("expected creation order A,B,C, got %s,%s,%s", got[0].Name, got[1].Name, got[2].Name)
	}
}
