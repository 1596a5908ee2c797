package booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/timbra-ai/voicebridge/domain/repositories"
	"github.com/timbra-ai/voicebridge/internal/session"
)

type mockCalendar struct {
	mu     sync.Mutex
	events []repositories.CalendarEvent
	err    error
}

func (m *mockCalendar) CreateEvent(_ context.Context, event repositories.CalendarEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockCalendar) created() []repositories.CalendarEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]repositories.CalendarEvent(nil), m.events...)
}

func TestWatcherBooksOnConfirmation(t *testing.T) {
	cal := &mockCalendar{}
	watcher := NewWatcher(cal, zaptest.NewLogger(t))
	watcher.now = func() time.Time {
		return time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)
	}

	watcher.HandleTurn(session.TurnResult{
		CallID:        "CA123",
		UserText:      "Ich hätte gern einen Termin nächste Woche.",
		AssistantText: "Gerne, den Termin habe ich notiert.",
		CompletedAt:   time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC),
	})

	events := cal.created()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	want := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	if !events[0].Start.Equal(want) {
		t.Errorf("start = %v, want %v", events[0].Start, want)
	}
	if events[0].End.Sub(events[0].Start) != 15*time.Minute {
		t.Errorf("expected a 15-minute slot, got %v", events[0].End.Sub(events[0].Start))
	}
	if !strings.Contains(events[0].Summary, "CA123") {
		t.Errorf("expected call ID in summary, got %q", events[0].Summary)
	}
}

func TestWatcherIgnoresUnconfirmedTurns(t *testing.T) {
	cal := &mockCalendar{}
	watcher := NewWatcher(cal, zaptest.NewLogger(t))

	// The caller asking for an appointment alone is not a booking.
	watcher.HandleTurn(session.TurnResult{
		UserText:      "Haben Sie nächste Woche einen Termin frei?",
		AssistantText: "Wann würde es Ihnen denn passen?",
	})

	if got := cal.created(); len(got) != 0 {
		t.Errorf("expected no events, got %d", len(got))
	}
}
