// Package booking turns finished voice exchanges into calendar entries. It
// rides on the session's turn observer hook, downstream of the audio path,
// so a slow calendar API never touches call latency.
package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/timbra-ai/voicebridge/domain/repositories"
	"github.com/timbra-ai/voicebridge/internal/session"
)

// Confirmation phrases the assistant persona uses when it commits to an
// appointment. The caller merely asking about a "Termin" is not enough; the
// assistant has to have agreed.
var confirmPhrases = []string{
	"termin notiert",
	"termin eingetragen",
	"termin vereinbart",
	"habe ich notiert",
	"trage ich ein",
	"ist eingetragen",
	"ich habe den termin",
}

// Watcher inspects completed turns and books a slot when the assistant has
// confirmed an appointment.
type Watcher struct {
	cal     repositories.Calendar
	logger  *zap.Logger
	timeout time.Duration
	slotLen time.Duration
	now     func() time.Time
}

// NewWatcher creates a booking watcher writing to the given calendar.
func NewWatcher(cal repositories.Calendar, logger *zap.Logger) *Watcher {
	return &Watcher{
		cal:     cal,
		logger:  logger,
		timeout: 10 * time.Second,
		slotLen: 15 * time.Minute,
		now:     time.Now,
	}
}

// HandleTurn is the session turn observer. It is called on its own
// goroutine per turn, so blocking on the calendar API here is fine.
func (w *Watcher) HandleTurn(result session.TurnResult) {
	if !w.confirmed(result.AssistantText) {
		return
	}

	// Without a parsed time the slot lands on the next morning; the
	// practice staff reconciles the exact time with the caller.
	start := w.nextMorning()

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	event := repositories.CalendarEvent{
		Summary: fmt.Sprintf("Telefonischer Terminwunsch (%s)", result.CallID),
		Description: fmt.Sprintf("Anrufer: %s\nAssistentin: %s\nGespräch beendet: %s",
			result.UserText, result.AssistantText, result.CompletedAt.Format(time.RFC3339)),
		Start: start,
		End:   start.Add(w.slotLen),
	}

	if err := w.cal.CreateEvent(ctx, event); err != nil {
		w.logger.Error("Failed to create calendar event from call",
			zap.String("callID", result.CallID),
			zap.Error(err))
		return
	}

	w.logger.Info("Appointment booked from call",
		zap.String("callID", result.CallID),
		zap.Time("start", start))
}

func (w *Watcher) confirmed(assistantText string) bool {
	text := strings.ToLower(assistantText)
	for _, phrase := range confirmPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// nextMorning returns 09:00 local time on the following day.
func (w *Watcher) nextMorning() time.Time {
	now := w.now()
	next := now.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 9, 0, 0, 0, now.Location())
}
