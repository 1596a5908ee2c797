package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/timbra-ai/voicebridge/domain/entities"
	"github.com/timbra-ai/voicebridge/domain/repositories"
	"github.com/timbra-ai/voicebridge/internal/leads"
	"github.com/timbra-ai/voicebridge/internal/prompts"
)

// emptyTwiML acknowledges a webhook without sending a reply through the
// voice channel; our replies go out as separate SMS.
const emptyTwiML = "<Response></Response>"

// datetimeLayouts are tried in order against the model-extracted time text.
var datetimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02",
}

// smsWebhook handles a lead's SMS reply: classify the intent, answer with a
// follow-up SMS and move the lead along the pipeline. The provider gets an
// empty TwiML acknowledgment no matter what went wrong internally, so it
// never retries or falls back to an error text.
func (s *Server) smsWebhook(c echo.Context) error {
	incoming := c.FormValue("Body")
	from := c.FormValue("From")
	if from == "" {
		return c.Blob(http.StatusOK, "text/xml", []byte(emptyTwiML))
	}

	name := "dir"
	service := s.cfg.DefaultService
	var leadName string
	if lead, ok := s.store.GetByPhone(from); ok {
		name = lead.Name
		leadName = lead.Name
		if lead.Service != "" {
			service = lead.Service
		}
	}

	raw, err := s.generateText(c, prompts.InboundParse(incoming))
	parsed := prompts.ParsedReply{Intent: prompts.IntentUnclear}
	if err != nil {
		s.logger.Error("Failed to classify inbound SMS", zap.Error(err))
	} else {
		parsed = prompts.ParseReply(raw)
	}

	s.logger.Info("Inbound SMS classified",
		zap.String("from", from),
		zap.String("intent", string(parsed.Intent)))

	switch parsed.Intent {
	case prompts.IntentDecline:
		s.followUp(c, from, prompts.FollowupDecline(name), entities.LeadStatusDeclined, leads.StatusUpdate{})

	case prompts.IntentConfirm, prompts.IntentTimeSuggestion:
		if parsed.DatetimeText == "" {
			s.followUp(c, from, prompts.FollowupAskTime(name), entities.LeadStatusAwaitingTime, leads.StatusUpdate{})
			break
		}

		start := parseDatetime(parsed.DatetimeText)
		if err := s.book(c, from, leadName, service, parsed.Notes, start); err != nil {
			s.logger.Error("Failed to book calendar slot",
				zap.String("from", from),
				zap.Error(err))
			s.followUp(c, from, prompts.FollowupAskTime(name), entities.LeadStatusClarifyTime, leads.StatusUpdate{})
			break
		}

		s.followUp(c, from, prompts.FollowupConfirm(name), entities.LeadStatusBooked, leads.StatusUpdate{
			BookedFor: start.Format(time.RFC3339),
		})

	default:
		s.followUp(c, from, prompts.FollowupAskTime(name), entities.LeadStatusClarifyTime, leads.StatusUpdate{})
	}

	return c.Blob(http.StatusOK, "text/xml", []byte(emptyTwiML))
}

// followUp generates and sends one follow-up SMS and records the lead's new
// status.
func (s *Server) followUp(c echo.Context, to, prompt string, status entities.LeadStatus, update leads.StatusUpdate) {
	if s.sms == nil {
		s.logger.Warn("SMS backend not configured, skipping follow-up", zap.String("to", to))
		s.store.SetStatus(to, status, update)
		return
	}

	msg, err := s.generateText(c, prompt)
	if err != nil {
		s.logger.Error("Failed to generate follow-up SMS", zap.Error(err))
		s.store.SetStatus(to, status, update)
		return
	}

	if err := s.sms.Send(c.Request().Context(), to, msg); err != nil {
		s.logger.Error("Failed to send follow-up SMS",
			zap.String("to", to),
			zap.Error(err))
	}

	update.LastMessage = msg
	s.store.SetStatus(to, status, update)
}

// book writes the agreed slot to the practice calendar.
func (s *Server) book(c echo.Context, from, leadName, service, notes string, start time.Time) error {
	if s.cal == nil {
		return fmt.Errorf("calendar backend is not configured")
	}

	who := leadName
	if who == "" {
		who = "Lead"
	}

	return s.cal.CreateEvent(c.Request().Context(), repositories.CalendarEvent{
		Summary:     fmt.Sprintf("Kennenlern-Call mit %s", who),
		Description: fmt.Sprintf("Service: %s\nTelefon: %s\nNotizen: %s", service, from, notes),
		Start:       start,
	})
}

// parseDatetime tries the known layouts against the model's extracted time
// text; anything unparseable falls back to this time tomorrow.
func parseDatetime(text string) time.Time {
	for _, layout := range datetimeLayouts {
		if ts, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return ts
		}
	}
	return time.Now().Add(24 * time.Hour)
}
