package calendar

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"

	"github.com/timbra-ai/voicebridge/domain/repositories"
)

const (
	defaultAPIBaseURL = "https://www.googleapis.com/calendar/v3"
	defaultCalendarID = "primary"
	defaultTimezone   = "Europe/Berlin"
	calendarScope     = "https://www.googleapis.com/auth/calendar"
)

// GoogleCalendarConfig holds configuration for the GoogleCalendar adapter.
// Required fields:
// - ServiceAccountBase64: base64-encoded service account JSON key
// Optional fields with defaults:
// - CalendarID: target calendar (default: "primary")
// - Timezone: event timezone (default: "Europe/Berlin")
type GoogleCalendarConfig struct {
	ServiceAccountBase64 string
	CalendarID           string
	Timezone             string
	APIBaseURL           string
}

// GoogleCalendar implements the Calendar interface against the Google
// Calendar v3 REST API, authenticated with a service account.
type GoogleCalendar struct {
	httpClient *http.Client
	apiBaseURL string
	calendarID string
	timezone   string
	logger     *zap.Logger
}

var _ repositories.Calendar = (*GoogleCalendar)(nil)

type eventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type eventAttendee struct {
	Email string `json:"email"`
}

type eventRequest struct {
	Summary     string          `json:"summary"`
	Description string          `json:"description,omitempty"`
	Start       eventTime       `json:"start"`
	End         eventTime       `json:"end"`
	Attendees   []eventAttendee `json:"attendees,omitempty"`
}

// NewGoogleCalendar creates a calendar adapter from a base64-encoded service
// account key.
func NewGoogleCalendar(ctx context.Context, config GoogleCalendarConfig, logger *zap.Logger) (*GoogleCalendar, error) {
	if config.ServiceAccountBase64 == "" {
		return nil, fmt.Errorf("service account key is required")
	}

	saJSON, err := base64.StdEncoding.DecodeString(config.ServiceAccountBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode service account key: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(saJSON, calendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account key: %w", err)
	}

	calendarID := config.CalendarID
	if calendarID == "" {
		calendarID = defaultCalendarID
	}
	timezone := config.Timezone
	if timezone == "" {
		timezone = defaultTimezone
	}
	apiBaseURL := config.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
	}

	return &GoogleCalendar{
		httpClient: jwtConfig.Client(ctx),
		apiBaseURL: apiBaseURL,
		calendarID: calendarID,
		timezone:   timezone,
		logger:     logger,
	}, nil
}

// CreateEvent inserts an event into the configured calendar.
func (g *GoogleCalendar) CreateEvent(ctx context.Context, event repositories.CalendarEvent) error {
	end := event.End
	if end.IsZero() {
		end = event.Start.Add(15 * time.Minute)
	}

	request := eventRequest{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       eventTime{DateTime: event.Start.Format(time.RFC3339), TimeZone: g.timezone},
		End:         eventTime{DateTime: end.Format(time.RFC3339), TimeZone: g.timezone},
	}
	for _, email := range event.Attendees {
		request.Attendees = append(request.Attendees, eventAttendee{Email: email})
	}

	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events", g.apiBaseURL, url.PathEscape(g.calendarID))
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		g.logger.Error("Calendar API returned error",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", string(errorBody)))
		return fmt.Errorf("calendar API returned status %d", resp.StatusCode)
	}

	g.logger.Info("Calendar event created",
		zap.String("summary", event.Summary),
		zap.Time("start", event.Start))
	return nil
}
