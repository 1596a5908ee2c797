package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/timbra-ai/voicebridge/domain/repositories"
)

const defaultAPIBaseURL = "https://api.twilio.com/2010-04-01"

// TwilioConfig holds configuration for the TwilioSMS adapter.
// Required fields:
// - AccountSID: Twilio account SID
// - AuthToken: Twilio auth token
// - From: the sending phone number in E.164 form
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	APIBaseURL string
}

// TwilioSMS implements the SMSSender interface against the Twilio Messages
// REST API.
type TwilioSMS struct {
	accountSID string
	authToken  string
	from       string
	apiBaseURL string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ repositories.SMSSender = (*TwilioSMS)(nil)

// ValidateTwilioConfig validates the TwilioConfig
func ValidateTwilioConfig(config TwilioConfig) error {
	if config.AccountSID == "" {
		return fmt.Errorf("twilio account SID is required")
	}
	if config.AuthToken == "" {
		return fmt.Errorf("twilio auth token is required")
	}
	if config.From == "" {
		return fmt.Errorf("twilio sending number is required")
	}
	return nil
}

// NewTwilioSMS creates a new Twilio SMS sender
func NewTwilioSMS(config TwilioConfig, logger *zap.Logger) (*TwilioSMS, error) {
	if err := ValidateTwilioConfig(config); err != nil {
		return nil, err
	}

	apiBaseURL := config.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
	}

	return &TwilioSMS{
		accountSID: config.AccountSID,
		authToken:  config.AuthToken,
		from:       config.From,
		apiBaseURL: apiBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}, nil
}

// Send delivers one text message. Twilio expects form-encoded bodies with
// HTTP basic auth.
func (t *TwilioSMS) Send(ctx context.Context, to string, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient number is required")
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("message body is required")
	}

	form := url.Values{}
	form.Set("From", t.from)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.apiBaseURL, t.accountSID)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.SetBasicAuth(t.accountSID, t.authToken)

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		t.logger.Error("Twilio API returned error",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", string(errorBody)))
		return fmt.Errorf("twilio API returned status %d", resp.StatusCode)
	}

	t.logger.Info("SMS sent", zap.String("to", to), zap.Int("bodyLength", len(body)))
	return nil
}
