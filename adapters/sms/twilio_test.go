package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestValidateTwilioConfig(t *testing.T) {
	valid := TwilioConfig{AccountSID: "AC123", AuthToken: "secret", From: "+4930123456"}
	if err := ValidateTwilioConfig(valid); err != nil {
		t.Errorf("unexpected error for valid config: %v", err)
	}

	for _, config := range []TwilioConfig{
		{AuthToken: "secret", From: "+4930123456"},
		{AccountSID: "AC123", From: "+4930123456"},
		{AccountSID: "AC123", AuthToken: "secret"},
	} {
		if err := ValidateTwilioConfig(config); err == nil {
			t.Errorf("expected error for config %+v", config)
		}
	}
}

func TestTwilioSMS_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Accounts/AC123/Messages.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "secret" {
			t.Error("expected basic auth with account SID and token")
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if got := r.PostForm.Get("To"); got != "+4915112345678" {
			t.Errorf("To = %q", got)
		}
		if got := r.PostForm.Get("From"); got != "+4930123456" {
			t.Errorf("From = %q", got)
		}
		if got := r.PostForm.Get("Body"); got != "Heute oder morgen – was passt dir besser?" {
			t.Errorf("Body = %q", got)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM123"}`))
	}))
	defer server.Close()

	sender, err := NewTwilioSMS(TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "secret",
		From:       "+4930123456",
		APIBaseURL: server.URL,
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewTwilioSMS failed: %v", err)
	}

	err = sender.Send(context.Background(), "+4915112345678", "Heute oder morgen – was passt dir besser?")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
}

func TestTwilioSMS_SendErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":21211}`, http.StatusBadRequest)
	}))
	defer server.Close()

	sender, err := NewTwilioSMS(TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "secret",
		From:       "+4930123456",
		APIBaseURL: server.URL,
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewTwilioSMS failed: %v", err)
	}

	if err := sender.Send(context.Background(), "", "hallo"); err == nil {
		t.Error("expected error for empty recipient")
	}
	if err := sender.Send(context.Background(), "+4915112345678", " "); err == nil {
		t.Error("expected error for empty body")
	}
	if err := sender.Send(context.Background(), "+4915112345678", "hallo"); err == nil {
		t.Error("expected error for non-2xx response")
	}
}
