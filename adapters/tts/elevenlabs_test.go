package tts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/timbra-ai/voicebridge/domain/repositories"
)

func TestNewElevenLabsTTS(t *testing.T) {
	logger := zaptest.NewLogger(t)

	_, err := NewElevenLabsTTS(ElevenLabsConfig{}, logger)
	if err == nil {
		t.Error("Expected error when API key is not set")
	}

	tts, err := NewElevenLabsTTS(ElevenLabsConfig{APIKey: "test-api-key"}, logger)
	if err != nil {
		t.Fatalf("Failed to create ElevenLabsTTS: %v", err)
	}

	if tts.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", tts.apiKey)
	}
	if tts.modelID != defaultModelID {
		t.Errorf("Expected default model ID '%s', got '%s'", defaultModelID, tts.modelID)
	}
	if tts.outputFormat != defaultOutputFormat {
		t.Errorf("Expected default output format '%s', got '%s'", defaultOutputFormat, tts.outputFormat)
	}
}

func TestElevenLabsTTS_Synthesize(t *testing.T) {
	wantAudio := []byte{0xFF, 0x7F, 0xFF, 0x7F, 0xFF, 0x7F}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text-to-speech/voice-123" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("output_format"); got != "ulaw_8000" {
			t.Errorf("expected output_format ulaw_8000, got %q", got)
		}
		if got := r.Header.Get("xi-api-key"); got != "test-api-key" {
			t.Errorf("expected api key header, got %q", got)
		}

		var req ElevenLabsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Text != "Guten Tag" {
			t.Errorf("expected text 'Guten Tag', got %q", req.Text)
		}
		if req.LanguageCode != "de" {
			t.Errorf("expected language code 'de', got %q", req.LanguageCode)
		}
		if req.VoiceSettings.Stability != 0.6 {
			t.Errorf("expected stability 0.6, got %f", req.VoiceSettings.Stability)
		}

		w.Write(wantAudio)
	}))
	defer server.Close()

	tts, err := NewElevenLabsTTS(ElevenLabsConfig{
		APIKey:     "test-api-key",
		APIBaseURL: server.URL,
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create ElevenLabsTTS: %v", err)
	}

	audio, err := tts.Synthesize(context.Background(), "Guten Tag", repositories.VoiceProfile{
		VoiceID:   "voice-123",
		Language:  "de-DE",
		Stability: 0.6,
		Clarity:   0.8,
	})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if string(audio) != string(wantAudio) {
		t.Errorf("unexpected audio payload: %v", audio)
	}
}

func TestElevenLabsTTS_SynthesizeErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid voice"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	tts, err := NewElevenLabsTTS(ElevenLabsConfig{
		APIKey:     "test-api-key",
		APIBaseURL: server.URL,
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create ElevenLabsTTS: %v", err)
	}

	voice := repositories.VoiceProfile{VoiceID: "voice-123"}

	if _, err := tts.Synthesize(context.Background(), "   ", voice); err == nil {
		t.Error("expected error for blank text")
	}
	if _, err := tts.Synthesize(context.Background(), "Hallo", repositories.VoiceProfile{}); err == nil {
		t.Error("expected error for missing voice ID")
	}

	_, err = tts.Synthesize(context.Background(), "Hallo", voice)
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	var synthErr *repositories.SynthesisError
	if !errors.As(err, &synthErr) {
		t.Errorf("expected *SynthesisError, got %T", err)
	}
}

func TestLanguageCode(t *testing.T) {
	if got := languageCode("de-DE"); got != "de" {
		t.Errorf("expected 'de', got %q", got)
	}
	if got := languageCode("en"); got != "en" {
		t.Errorf("expected 'en', got %q", got)
	}
}
