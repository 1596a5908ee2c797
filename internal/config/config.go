// Package config loads the service configuration from the environment.
// Endpointing, barge-in and filler-word parameters are deliberately tunable
// here rather than hard-coded in the session logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the complete service configuration.
type Config struct {
	// HTTP server
	Port       string
	PublicHost string // externally reachable host used in the TwiML stream URL

	// Auth
	JWTSecret string

	// Transport audio format
	SampleRate int // Hz, telephony μ-law streams are 8000
	FrameSize  int // bytes per outbound media frame (160 = 20ms at 8kHz)

	// Endpointing
	SilenceAfter    time.Duration // quiet interval that ends a turn
	MinTurnFrames   int           // turns shorter than this are discarded as noise
	MaxBufferFrames int           // overflow trigger forcing an eager transcription
	TickInterval    time.Duration // session loop timer granularity

	// Junk-text filter
	FillerWords  []string // tokens that never drive a response on their own
	MaxFillerLen int      // transcripts longer than this are never treated as filler

	// Barge-in
	InterruptOnBargeIn bool          // cancel playback when the caller speaks
	SpeakingGrace      time.Duration // slack added to the playback estimate fallback

	// Pipeline
	Language          string // BCP-47 language hint for transcription
	Greeting          string // synthetic first turn spoken on call start
	TranscribeTimeout time.Duration
	RespondTimeout    time.Duration
	SynthesizeTimeout time.Duration

	// Voice
	VoiceID        string
	VoiceStability float64
	VoiceClarity   float64

	// Branding
	PracticeName   string // name the voice persona answers with
	DefaultService string // fallback service label for new leads

	// Backend credentials
	GeminiAPIKey     string
	ElevenLabsAPIKey string
	GoogleSABase64   string // base64-encoded service account key for the calendar
	GoogleCalendarID string
	Timezone         string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioPhone      string // sending number for outbound SMS
}

// defaultFillerWords covers German acknowledgements, interjections and the
// transcription artifacts that show up on noisy telephony audio.
var defaultFillerWords = []string{
	"ja", "ok", "okay", "mhm", "hm", "hmm", "äh", "ähm",
	"danke", "genau", "gut", "aha", "also", "so", "oh", "ach",
}

// Load reads the configuration from the environment, applying documented
// defaults for everything optional.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       envString("PORT", "8080"),
		PublicHost: envString("PUBLIC_HOST", "localhost:8080"),
		JWTSecret:  envString("JWT_SECRET", ""),

		SampleRate: envInt("AUDIO_SAMPLE_RATE", 8000),
		FrameSize:  envInt("AUDIO_FRAME_SIZE", 160),

		SilenceAfter:    envDurationMs("ENDPOINT_SILENCE_MS", 900),
		MinTurnFrames:   envInt("ENDPOINT_MIN_TURN_FRAMES", 25),
		MaxBufferFrames: envInt("ENDPOINT_MAX_BUFFER_FRAMES", 500),
		TickInterval:    envDurationMs("ENDPOINT_TICK_MS", 100),

		FillerWords:  envList("FILLER_WORDS", defaultFillerWords),
		MaxFillerLen: envInt("FILLER_MAX_LEN", 20),

		InterruptOnBargeIn: envBool("BARGE_IN_INTERRUPT", false),
		SpeakingGrace:      envDurationMs("SPEAKING_GRACE_MS", 500),

		Language:          envString("LANGUAGE", "de-DE"),
		Greeting:          envString("GREETING", "Guten Tag, Praxis Dr. Emilian Buza, was kann ich für Sie tun?"),
		TranscribeTimeout: envDurationMs("TRANSCRIBE_TIMEOUT_MS", 10000),
		RespondTimeout:    envDurationMs("RESPOND_TIMEOUT_MS", 20000),
		SynthesizeTimeout: envDurationMs("SYNTHESIZE_TIMEOUT_MS", 20000),

		VoiceID:        envString("VOICE_ID", "21m00Tcm4TlvDq8ikWAM"),
		VoiceStability: envFloat("VOICE_STABILITY", 0.5),
		VoiceClarity:   envFloat("VOICE_CLARITY", 0.75),

		PracticeName:   envString("PRACTICE_NAME", "Praxis Dr. Emilian Buza"),
		DefaultService: envString("DEFAULT_SERVICE", "Beratung"),

		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		ElevenLabsAPIKey: os.Getenv("ELEVEN_LABS_API_KEY"),
		GoogleSABase64:   os.Getenv("GOOGLE_SA_BASE64"),
		GoogleCalendarID: envString("GOOGLE_CALENDAR_ID", "primary"),
		Timezone:         envString("TIMEZONE", "Europe/Berlin"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhone:      os.Getenv("TWILIO_PHONE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the session logic cannot
// work with.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.FrameSize < 1 {
		return fmt.Errorf("frame size must be at least 1 byte, got %d", c.FrameSize)
	}
	if c.SilenceAfter < 500*time.Millisecond || c.SilenceAfter > 1200*time.Millisecond {
		return fmt.Errorf("silence interval must be between 500ms and 1200ms, got %v", c.SilenceAfter)
	}
	if c.MinTurnFrames < 1 {
		return fmt.Errorf("minimum turn frames must be at least 1, got %d", c.MinTurnFrames)
	}
	if c.MaxBufferFrames <= c.MinTurnFrames {
		return fmt.Errorf("max buffer frames (%d) must exceed minimum turn frames (%d)",
			c.MaxBufferFrames, c.MinTurnFrames)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", c.TickInterval)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationMs(key string, fallbackMs int) time.Duration {
	return time.Duration(envInt(key, fallbackMs)) * time.Millisecond
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
