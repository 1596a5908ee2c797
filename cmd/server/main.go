package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/timbra-ai/voicebridge/adapters/calendar"
	"github.com/timbra-ai/voicebridge/adapters/llm"
	"github.com/timbra-ai/voicebridge/adapters/sms"
	"github.com/timbra-ai/voicebridge/adapters/stt"
	"github.com/timbra-ai/voicebridge/adapters/tts"
	"github.com/timbra-ai/voicebridge/domain/repositories"
	"github.com/timbra-ai/voicebridge/internal/api"
	"github.com/timbra-ai/voicebridge/internal/auth"
	"github.com/timbra-ai/voicebridge/internal/booking"
	"github.com/timbra-ai/voicebridge/internal/config"
	"github.com/timbra-ai/voicebridge/internal/leads"
	"github.com/timbra-ai/voicebridge/internal/metrics"
	"github.com/timbra-ai/voicebridge/internal/prompts"
	"github.com/timbra-ai/voicebridge/internal/session"
	"github.com/timbra-ai/voicebridge/internal/telephony"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	registry := prometheus.NewRegistry()
	met := metrics.New(registry)

	// Voice pipeline backends
	transcriber, err := stt.NewGoogleTranscriber(ctx, cfg.SampleRate, logger)
	if err != nil {
		logger.Fatal("Failed to create transcriber", zap.Error(err))
	}
	defer transcriber.Close()

	responder, err := llm.NewGeminiResponder(ctx, llm.GeminiConfig{APIKey: cfg.GeminiAPIKey}, logger)
	if err != nil {
		logger.Fatal("Failed to create responder", zap.Error(err))
	}

	synthesizer, err := tts.NewElevenLabsTTS(tts.ElevenLabsConfig{APIKey: cfg.ElevenLabsAPIKey}, logger)
	if err != nil {
		logger.Fatal("Failed to create synthesizer", zap.Error(err))
	}

	// Outreach backends are optional; without them the bridge still
	// answers calls, it just cannot text leads or book slots.
	var cal repositories.Calendar
	if cfg.GoogleSABase64 != "" {
		googleCal, err := calendar.NewGoogleCalendar(ctx, calendar.GoogleCalendarConfig{
			ServiceAccountBase64: cfg.GoogleSABase64,
			CalendarID:           cfg.GoogleCalendarID,
			Timezone:             cfg.Timezone,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to create calendar client", zap.Error(err))
		}
		cal = googleCal
	} else {
		logger.Warn("GOOGLE_SA_BASE64 not set, calendar booking disabled")
	}

	var smsSender repositories.SMSSender
	if cfg.TwilioAccountSID != "" {
		twilioSMS, err := sms.NewTwilioSMS(sms.TwilioConfig{
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			From:       cfg.TwilioPhone,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to create SMS sender", zap.Error(err))
		}
		smsSender = twilioSMS
	} else {
		logger.Warn("TWILIO_ACCOUNT_SID not set, SMS outreach disabled")
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("JWT_SECRET not set, client tokens will not survive a restart")
	}
	issuer, err := auth.NewIssuer(secret)
	if err != nil {
		logger.Fatal("Failed to create token issuer", zap.Error(err))
	}

	sessionOpts := []session.Option{
		session.WithSystemPrompt(prompts.VoiceSystem(cfg.PracticeName)),
	}
	if cal != nil {
		watcher := booking.NewWatcher(cal, logger)
		sessionOpts = append(sessionOpts, session.WithTurnObserver(watcher.HandleTurn))
	}

	media := telephony.NewHandler(cfg, session.Clients{
		Transcriber: transcriber,
		Responder:   responder,
		Synthesizer: synthesizer,
	}, met, logger, sessionOpts...)

	store := leads.NewStore()
	server := api.NewServer(cfg, store, smsSender, cal, responder, issuer, media, registry, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	server.InitRoutes(e)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Voice bridge started",
		zap.String("port", cfg.Port),
		zap.String("publicHost", cfg.PublicHost))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
