// Package api exposes the HTTP surface of the bridge: the lead outreach
// API, the telephony webhooks that start calls and receive SMS replies, and
// the operational endpoints.
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/timbra-ai/voicebridge/domain/repositories"
	"github.com/timbra-ai/voicebridge/internal/auth"
	"github.com/timbra-ai/voicebridge/internal/config"
	"github.com/timbra-ai/voicebridge/internal/leads"
	"github.com/timbra-ai/voicebridge/internal/prompts"
	"github.com/timbra-ai/voicebridge/internal/telephony"
)

// Server bundles the dependencies of the HTTP handlers.
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *leads.Store
	sms      repositories.SMSSender
	cal      repositories.Calendar
	resp     repositories.Responder
	issuer   *auth.Issuer
	media    *telephony.Handler
	registry *prometheus.Registry
}

// NewServer creates the HTTP handler bundle. sms and cal may be nil when
// the respective backends are not configured; the affected routes then
// answer 503.
func NewServer(
	cfg *config.Config,
	store *leads.Store,
	sms repositories.SMSSender,
	cal repositories.Calendar,
	resp repositories.Responder,
	issuer *auth.Issuer,
	media *telephony.Handler,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		sms:      sms,
		cal:      cal,
		resp:     resp,
		issuer:   issuer,
		media:    media,
		registry: registry,
	}
}

// InitRoutes initializes all API routes
func (s *Server) InitRoutes(e *echo.Echo) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "voicebridge",
		})
	})

	e.GET("/metrics", echo.WrapHandler(
		promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	// API v1 routes
	v1 := e.Group("/api/v1")
	v1.POST("/leads", s.createLead)
	v1.GET("/leads", s.listLeads)

	// Telephony webhooks. The provider posts x-www-form-urlencoded.
	e.POST("/webhooks/voice", s.voiceWebhook)
	e.POST("/webhooks/sms", s.smsWebhook)

	// Capability token for the browser softphone client
	e.GET("/token", s.token)

	// Bidirectional call audio
	e.GET("/media-stream", s.media.HandleMediaStream)
}

// createLead registers a lead and sends the first outreach SMS.
func (s *Server) createLead(c echo.Context) error {
	var req NewLeadRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Error("Failed to bind lead request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	if req.Name == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "Name and phone are required",
		})
	}
	if s.sms == nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "sms_unconfigured",
			Message: "SMS backend is not configured",
		})
	}

	service := req.Service
	if service == "" {
		service = s.cfg.DefaultService
	}

	lead := s.store.Upsert(req.Name, req.Phone, service)

	ctx := c.Request().Context()
	smsText, err := s.generateText(c, prompts.OutboundSMS(req.Name, service))
	if err != nil {
		s.logger.Error("Failed to generate outreach SMS", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal_error",
		})
	}

	if err := s.sms.Send(ctx, req.Phone, smsText); err != nil {
		s.logger.Error("Failed to send outreach SMS",
			zap.String("phone", req.Phone),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal_error",
		})
	}

	lead = s.store.SetStatus(req.Phone, lead.Status, leads.StatusUpdate{LastMessage: smsText})

	s.logger.Info("Lead contacted",
		zap.String("phone", req.Phone),
		zap.String("service", service))

	return c.JSON(http.StatusOK, NewLeadResponse{
		Success: true,
		Lead:    lead,
		Sent:    smsText,
	})
}

func (s *Server) listLeads(c echo.Context) error {
	return c.JSON(http.StatusOK, LeadsResponse{Leads: s.store.List()})
}

// voiceWebhook answers an incoming call with TwiML that connects the call
// audio to the media-stream endpoint.
func (s *Server) voiceWebhook(c echo.Context) error {
	from := c.FormValue("From")
	callSid := c.FormValue("CallSid")
	s.logger.Info("Incoming call",
		zap.String("from", from),
		zap.String("callSid", callSid))

	twiml := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<Response>
  <Connect>
    <Stream url="wss://%s/media-stream" />
  </Connect>
</Response>`, s.cfg.PublicHost)

	return c.Blob(http.StatusOK, "text/xml", []byte(twiml))
}

// token issues a capability token for the browser test client.
func (s *Server) token(c echo.Context) error {
	client := c.QueryParam("client")
	if client == "" {
		client = "browser-client"
	}

	token, err := s.issuer.IssueClientToken(client)
	if err != nil {
		s.logger.Error("Failed to issue client token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "token_generation_failed",
		})
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// generateText runs a single-shot prompt through the responder.
func (s *Server) generateText(c echo.Context, prompt string) (string, error) {
	return s.resp.Respond(c.Request().Context(), []repositories.Message{
		{Role: repositories.RoleUser, Content: prompt},
	})
}
