// Package telephony adapts the bidirectional media-stream connection of the
// telephony provider to the session event model. One websocket connection
// carries one call: a start event with the stream identifier, a steady
// stream of 20ms μ-law media frames, playback mark acknowledgments, and a
// stop when the caller hangs up.
package telephony

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/timbra-ai/voicebridge/internal/config"
	"github.com/timbra-ai/voicebridge/internal/metrics"
	"github.com/timbra-ai/voicebridge/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The media stream is initiated by the telephony provider, not a
		// browser; there is no meaningful origin to check.
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handler accepts media-stream connections and runs one session per call.
type Handler struct {
	cfg     *config.Config
	clients session.Clients
	met     *metrics.Metrics
	logger  *zap.Logger
	opts    []session.Option
}

// NewHandler creates a media-stream handler. opts are passed through to
// every session it creates.
func NewHandler(
	cfg *config.Config,
	clients session.Clients,
	met *metrics.Metrics,
	logger *zap.Logger,
	opts ...session.Option,
) *Handler {
	return &Handler{
		cfg:     cfg,
		clients: clients,
		met:     met,
		logger:  logger,
		opts:    opts,
	}
}

// HandleMediaStream upgrades the connection and pumps transport events into
// a freshly allocated session until the stream closes.
func (h *Handler) HandleMediaStream(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("Media stream upgrade failed", zap.Error(err))
		return err
	}

	conn := NewConn(ws)
	sess := session.New(h.cfg, conn, h.clients, h.met, h.logger, h.opts...)
	go sess.Run()

	h.logger.Info("Media stream connected", zap.String("sessionID", sess.ID()))
	h.readLoop(ws, sess)

	sess.Close()
	conn.Close()
	return nil
}

// readLoop translates wire messages into session events. It is the only
// reader of the connection; event order on the session channel matches wire
// order exactly.
func (h *Handler) readLoop(ws *websocket.Conn, sess *session.Session) {
	ws.SetReadLimit(maxMessageSize)

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Error("Media stream read failed", zap.Error(err))
				sess.Deliver(session.CloseEvent{Err: err, At: time.Now()})
				return
			}
			sess.Deliver(session.CloseEvent{At: time.Now()})
			return
		}
		h.dispatch(raw, sess)
	}
}

func (h *Handler) dispatch(raw []byte, sess *session.Session) {
	var env wireEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.logger.Warn("Discarding unparsable media-stream message", zap.Error(err))
		return
	}

	now := time.Now()
	switch env.Event {
	case "connected":
		h.logger.Debug("Media stream handshake complete")

	case "start":
		if env.Start == nil {
			h.logger.Warn("Start event without payload")
			return
		}
		sess.Deliver(session.StartEvent{
			StreamID: env.Start.StreamSid,
			CallID:   env.Start.CallSid,
			At:       now,
		})

	case "media":
		if env.Media == nil {
			return
		}
		if env.Media.Track == trackOutbound {
			return
		}
		frame, err := env.Media.decodeAudio()
		if err != nil {
			h.logger.Warn("Discarding media frame with invalid payload", zap.Error(err))
			return
		}
		sess.Deliver(session.MediaEvent{Frame: frame, Track: env.Media.Track, At: now})

	case "mark":
		if env.Mark == nil {
			return
		}
		sess.Deliver(session.MarkEvent{Name: env.Mark.Name, At: now})

	case "stop":
		sess.Deliver(session.StopEvent{At: now})

	default:
		h.logger.Warn("Unknown media-stream event", zap.String("event", env.Event))
	}
}
