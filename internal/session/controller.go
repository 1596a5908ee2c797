// Package session implements the per-call state machine that turns a raw
// telephony audio stream into a spoken, turn-based conversation. One
// goroutine owns each session; every transition happens inside that
// goroutine's event loop, which is what makes the single-writer invariants
// on the turn buffer and the conversation history hold by construction.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/timbra-ai/voicebridge/domain/entities"
	"github.com/timbra-ai/voicebridge/domain/repositories"
	"github.com/timbra-ai/voicebridge/internal/audio"
	"github.com/timbra-ai/voicebridge/internal/config"
	"github.com/timbra-ai/voicebridge/internal/metrics"
)

// TurnResult is handed to the optional turn observer after a turn fully
// completed (assistant audio queued for playback). Observers run outside
// the session loop and must not block it.
type TurnResult struct {
	SessionID     string
	CallID        string
	UserText      string
	AssistantText string
	CompletedAt   time.Time
}

// Clients bundles the three external pipeline backends.
type Clients struct {
	Transcriber repositories.Transcriber
	Responder   repositories.Responder
	Synthesizer repositories.Synthesizer
}

// Session owns all mutable state of one active call: the turn buffer, the
// conversation history and the state machine position. It is created on the
// transport's start of a connection and destroyed, history included, when
// the connection closes.
type Session struct {
	id       string
	streamID string
	callID   string
	state    State

	cfg       *config.Config
	logger    *zap.Logger
	met       *metrics.Metrics
	transport Transport
	clients   Clients

	turn *audio.TurnBuffer
	conv *entities.Conversation

	events chan Event
	ctx    context.Context
	cancel context.CancelFunc

	systemPrompt string
	onTurn       func(TurnResult)
	filter       *junkFilter

	// listeningSince is the instant Listening was last entered. Frames that
	// arrived earlier belong to a finished or aborted turn and are dropped,
	// never merged into the next one.
	listeningSince time.Time
	// speakingUntil is the playback-estimate fallback deadline for leaving
	// Speaking when the transport never acknowledges the mark.
	speakingUntil time.Time
	awaitedMark   string

	outboundSeq uint64
	turnSeq     int
	startedAt   time.Time

	now func() time.Time
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithSystemPrompt sets the persona instruction prepended to every
// responder call.
func WithSystemPrompt(prompt string) Option {
	return func(s *Session) { s.systemPrompt = prompt }
}

// WithTurnObserver registers a callback invoked after each completed turn.
func WithTurnObserver(fn func(TurnResult)) Option {
	return func(s *Session) { s.onTurn = fn }
}

// New creates a session in AwaitingStart. Run must be called to start the
// event loop.
func New(
	cfg *config.Config,
	transport Transport,
	clients Clients,
	met *metrics.Metrics,
	logger *zap.Logger,
	opts ...Option,
) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:        uuid.NewString(),
		state:     StateAwaitingStart,
		cfg:       cfg,
		logger:    logger,
		met:       met,
		transport: transport,
		clients:   clients,
		turn:      audio.NewTurnBuffer(),
		conv:      entities.NewConversation(),
		events:    make(chan Event, 512),
		filter:    newJunkFilter(cfg.FillerWords, cfg.MaxFillerLen),
		ctx:       ctx,
		cancel:    cancel,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("sessionID", s.id))
	return s
}

// ID returns the session's opaque identifier.
func (s *Session) ID() string { return s.id }

// State returns the current state. Only meaningful from within the session
// goroutine or after Run has returned; exposed for diagnostics and tests.
func (s *Session) State() State { return s.state }

// Deliver queues a transport event for the session loop. It blocks while
// the loop is busy in a pipeline stage, which keeps event order intact;
// delivery is abandoned once the session is shutting down.
func (s *Session) Deliver(ev Event) {
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

// Run consumes events until the session closes. It is the only goroutine
// that touches the session's mutable state.
func (s *Session) Run() {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()
	defer s.cancel()

	for {
		select {
		case ev := <-s.events:
			s.handleEvent(ev)
		case <-ticker.C:
			s.handleTick()
		case <-s.ctx.Done():
			s.teardown(nil)
		}
		if s.state == StateClosed {
			return
		}
	}
}

// Close requests an orderly shutdown from outside the loop.
func (s *Session) Close() {
	s.cancel()
}

func (s *Session) handleEvent(ev Event) {
	switch ev := ev.(type) {
	case StartEvent:
		s.handleStart(ev)
	case MediaEvent:
		s.handleMedia(ev)
	case StopEvent:
		s.handleStop(ev)
	case MarkEvent:
		s.handleMark(ev)
	case CloseEvent:
		s.teardown(ev.Err)
	}
}

func (s *Session) handleStart(ev StartEvent) {
	if s.state != StateAwaitingStart {
		s.logger.Warn("Ignoring duplicate start event", zap.String("state", s.state.String()))
		return
	}
	s.streamID = ev.StreamID
	s.callID = ev.CallID
	s.startedAt = ev.At
	s.logger = s.logger.With(zap.String("streamID", ev.StreamID), zap.String("callID", ev.CallID))
	s.met.SessionsStarted.Inc()
	s.met.ActiveSessions.Inc()

	s.enterListening()
	s.logger.Info("Session started")

	if s.cfg.Greeting != "" {
		s.speakGreeting()
	}
}

func (s *Session) handleMedia(ev MediaEvent) {
	s.met.FramesReceived.Inc()

	switch s.state {
	case StateListening:
		// Frames that arrived before Listening was re-entered belong to the
		// previous turn and were already consumed or abandoned.
		if ev.At.Before(s.listeningSince) {
			s.met.FramesDropped.Inc()
			return
		}
		s.turn.Append(ev.Frame, ev.At)
		if s.turn.FrameCount() >= s.cfg.MaxBufferFrames {
			s.met.OverflowTriggers.Inc()
			s.logger.Debug("Turn buffer overflow, forcing transcription",
				zap.Int("frames", s.turn.FrameCount()))
			s.completeTurn()
		}

	case StateSpeaking:
		if s.cfg.InterruptOnBargeIn {
			s.interruptPlayback(ev)
			return
		}
		s.met.FramesDropped.Inc()

	default:
		s.met.FramesDropped.Inc()
	}
}

// interruptPlayback is the stricter barge-in mode: inbound speech during
// playback cancels the remaining outbound audio and reopens the floor.
func (s *Session) interruptPlayback(ev MediaEvent) {
	s.logger.Info("Barge-in detected, canceling playback")
	if err := s.transport.SendClear(s.streamID); err != nil {
		s.fail(err)
		return
	}
	s.enterListening()
	s.listeningSince = ev.At
	s.turn.Append(ev.Frame, ev.At)
}

func (s *Session) handleMark(ev MarkEvent) {
	if s.state != StateSpeaking || ev.Name != s.awaitedMark {
		return
	}
	s.logger.Debug("Playback acknowledged", zap.String("mark", ev.Name))
	s.enterListening()
}

func (s *Session) handleStop(ev StopEvent) {
	s.logger.Info("Inbound stream stopped")
	if s.state != StateListening {
		return
	}
	// Endpoint eagerly: the caller will send no more audio this stream.
	if s.turn.FrameCount() >= s.cfg.MinTurnFrames {
		s.completeTurn()
		return
	}
	if s.turn.FrameCount() > 0 {
		s.discardTurn("too_short")
	}
}

func (s *Session) handleTick() {
	now := s.now()
	switch s.state {
	case StateListening:
		s.checkSilence(now)
	case StateSpeaking:
		if !s.speakingUntil.IsZero() && !now.Before(s.speakingUntil) {
			s.logger.Debug("Playback estimate elapsed without mark acknowledgment")
			s.enterListening()
		}
	}
}

// checkSilence fires the endpointing decision: a quiet gap after enough
// accumulated speech completes the turn; a quiet gap after too little is
// discarded as noise without a transcription call.
func (s *Session) checkSilence(now time.Time) {
	if s.turn.FrameCount() == 0 {
		return
	}
	if now.Sub(s.turn.LastAppend()) < s.cfg.SilenceAfter {
		return
	}
	if s.turn.FrameCount() < s.cfg.MinTurnFrames {
		s.discardTurn("too_short")
		return
	}
	s.completeTurn()
}

func (s *Session) discardTurn(reason string) {
	frames := s.turn.FrameCount()
	s.turn.Drain()
	s.met.TurnsDiscarded.WithLabelValues(reason).Inc()
	s.logger.Debug("Turn discarded",
		zap.String("reason", reason),
		zap.Int("frames", frames))
	s.listeningSince = s.now()
}

// completeTurn drives one full Transcribe→Respond→Synthesize→Speak pass.
// It runs inline in the event loop: no new pipeline stage can start until
// the previous one resolves or fails, and no concurrent code path can touch
// the turn buffer while it drains.
func (s *Session) completeTurn() {
	turnAudio := s.turn.Drain()
	s.turnSeq++

	transcript, err := s.transcribe(turnAudio)
	if err != nil {
		s.recover("transcribe", err)
		return
	}

	if s.filter.IsJunk(transcript) {
		s.met.TurnsDiscarded.WithLabelValues("junk_text").Inc()
		s.logger.Debug("Transcript rejected as filler", zap.String("text", transcript))
		s.enterListening()
		return
	}

	s.conv.Append(entities.SpeakerUser, transcript, s.now())
	s.logger.Info("User turn transcribed", zap.String("text", transcript))

	reply, err := s.respond()
	if err != nil {
		s.recover("respond", err)
		return
	}

	speech, err := s.synthesize(reply)
	if err != nil {
		s.recover("synthesize", err)
		return
	}

	// The assistant utterance enters history only now, with its audio in
	// hand: a canceled or failed synthesis must not desynchronize history
	// from what the caller actually heard.
	s.conv.Append(entities.SpeakerAssistant, reply, s.now())
	s.logger.Info("Assistant turn ready", zap.String("text", reply))
	s.met.TurnsCompleted.Inc()

	s.notifyTurn(transcript, reply)
	s.speak(speech)
}

func (s *Session) transcribe(turnAudio []byte) (string, error) {
	s.state = StateTranscribing
	started := s.now()

	pcm := audio.DecodeMulaw(turnAudio)
	container, err := audio.EncodeWAV(pcm, s.cfg.SampleRate)
	if err != nil {
		return "", &repositories.TranscriptionError{Err: err}
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.TranscribeTimeout)
	defer cancel()

	text, err := s.clients.Transcriber.Transcribe(ctx, container, s.cfg.Language)
	s.met.StageDuration.WithLabelValues("transcribe").Observe(s.now().Sub(started).Seconds())
	return text, err
}

func (s *Session) respond() (string, error) {
	s.state = StateResponding
	started := s.now()

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.RespondTimeout)
	defer cancel()

	reply, err := s.clients.Responder.Respond(ctx, s.promptMessages())
	s.met.StageDuration.WithLabelValues("respond").Observe(s.now().Sub(started).Seconds())
	return reply, err
}

func (s *Session) synthesize(text string) ([]byte, error) {
	s.state = StateSynthesizing
	started := s.now()

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.SynthesizeTimeout)
	defer cancel()

	voice := repositories.VoiceProfile{
		VoiceID:   s.cfg.VoiceID,
		Language:  s.cfg.Language,
		Stability: s.cfg.VoiceStability,
		Clarity:   s.cfg.VoiceClarity,
	}
	speech, err := s.clients.Synthesizer.Synthesize(ctx, text, voice)
	s.met.StageDuration.WithLabelValues("synthesize").Observe(s.now().Sub(started).Seconds())
	return speech, err
}

// speak re-chunks synthesized μ-law audio into transport frames, sends them
// in order, and queues a playback mark behind them. The session leaves
// Speaking on the mark acknowledgment, or on the byte-length duration
// estimate if the transport never delivers one.
func (s *Session) speak(speech []byte) {
	frames := audio.Chunk(speech, s.cfg.FrameSize)
	for {
		frame, ok := frames.Next()
		if !ok {
			break
		}
		if err := s.transport.SendMedia(s.streamID, frame); err != nil {
			s.fail(err)
			return
		}
		s.outboundSeq++
		s.met.FramesSent.Inc()
	}

	s.awaitedMark = fmt.Sprintf("turn-%d", s.turnSeq)
	if err := s.transport.SendMark(s.streamID, s.awaitedMark); err != nil {
		s.fail(err)
		return
	}

	s.speakingUntil = s.now().
		Add(audio.MulawDuration(len(speech), s.cfg.SampleRate)).
		Add(s.cfg.SpeakingGrace)
	s.state = StateSpeaking
	s.logger.Debug("Speaking",
		zap.Int("audioBytes", len(speech)),
		zap.Uint64("outboundSeq", s.outboundSeq),
		zap.Time("fallbackDeadline", s.speakingUntil))
}

// speakGreeting runs the synthetic first turn scheduled on transport start:
// a configured greeting that skips transcription and response generation.
func (s *Session) speakGreeting() {
	s.turnSeq++
	speech, err := s.synthesize(s.cfg.Greeting)
	if err != nil {
		s.recover("synthesize", err)
		return
	}
	s.conv.Append(entities.SpeakerAssistant, s.cfg.Greeting, s.now())
	s.speak(speech)
}

func (s *Session) promptMessages() []repositories.Message {
	utterances := s.conv.Utterances()
	messages := make([]repositories.Message, 0, len(utterances)+1)
	if s.systemPrompt != "" {
		messages = append(messages, repositories.Message{
			Role:    repositories.RoleSystem,
			Content: s.systemPrompt,
		})
	}
	for _, u := range utterances {
		role := repositories.RoleUser
		if u.Speaker == entities.SpeakerAssistant {
			role = repositories.RoleAssistant
		}
		messages = append(messages, repositories.Message{Role: role, Content: u.Text})
	}
	return messages
}

func (s *Session) notifyTurn(userText, assistantText string) {
	if s.onTurn == nil {
		return
	}
	result := TurnResult{
		SessionID:     s.id,
		CallID:        s.callID,
		UserText:      userText,
		AssistantText: assistantText,
		CompletedAt:   s.now(),
	}
	// Observers run on their own goroutine so a slow consumer (calendar,
	// CRM) can never stall audio handling.
	go s.onTurn(result)
}

// recover implements the error policy: stage failures are logged and
// counted, the in-flight turn is gone, and the caller simply gets to speak
// again. The session itself survives everything except transport failures.
func (s *Session) recover(stage string, err error) {
	s.met.StageFailures.WithLabelValues(stage).Inc()
	s.logger.Error("Pipeline stage failed, returning to listening",
		zap.String("stage", stage),
		zap.Error(err))
	s.enterListening()
}

func (s *Session) enterListening() {
	s.state = StateListening
	s.listeningSince = s.now()
	s.speakingUntil = time.Time{}
	s.awaitedMark = ""
}

// fail closes the session on a transport error. Stage errors never come
// through here.
func (s *Session) fail(err error) {
	s.teardown(&repositories.TransportError{Err: err})
}

func (s *Session) teardown(err error) {
	if s.state == StateClosed {
		return
	}
	if err != nil {
		s.logger.Error("Session closed with error", zap.Error(err))
	} else {
		s.logger.Info("Session closed")
	}
	if !s.startedAt.IsZero() {
		s.met.ActiveSessions.Dec()
		s.met.SessionDuration.Observe(s.now().Sub(s.startedAt).Seconds())
	}
	s.state = StateClosed
	s.cancel()
}
