package session

import (
	"context"
	"sync"

	"github.com/timbra-ai/voicebridge/domain/repositories"
)

// mockTranscriber records every transcription request.
type mockTranscriber struct {
	calls     int
	lastAudio []byte
	lastLang  string
	text      string
	err       error
	onCall    func()
}

func (m *mockTranscriber) Transcribe(_ context.Context, wavAudio []byte, languageHint string) (string, error) {
	m.calls++
	m.lastAudio = wavAudio
	m.lastLang = languageHint
	if m.onCall != nil {
		m.onCall()
	}
	if m.err != nil {
		return "", &repositories.TranscriptionError{Err: m.err}
	}
	return m.text, nil
}

// mockResponder records the prompt of every respond call.
type mockResponder struct {
	calls        int
	lastMessages []repositories.Message
	reply        string
	err          error
	onCall       func()
}

func (m *mockResponder) Respond(_ context.Context, messages []repositories.Message) (string, error) {
	m.calls++
	m.lastMessages = messages
	if m.onCall != nil {
		m.onCall()
	}
	if m.err != nil {
		return "", &repositories.ResponderError{Err: m.err}
	}
	return m.reply, nil
}

// mockSynthesizer returns a fixed audio buffer.
type mockSynthesizer struct {
	calls    int
	lastText string
	speech   []byte
	err      error
	onCall   func()
}

func (m *mockSynthesizer) Synthesize(_ context.Context, text string, _ repositories.VoiceProfile) ([]byte, error) {
	m.calls++
	m.lastText = text
	if m.onCall != nil {
		m.onCall()
	}
	if m.err != nil {
		return nil, &repositories.SynthesisError{Err: m.err}
	}
	return m.speech, nil
}

// sentFrame is one outbound media frame recorded by the mock transport.
type sentFrame struct {
	streamID string
	payload  []byte
}

// mockTransport records everything the session sends.
type mockTransport struct {
	mu     sync.Mutex
	frames []sentFrame
	marks  []string
	clears int
	err    error
}

func (m *mockTransport) SendMedia(streamID string, frame []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	payload := make([]byte, len(frame))
	copy(payload, frame)
	m.frames = append(m.frames, sentFrame{streamID: streamID, payload: payload})
	return nil
}

func (m *mockTransport) SendMark(streamID string, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.marks = append(m.marks, name)
	return nil
}

func (m *mockTransport) SendClear(string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	return nil
}

func (m *mockTransport) sentFrames() []sentFrame {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentFrame, len(m.frames))
	copy(out, m.frames)
	return out
}
