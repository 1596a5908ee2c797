package repositories

import "context"

// VoiceProfile selects the synthesized voice and its delivery.
type VoiceProfile struct {
	VoiceID   string  `json:"voice_id"`
	Language  string  `json:"language"`
	Stability float64 `json:"stability"`
	Clarity   float64 `json:"clarity"`
}

// Synthesizer abstracts the text-to-speech backend. The returned audio is
// raw μ-law at the transport's sample rate so it can be framed and sent
// without transcoding. Implementations must be safe for concurrent use by
// independent call sessions. Failures are returned as *SynthesisError.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice VoiceProfile) ([]byte, error)
}
