package repositories

import "context"

// Transcriber abstracts the speech-to-text backend. Implementations must be
// safe for concurrent use by independent call sessions; each call is a
// stateless request/response exchange.
type Transcriber interface {
	// Transcribe converts a self-describing audio container (WAV) to text.
	// languageHint is a BCP-47 tag such as "de-DE". Failures are returned
	// as *TranscriptionError.
	Transcribe(ctx context.Context, wavAudio []byte, languageHint string) (string, error)
}
