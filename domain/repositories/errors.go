package repositories

import "fmt"

// Stage errors form the taxonomy for the voice pipeline. Transcription,
// responder and synthesis failures are recoverable: the session logs them,
// discards the turn and keeps listening. Transport errors are fatal to the
// session that raised them and to nothing else.

// TranscriptionError wraps a failure of the speech-to-text backend.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// ResponderError wraps a failure of the language-model backend.
type ResponderError struct {
	Err error
}

func (e *ResponderError) Error() string {
	return fmt.Sprintf("responder failed: %v", e.Err)
}

func (e *ResponderError) Unwrap() error { return e.Err }

// SynthesisError wraps a failure of the text-to-speech backend.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesis failed: %v", e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// TransportError wraps a failure of the media connection itself. Unlike the
// stage errors it closes the session.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
