package session

// State is the lifecycle state of a call session. At most one of the four
// pipeline states (Transcribing, Responding, Synthesizing, Speaking) is
// active per session at any time; the event loop enforces this by running
// the pipeline inline.
type State int

const (
	StateAwaitingStart State = iota
	StateListening
	StateTranscribing
	StateResponding
	StateSynthesizing
	StateSpeaking
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateAwaitingStart:
		return "awaiting_start"
	case StateListening:
		return "listening"
	case StateTranscribing:
		return "transcribing"
	case StateResponding:
		return "responding"
	case StateSynthesizing:
		return "synthesizing"
	case StateSpeaking:
		return "speaking"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
