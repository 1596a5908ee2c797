package entities

import "time"

// Speaker identifies who produced an utterance.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Utterance is one speaker-tagged entry in a call's conversation history.
// Entries are never mutated after being appended.
type Utterance struct {
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is the per-call, append-only conversation history. It is
// exclusively owned by the session that created it and discarded when the
// call ends; it only ever grows within the call's lifetime.
type Conversation struct {
	utterances []Utterance
}

// NewConversation creates an empty conversation history.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Append adds one utterance in conversation order.
func (c *Conversation) Append(speaker Speaker, text string, at time.Time) {
	c.utterances = append(c.utterances, Utterance{
		Speaker:   speaker,
		Text:      text,
		Timestamp: at,
	})
}

// Len returns the number of utterances appended so far.
func (c *Conversation) Len() int {
	return len(c.utterances)
}

// Last returns the most recent utterance, or false for an empty history.
func (c *Conversation) Last() (Utterance, bool) {
	if len(c.utterances) == 0 {
		return Utterance{}, false
	}
	return c.utterances[len(c.utterances)-1], true
}

// Utterances returns the history oldest-first. The returned slice is a copy;
// callers cannot mutate the conversation through it.
func (c *Conversation) Utterances() []Utterance {
	out := make([]Utterance, len(c.utterances))
	copy(out, c.utterances)
	return out
}
