package telephony

import "encoding/base64"

// Wire messages for the telephony media-stream protocol. Every message is a
// small JSON envelope tagged with an event name; audio payloads travel as
// base64-encoded μ-law bytes.

type wireEnvelope struct {
	Event          string        `json:"event"`
	SequenceNumber string        `json:"sequenceNumber,omitempty"`
	StreamSid      string        `json:"streamSid,omitempty"`
	Start          *startPayload `json:"start,omitempty"`
	Media          *mediaPayload `json:"media,omitempty"`
	Mark           *markPayload  `json:"mark,omitempty"`
	Stop           *stopPayload  `json:"stop,omitempty"`
}

type startPayload struct {
	StreamSid        string            `json:"streamSid"`
	AccountSid       string            `json:"accountSid,omitempty"`
	CallSid          string            `json:"callSid"`
	Tracks           []string          `json:"tracks,omitempty"`
	MediaFormat      mediaFormat       `json:"mediaFormat"`
	CustomParameters map[string]string `json:"customParameters,omitempty"`
}

type mediaFormat struct {
	Encoding   string `json:"encoding"`
	SampleRate int    `json:"sampleRate"`
	Channels   int    `json:"channels"`
}

type mediaPayload struct {
	Track     string `json:"track,omitempty"`
	Chunk     string `json:"chunk,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Payload   string `json:"payload"`
}

type markPayload struct {
	Name string `json:"name"`
}

type stopPayload struct {
	AccountSid string `json:"accountSid,omitempty"`
	CallSid    string `json:"callSid,omitempty"`
}

// trackOutbound marks frames the transport multiplexes back to us from our
// own playback; they are never part of the caller's speech.
const trackOutbound = "outbound"

func (m *mediaPayload) decodeAudio() ([]byte, error) {
	return base64.StdEncoding.DecodeString(m.Payload)
}

func newMediaMessage(streamSid string, frame []byte) wireEnvelope {
	return wireEnvelope{
		Event:     "media",
		StreamSid: streamSid,
		Media: &mediaPayload{
			Payload: base64.StdEncoding.EncodeToString(frame),
		},
	}
}

func newMarkMessage(streamSid, name string) wireEnvelope {
	return wireEnvelope{
		Event:     "mark",
		StreamSid: streamSid,
		Mark:      &markPayload{Name: name},
	}
}

func newClearMessage(streamSid string) wireEnvelope {
	return wireEnvelope{
		Event:     "clear",
		StreamSid: streamSid,
	}
}
