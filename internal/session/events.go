package session

import "time"

// Event is a transport event delivered to the session loop. All events for
// one session are consumed sequentially by a single goroutine; ordering
// between inbound media and backend completions is therefore unambiguous.
type Event interface {
	isEvent()
}

// StartEvent begins the session. StreamID tags all outbound frames; the
// transport discards frames carrying any other stream identifier.
type StartEvent struct {
	StreamID string
	CallID   string
	At       time.Time
}

// MediaEvent carries one inbound μ-law audio frame. At is the arrival time
// at the transport, recorded before the event is queued; the barge-in
// policy compares it against the instant the session last entered
// Listening.
type MediaEvent struct {
	Frame []byte
	Track string
	At    time.Time
}

// StopEvent signals the end of the inbound media stream. The connection may
// stay open for outbound audio.
type StopEvent struct {
	At time.Time
}

// MarkEvent is the transport's playback acknowledgment: the mark queued
// after the last outbound frame of a turn has been played out.
type MarkEvent struct {
	Name string
	At   time.Time
}

// CloseEvent tears the session down. Err is nil for an orderly hang-up.
type CloseEvent struct {
	Err error
	At  time.Time
}

func (StartEvent) isEvent() {}
func (MediaEvent) isEvent() {}
func (StopEvent) isEvent()  {}
func (MarkEvent) isEvent()  {}
func (CloseEvent) isEvent() {}

// Transport is the outbound half of the media connection as seen by a
// session. Implementations must tag frames with the exact stream identifier
// received at start.
type Transport interface {
	// SendMedia sends one outbound audio frame.
	SendMedia(streamID string, frame []byte) error
	// SendMark queues a named playback marker behind previously sent media;
	// the transport echoes it back once playback reaches it.
	SendMark(streamID string, name string) error
	// SendClear discards any outbound audio the transport has buffered but
	// not yet played. Used by the interrupt barge-in mode.
	SendClear(streamID string) error
}
