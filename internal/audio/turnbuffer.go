package audio

import "time"

// TurnBuffer accumulates inbound audio frames for one conversational turn.
// It is owned by a single session loop; the state machine guarantees that
// Append and Drain never race, so the buffer carries no lock.
type TurnBuffer struct {
	frames     [][]byte
	sizeBytes  int
	lastAppend time.Time
}

// NewTurnBuffer creates an empty turn buffer.
func NewTurnBuffer() *TurnBuffer {
	return &TurnBuffer{}
}

// Append adds one inbound frame to the current turn.
func (b *TurnBuffer) Append(frame []byte, arrivedAt time.Time) {
	b.frames = append(b.frames, frame)
	b.sizeBytes += len(frame)
	b.lastAppend = arrivedAt
}

// FrameCount returns the number of frames accumulated since the last drain.
func (b *TurnBuffer) FrameCount() int {
	return len(b.frames)
}

// SizeBytes returns the total payload size accumulated since the last drain.
func (b *TurnBuffer) SizeBytes() int {
	return b.sizeBytes
}

// LastAppend returns the arrival time of the most recent frame, or the zero
// time if the buffer is empty.
func (b *TurnBuffer) LastAppend() time.Time {
	return b.lastAppend
}

// Drain returns the accumulated audio as one contiguous buffer and clears
// the turn. It hands back exactly the bytes appended since the previous
// drain or since construction; no frame is ever double-counted.
func (b *TurnBuffer) Drain() []byte {
	data := make([]byte, 0, b.sizeBytes)
	for _, f := range b.frames {
		data = append(data, f...)
	}
	b.frames = b.frames[:0]
	b.sizeBytes = 0
	b.lastAppend = time.Time{}
	return data
}
