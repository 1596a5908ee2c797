package audio

import (
	"bytes"
	"testing"
	"time"
)

func TestTurnBufferAccumulates(t *testing.T) {
	buf := NewTurnBuffer()
	now := time.Now()

	buf.Append([]byte{1, 2}, now)
	buf.Append([]byte{3}, now.Add(20*time.Millisecond))

	if buf.FrameCount() != 2 {
		t.Errorf("expected 2 frames, got %d", buf.FrameCount())
	}
	if buf.SizeBytes() != 3 {
		t.Errorf("expected 3 bytes, got %d", buf.SizeBytes())
	}
	if !buf.LastAppend().Equal(now.Add(20 * time.Millisecond)) {
		t.Errorf("unexpected last append time: %v", buf.LastAppend())
	}
}

func TestTurnBufferDrainExactness(t *testing.T) {
	buf := NewTurnBuffer()
	now := time.Now()

	buf.Append([]byte{1, 2}, now)
	buf.Append([]byte{3, 4, 5}, now)

	first := buf.Drain()
	if !bytes.Equal(first, []byte{1, 2, 3, 4, 5}) {
		t.Errorf("first drain returned %v", first)
	}
	if buf.FrameCount() != 0 || buf.SizeBytes() != 0 {
		t.Error("buffer not cleared after drain")
	}
	if !buf.LastAppend().IsZero() {
		t.Error("last append time not reset after drain")
	}

	// Frames appended after a drain belong to the next turn only.
	buf.Append([]byte{9}, now)
	second := buf.Drain()
	if !bytes.Equal(second, []byte{9}) {
		t.Errorf("second drain returned %v, frames were double-counted", second)
	}
}

func TestTurnBufferDrainEmpty(t *testing.T) {
	buf := NewTurnBuffer()
	if got := buf.Drain(); len(got) != 0 {
		t.Errorf("draining empty buffer returned %v", got)
	}
}
