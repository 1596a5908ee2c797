package audio

import (
	"bytes"
	"testing"

	"pgregory.net/rapid"
)

func TestChunkExactFrames(t *testing.T) {
	buf := make([]byte, 480)
	seq := Chunk(buf, 160)

	if seq.Remaining() != 3 {
		t.Fatalf("expected 3 frames remaining, got %d", seq.Remaining())
	}
	for i := 0; i < 3; i++ {
		frame, ok := seq.Next()
		if !ok {
			t.Fatalf("frame %d: unexpected end of sequence", i)
		}
		if len(frame) != 160 {
			t.Errorf("frame %d: expected 160 bytes, got %d", i, len(frame))
		}
	}
	if _, ok := seq.Next(); ok {
		t.Error("sequence should be exhausted after 3 frames")
	}
}

func TestChunkShortTail(t *testing.T) {
	buf := make([]byte, 400)
	seq := Chunk(buf, 160)

	sizes := []int{}
	for {
		frame, ok := seq.Next()
		if !ok {
			break
		}
		sizes = append(sizes, len(frame))
	}

	want := []int{160, 160, 80}
	if len(sizes) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(sizes))
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("frame %d: expected %d bytes, got %d", i, want[i], sizes[i])
		}
	}
}

func TestChunkEmptyBuffer(t *testing.T) {
	seq := Chunk(nil, 160)
	if seq.Remaining() != 0 {
		t.Errorf("expected 0 frames for empty buffer, got %d", seq.Remaining())
	}
	if _, ok := seq.Next(); ok {
		t.Error("empty buffer should produce no frames")
	}
}

func TestChunkConcatenationLaw(t *testing.T) {
	// Concatenating every produced frame reproduces the input exactly, for
	// any buffer and any frame size ≥ 1.
	rapid.Check(t, func(t *rapid.T) {
		buf := rapid.SliceOfN(rapid.Byte(), 0, 2048).Draw(t, "buf")
		frameSize := rapid.IntRange(1, 512).Draw(t, "frameSize")

		seq := Chunk(buf, frameSize)
		var rejoined []byte
		for {
			frame, ok := seq.Next()
			if !ok {
				break
			}
			if len(frame) > frameSize {
				t.Fatalf("frame exceeds frame size: %d > %d", len(frame), frameSize)
			}
			rejoined = append(rejoined, frame...)
		}

		if !bytes.Equal(rejoined, buf) {
			t.Fatalf("concatenated frames do not reproduce input: %d vs %d bytes", len(rejoined), len(buf))
		}
	})
}
