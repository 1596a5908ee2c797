package audio

import (
	"testing"

	"pgregory.net/rapid"
)

func TestDecodeMulawDeterministic(t *testing.T) {
	input := []byte{0x00, 0x7F, 0x80, 0xFF, 0x55, 0xAA, 0x12, 0xED}

	first := DecodeMulaw(input)
	second := DecodeMulaw(input)

	if len(first) != len(input) {
		t.Fatalf("expected %d samples, got %d", len(input), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("sample %d differs between decodes: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestDecodeMulawKnownValues(t *testing.T) {
	// 0xFF is the μ-law code for silence, 0x7F its negative counterpart.
	if got := DecodeMulaw([]byte{0xFF})[0]; got != 0 {
		t.Errorf("expected 0xFF to decode to 0, got %d", got)
	}
	if got := DecodeMulaw([]byte{0x7F})[0]; got != 0 {
		t.Errorf("expected 0x7F to decode to 0, got %d", got)
	}
	// 0x80 carries the largest positive magnitude.
	if got := DecodeMulaw([]byte{0x80})[0]; got != 32124 {
		t.Errorf("expected 0x80 to decode to 32124, got %d", got)
	}
	if got := DecodeMulaw([]byte{0x00})[0]; got != -32124 {
		t.Errorf("expected 0x00 to decode to -32124, got %d", got)
	}
}

func TestMulawRoundTripIdempotent(t *testing.T) {
	// Re-encoding decoded PCM and decoding again must reproduce the first
	// decode exactly: μ-law itself is the only lossy step.
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), 1, 512).Draw(t, "raw")

		pcm := DecodeMulaw(raw)
		again := DecodeMulaw(EncodeMulaw(pcm))

		for i := range pcm {
			if pcm[i] != again[i] {
				t.Fatalf("sample %d not idempotent: %d vs %d (code 0x%02X)", i, pcm[i], again[i], raw[i])
			}
		}
	})
}

func TestEncodeMulawClipping(t *testing.T) {
	extremes := []int16{32767, -32768}
	for _, s := range extremes {
		code := EncodeMulaw([]int16{s})[0]
		decoded := DecodeMulaw([]byte{code})[0]
		if decoded > 32124 || decoded < -32124 {
			t.Errorf("sample %d decoded outside μ-law range: %d", s, decoded)
		}
	}
}
