package audio

// FrameSeq is a lazy, finite, non-restartable sequence of fixed-size
// transport frames over a synthesized audio buffer. Each frame is handed
// out exactly once; the final frame may be shorter than the frame size.
type FrameSeq struct {
	buf       []byte
	frameSize int
	off       int
}

// Chunk splits audio into transport frames of frameSize bytes, in input
// order. frameSize must be at least 1.
func Chunk(buf []byte, frameSize int) *FrameSeq {
	if frameSize < 1 {
		frameSize = 1
	}
	return &FrameSeq{buf: buf, frameSize: frameSize}
}

// Next returns the next frame, or false when the sequence is exhausted.
// The returned slice aliases the underlying buffer and must not be held
// past the next call by writers of the buffer.
func (s *FrameSeq) Next() ([]byte, bool) {
	if s.off >= len(s.buf) {
		return nil, false
	}
	end := s.off + s.frameSize
	if end > len(s.buf) {
		end = len(s.buf)
	}
	frame := s.buf[s.off:end]
	s.off = end
	return frame, true
}

// Remaining reports how many frames the sequence will still produce.
func (s *FrameSeq) Remaining() int {
	left := len(s.buf) - s.off
	if left <= 0 {
		return 0
	}
	return (left + s.frameSize - 1) / s.frameSize
}
