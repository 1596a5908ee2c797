// Package audio provides the pure audio plumbing for the voice bridge:
// G.711 μ-law companding, a minimal WAV container for the transcription
// backend, fixed-size frame chunking for the outbound media path, and the
// per-turn inbound frame buffer.
//
// Everything in this package is free of I/O. The turn buffer is owned by a
// single session loop and is intentionally unsynchronized.
package audio
