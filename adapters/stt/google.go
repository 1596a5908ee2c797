// Package stt adapts Google Cloud Speech to the Transcriber contract.
package stt

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"

	"github.com/timbra-ai/voicebridge/domain/repositories"
)

// GoogleTranscriber transcribes turn audio with the synchronous Recognize
// API. One turn is at most a few seconds of telephony audio, well inside
// the synchronous request limit. Requests are stateless, so the client is
// safe for concurrent use by independent call sessions.
type GoogleTranscriber struct {
	client     *speech.Client
	sampleRate int
	logger     *zap.Logger
}

var _ repositories.Transcriber = (*GoogleTranscriber)(nil)

// NewGoogleTranscriber creates the transcriber. Credentials are resolved
// from the environment like all Google Cloud clients.
func NewGoogleTranscriber(ctx context.Context, sampleRate int, logger *zap.Logger) (*GoogleTranscriber, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return &GoogleTranscriber{
		client:     client,
		sampleRate: sampleRate,
		logger:     logger,
	}, nil
}

// Transcribe converts one WAV-wrapped turn to text. Audio without
// recognizable speech yields an empty transcript, not an error; the junk
// filter upstream discards it.
func (g *GoogleTranscriber) Transcribe(ctx context.Context, wavAudio []byte, languageHint string) (string, error) {
	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: int32(g.sampleRate),
			LanguageCode:    languageHint,
			Model:           "phone_call",
			UseEnhanced:     true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: wavAudio},
		},
	})
	if err != nil {
		return "", &repositories.TranscriptionError{Err: err}
	}

	transcript := joinTranscripts(resp)
	g.logger.Debug("Transcription completed",
		zap.Int("audioBytes", len(wavAudio)),
		zap.String("transcript", transcript))
	return transcript, nil
}

// Close releases the underlying gRPC connection.
func (g *GoogleTranscriber) Close() error {
	return g.client.Close()
}

// joinTranscripts concatenates the best alternative of every result in
// order; Recognize splits long utterances into multiple results.
func joinTranscripts(resp *speechpb.RecognizeResponse) string {
	var parts []string
	for _, result := range resp.GetResults() {
		if len(result.Alternatives) == 0 {
			continue
		}
		if text := strings.TrimSpace(result.Alternatives[0].Transcript); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
