package stt

import (
	"testing"

	"cloud.google.com/go/speech/apiv1/speechpb"
)

func TestJoinTranscripts(t *testing.T) {
	resp := &speechpb.RecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{
				{Transcript: "Ich möchte einen Termin ", Confidence: 0.92},
				{Transcript: "Ich mochte einen Termin", Confidence: 0.71},
			}},
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{
				{Transcript: " am Montag", Confidence: 0.88},
			}},
		},
	}

	if got := joinTranscripts(resp); got != "Ich möchte einen Termin am Montag" {
		t.Errorf("unexpected joined transcript: %q", got)
	}
}

func TestJoinTranscriptsEmptyResponse(t *testing.T) {
	if got := joinTranscripts(&speechpb.RecognizeResponse{}); got != "" {
		t.Errorf("expected empty transcript, got %q", got)
	}

	resp := &speechpb.RecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "   "}}},
		},
	}
	if got := joinTranscripts(resp); got != "" {
		t.Errorf("expected empty transcript for whitespace result, got %q", got)
	}
}
