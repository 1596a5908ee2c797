package entities

import (
	"testing"
	"time"
)

func TestConversationAppendOrder(t *testing.T) {
	conv := NewConversation()
	now := time.Now()

	conv.Append(SpeakerUser, "Ich möchte einen Termin", now)
	conv.Append(SpeakerAssistant, "Welcher Tag passt Ihnen?", now.Add(time.Second))

	if conv.Len() != 2 {
		t.Fatalf("expected 2 utterances, got %d", conv.Len())
	}

	utterances := conv.Utterances()
	if utterances[0].Speaker != SpeakerUser {
		t.Errorf("expected first utterance from user, got %s", utterances[0].Speaker)
	}
	if utterances[1].Speaker != SpeakerAssistant {
		t.Errorf("expected second utterance from assistant, got %s", utterances[1].Speaker)
	}
	if utterances[0].Text != "Ich möchte einen Termin" {
		t.Errorf("unexpected first utterance text: %q", utterances[0].Text)
	}
}

func TestConversationLast(t *testing.T) {
	conv := NewConversation()

	if _, ok := conv.Last(); ok {
		t.Error("empty conversation should have no last utterance")
	}

	conv.Append(SpeakerUser, "Hallo", time.Now())
	last, ok := conv.Last()
	if !ok || last.Text != "Hallo" {
		t.Errorf("expected last utterance 'Hallo', got %q (ok=%v)", last.Text, ok)
	}
}

func TestConversationUtterancesIsCopy(t *testing.T) {
	conv := NewConversation()
	conv.Append(SpeakerUser, "original", time.Now())

	snapshot := conv.Utterances()
	snapshot[0].Text = "mutated"

	fromConv := conv.Utterances()
	if fromConv[0].Text != "original" {
		t.Error("mutating the snapshot changed the conversation history")
	}
}
