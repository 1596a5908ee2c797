// Package prompts holds the German prompt templates for the voice persona
// and the SMS outreach flow. Keeping them in one place makes wording changes
// reviewable without touching the handlers.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// VoiceSystem is the persona instruction for the phone assistant.
func VoiceSystem(practiceName string) string {
	return fmt.Sprintf(`Du bist die freundliche Telefonassistentin von %s.
Du sprichst Deutsch, siezt die Anrufer und hältst deine Antworten kurz,
höchstens zwei Sätze, da sie am Telefon vorgelesen werden.
Du hilfst bei Terminwünschen, allgemeinen Fragen zur Praxis und nimmst
Rückrufbitten auf. Bei medizinischen Notfällen verweist du sofort auf die 112.
Verwende keine Aufzählungen, Emojis oder Sonderzeichen.`, practiceName)
}

// OutboundSMS asks the model for the first outreach message to a new lead.
func OutboundSMS(name, service string) string {
	return fmt.Sprintf(`Du bist eine freundliche Vertriebsassistentin namens Lea.
Schreibe eine sehr kurze, natürliche SMS (max. 240 Zeichen) an %s.
Bedanke dich für das Interesse an %s und biete einen kurzen Kennenlern-Call an.
Frage konkret: "Heute oder morgen – was passt dir besser?"
Ton: locker, professionell, duzen, Deutsch.
Gib NUR die SMS zurück, ohne Anführungszeichen.`, name, service)
}

// InboundParse asks the model to classify a lead's SMS reply as structured
// JSON.
func InboundParse(incomingText string) string {
	return fmt.Sprintf(`Analysiere folgende SMS-Antwort eines Leads und gib ein kompaktes JSON zurück.
Erkenne intent: "confirm" (er will Termin), "decline" (kein Interesse), "time_suggestion" (er nennt Zeit/Tag), "unclear" (nachfragen).
Wenn eine Zeit/Datum genannt wird, extrahiere sie normalisiert (wenn möglich) in ISO-ähnlicher Form (YYYY-MM-DD HH:mm) oder frei beschreibend.

Antwortformat NUR als JSON:
{
  "intent": "confirm|decline|time_suggestion|unclear",
  "datetime_text": "string or null",
  "notes": "kurze Begründung"
}

Eingang: "%s"`, incomingText)
}

// FollowupConfirm drafts the booking confirmation SMS.
func FollowupConfirm(name string) string {
	return fmt.Sprintf(`Kurze, freundliche SMS an %s:
"Top! Ich blocke dir gleich den Slot und schicke die Bestätigung. Falls etwas dazwischen kommt, sag kurz Bescheid."
Nur Text zurückgeben.`, name)
}

// FollowupAskTime drafts the SMS asking the lead for time options.
func FollowupAskTime(name string) string {
	return fmt.Sprintf(`Kurze SMS an %s:
"Super, danke! Hast du morgen oder übermorgen ein 15-min-Fenster? Nenn mir gern 2 Optionen (z. B. Di 10:00 oder Di 14:30)."
Nur Text zurückgeben.`, name)
}

// FollowupDecline drafts the polite goodbye SMS.
func FollowupDecline(name string) string {
	return fmt.Sprintf(`Kurze, respektvolle SMS an %s:
"Alles klar, danke für die schnelle Rückmeldung! Falls es später wieder relevant ist, sag jederzeit Bescheid. Einen starken Tag dir!"
Nur Text zurückgeben.`, name)
}

// Intent is the classification of an inbound lead reply.
type Intent string

const (
	IntentConfirm        Intent = "confirm"
	IntentDecline        Intent = "decline"
	IntentTimeSuggestion Intent = "time_suggestion"
	IntentUnclear        Intent = "unclear"
)

// ParsedReply is the structured result of the InboundParse prompt.
type ParsedReply struct {
	Intent       Intent `json:"intent"`
	DatetimeText string `json:"datetime_text"`
	Notes        string `json:"notes"`
}

// ParseReply decodes the model's JSON answer to the InboundParse prompt.
// Models occasionally wrap the JSON in a markdown fence, so the fence is
// stripped first. Anything undecodable degrades to IntentUnclear rather
// than an error, mirroring how a human agent would just ask again.
func ParseReply(raw string) ParsedReply {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed ParsedReply
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return ParsedReply{Intent: IntentUnclear}
	}

	switch parsed.Intent {
	case IntentConfirm, IntentDecline, IntentTimeSuggestion, IntentUnclear:
	default:
		parsed.Intent = IntentUnclear
	}
	return parsed
}
