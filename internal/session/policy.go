package session

import "strings"

// junkFilter rejects transcripts that are noise rather than speech worth
// answering: empty results, and short transcripts dominated by known filler
// tokens (acknowledgements, interjections, transcription artifacts).
type junkFilter struct {
	fillers map[string]struct{}
	maxLen  int
}

func newJunkFilter(fillerWords []string, maxLen int) *junkFilter {
	fillers := make(map[string]struct{}, len(fillerWords))
	for _, w := range fillerWords {
		fillers[normalizeToken(w)] = struct{}{}
	}
	return &junkFilter{fillers: fillers, maxLen: maxLen}
}

// IsJunk reports whether the transcript should be discarded instead of
// driving a response. Transcripts longer than maxLen (after normalization)
// are always kept.
func (f *junkFilter) IsJunk(transcript string) bool {
	normalized := strings.TrimSpace(transcript)
	if normalized == "" {
		return true
	}
	stripped := normalizeToken(normalized)
	if stripped == "" {
		return true
	}
	if len([]rune(stripped)) > f.maxLen {
		return false
	}

	tokens := strings.Fields(stripped)
	fillerCount := 0
	for _, tok := range tokens {
		if _, ok := f.fillers[tok]; ok {
			fillerCount++
		}
	}
	// Dominated: at least half of the tokens are fillers.
	return fillerCount*2 >= len(tokens)
}

// normalizeToken lowercases and strips punctuation so "Danke." matches the
// filler entry "danke".
func normalizeToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case '.', ',', '!', '?', ';', ':', '"', '\'', '…', '-':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
