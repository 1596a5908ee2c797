package session

import "testing"

func TestJunkFilter(t *testing.T) {
	filter := newJunkFilter([]string{"ja", "okay", "mhm", "ähm", "danke", "genau"}, 20)

	junk := []string{
		"",
		"   ",
		"Danke.",
		"Ja, genau.",
		"Mhm",
		"ähm ja",
	}
	for _, s := range junk {
		if !filter.IsJunk(s) {
			t.Errorf("expected %q to be treated as filler", s)
		}
	}

	meaningful := []string{
		"Ich möchte einen Termin am Montag",
		"Termin bitte",
		"Montag um zehn Uhr",
		"Haben Sie morgen etwas frei?",
	}
	for _, s := range meaningful {
		if filter.IsJunk(s) {
			t.Errorf("expected %q to be accepted", s)
		}
	}
}

func TestJunkFilterLengthThreshold(t *testing.T) {
	filter := newJunkFilter([]string{"danke"}, 20)

	// Filler-dominated but above the length threshold: always kept.
	long := "danke danke danke danke danke"
	if filter.IsJunk(long) {
		t.Errorf("transcript above length threshold must be kept: %q", long)
	}
}
