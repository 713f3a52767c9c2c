package grading

import (
	"testing"

	"ielts-scoring-service/internal/domain"
)

func TestNormalizeStripsCaseSpacingHyphens(t *testing.T) {
	forms := []string{"B-52", "b52", " B 52 ", "b-5 2"}
	for _, form := range forms {
		if Normalize(form) != "b52" {
			t.Fatalf("Normalize(%q) = %q, expected b52", form, Normalize(form))
		}
	}
	if Normalize("") != "" {
		t.Fatalf("expected empty normalization for empty input")
	}
}

func TestMatchesSlashAlternatives(t *testing.T) {
	if !Matches("gardening", "gardens / gardening") {
		t.Fatalf("expected slash alternative to match")
	}
	if !Matches("Gardens", "gardens / gardening") {
		t.Fatalf("expected first alternative to match")
	}
	if Matches("garden", "gardens / gardening") {
		t.Fatalf("expected non-listed answer to fail")
	}
}

func TestEvaluateMixedSlots(t *testing.T) {
	res := Evaluate([]SlotInput{
		{UserText: "A", KeyText: "a"},
		{UserText: "B", KeyText: "c"},
		{UserText: "", KeyText: "d"},
	})
	if res.Correct != 1 || res.Evaluated != 3 {
		t.Fatalf("expected 1/3, got %d/%d", res.Correct, res.Evaluated)
	}
	want := []domain.Verdict{domain.VerdictCorrect, domain.VerdictIncorrect, domain.VerdictIncorrect}
	for i, verdict := range want {
		if res.Verdicts[i] != verdict {
			t.Fatalf("slot %d: expected %s, got %s", i, verdict, res.Verdicts[i])
		}
	}
}

func TestEvaluateAllKeysEmpty(t *testing.T) {
	res := Evaluate([]SlotInput{
		{UserText: "A", KeyText: ""},
		{UserText: "", KeyText: "   "},
	})
	if res.Correct != 0 || res.Evaluated != 0 {
		t.Fatalf("expected 0/0, got %d/%d", res.Correct, res.Evaluated)
	}
	for i, verdict := range res.Verdicts {
		if verdict != domain.VerdictUnset {
			t.Fatalf("slot %d: expected unset, got %s", i, verdict)
		}
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	slots := []SlotInput{
		{UserText: "four", KeyText: "4 / four"},
		{UserText: "wrong", KeyText: "right"},
	}
	first := Evaluate(slots)
	second := Evaluate(slots)
	if first.Correct != second.Correct || first.Evaluated != second.Evaluated {
		t.Fatalf("expected identical counts, got %+v then %+v", first, second)
	}
	for i := range first.Verdicts {
		if first.Verdicts[i] != second.Verdicts[i] {
			t.Fatalf("slot %d: verdict changed between runs", i)
		}
	}
}

// Every table row is pinned both at its threshold and just below it, where the
// lookup must fall to the next step.
func TestBandScoreListeningTable(t *testing.T) {
	bands := domain.BuiltinSections()[domain.SectionListening].Bands
	cases := []struct {
		correct int
		band    float64
	}{
		{40, 9.0}, {39, 9.0}, {38, 8.5}, {37, 8.5}, {36, 8.0}, {35, 8.0},
		{34, 7.5}, {32, 7.5}, {31, 7.0}, {30, 7.0}, {29, 6.5}, {26, 6.5},
		{25, 6.0}, {23, 6.0}, {22, 5.5}, {18, 5.5}, {17, 5.0}, {16, 5.0},
		{15, 4.5}, {13, 4.5}, {12, 4.0}, {11, 4.0}, {10, 3.5}, {8, 3.5},
		{7, 3.0}, {6, 3.0}, {5, 2.5}, {4, 2.5}, {3, 2.0}, {0, 2.0},
	}
	for _, tc := range cases {
		if got := BandScore(bands, tc.correct); got != tc.band {
			t.Fatalf("listening %d correct: expected band %.1f, got %.1f", tc.correct, tc.band, got)
		}
	}
}

func TestBandScoreReadingTable(t *testing.T) {
	bands := domain.BuiltinSections()[domain.SectionReading].Bands
	cases := []struct {
		correct int
		band    float64
	}{
		{40, 9.0}, {39, 9.0}, {38, 8.5}, {37, 8.5}, {36, 8.0}, {35, 8.0},
		{34, 7.5}, {33, 7.5}, {32, 7.0}, {30, 7.0}, {29, 6.5}, {27, 6.5},
		{26, 6.0}, {23, 6.0}, {22, 5.5}, {19, 5.5}, {18, 5.0}, {15, 5.0},
		{14, 4.5}, {13, 4.5}, {12, 4.0}, {10, 4.0}, {9, 3.5}, {8, 3.5},
		{7, 3.0}, {6, 3.0}, {5, 2.5}, {4, 2.5}, {3, 2.0}, {0, 2.0},
	}
	for _, tc := range cases {
		if got := BandScore(bands, tc.correct); got != tc.band {
			t.Fatalf("reading %d correct: expected band %.1f, got %.1f", tc.correct, tc.band, got)
		}
	}
}
