package keyparse

import "testing"

func TestParseSingleAndGroupedNumbers(t *testing.T) {
	mapping := Parse("1 ocean\n5&6   A, C\n21&22&23  A", 40)

	want := map[int]string{1: "ocean", 5: "A", 6: "C", 21: "A", 22: "A", 23: "A"}
	if len(mapping) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(mapping), mapping)
	}
	for num, answer := range want {
		if mapping[num] != answer {
			t.Fatalf("question %d: expected %q, got %q", num, answer, mapping[num])
		}
	}
}

func TestParseReusesLastAnswerForExtraNumbers(t *testing.T) {
	mapping := Parse("21&22&23  A", 40)
	for _, num := range []int{21, 22, 23} {
		if mapping[num] != "A" {
			t.Fatalf("question %d: expected shared answer A, got %q", num, mapping[num])
		}
	}
}

func TestParseSkipsHeadersAndParentheticals(t *testing.T) {
	text := "Part 1\nPassage 2 Questions 14-26\n(answers may vary)\n3 lake"
	mapping := Parse(text, 40)
	if len(mapping) != 1 || mapping[3] != "lake" {
		t.Fatalf("expected only {3: lake}, got %v", mapping)
	}
}

func TestParseLastOccurrenceWins(t *testing.T) {
	mapping := Parse("1 A\n1 B", 40)
	if mapping[1] != "B" {
		t.Fatalf("expected later line to win, got %q", mapping[1])
	}
}

func TestParseDropsOutOfRangeNumbers(t *testing.T) {
	mapping := Parse("0 A\n41 B\n40 C", 40)
	if len(mapping) != 1 || mapping[40] != "C" {
		t.Fatalf("expected only {40: C}, got %v", mapping)
	}
}

func TestParseIgnoresMalformedLines(t *testing.T) {
	text := "no numbers here\n- bullet point\n12\n7 valid"
	mapping := Parse(text, 40)
	if len(mapping) != 1 || mapping[7] != "valid" {
		t.Fatalf("expected only {7: valid}, got %v", mapping)
	}
}

func TestParseEmptyInputIsValid(t *testing.T) {
	if mapping := Parse("", 40); len(mapping) != 0 {
		t.Fatalf("expected empty mapping, got %v", mapping)
	}
	if mapping := Parse("Part 1\n\nPassage 3\n", 40); len(mapping) != 0 {
		t.Fatalf("expected empty mapping for header-only text, got %v", mapping)
	}
}

func TestParseNumberPunctuationVariants(t *testing.T) {
	mapping := Parse("3) lake\n14- TRUE\n15. NOT GIVEN", 40)
	want := map[int]string{3: "lake", 14: "TRUE", 15: "NOT GIVEN"}
	for num, answer := range want {
		if mapping[num] != answer {
			t.Fatalf("question %d: expected %q, got %q", num, answer, mapping[num])
		}
	}
}

func TestParseSemicolonSeparatedAnswers(t *testing.T) {
	mapping := Parse("5&6   window; door", 40)
	if mapping[5] != "window" || mapping[6] != "door" {
		t.Fatalf("expected window/door, got %v", mapping)
	}
}
