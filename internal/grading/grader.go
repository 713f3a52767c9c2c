// Package grading holds the pure scoring core: answer normalization, slot
// evaluation and band-score lookup. Nothing here does I/O or touches state.
package grading

import (
	"strings"
	"unicode"

	"ielts-scoring-service/internal/domain"
)

// Normalize produces the canonical form used for equality comparison:
// lowercase with all whitespace and hyphens removed. Display text is never
// mutated, only compared through this.
func Normalize(raw string) string {
	lowered := strings.ToLower(raw)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if r == '-' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Matches reports whether the user answer is acceptable for the key. A key
// may list alternatives separated by "/" ("gardens / gardening"); any of them
// counts. A key without "/" reduces to plain normalized equality.
func Matches(userText, keyText string) bool {
	user := Normalize(userText)
	for _, option := range strings.Split(keyText, "/") {
		if user == Normalize(option) {
			return true
		}
	}
	return false
}

// SlotInput is one (user answer, key answer) pair in question order.
type SlotInput struct {
	UserText string
	KeyText  string
}

// Result aggregates an evaluation run.
type Result struct {
	Correct   int
	Evaluated int
	Verdicts  []domain.Verdict
}

// Evaluate scores every slot in order. A slot whose trimmed key is empty is
// not evaluated and stays Unset. Deterministic and idempotent: re-running on
// unchanged input yields identical output.
func Evaluate(slots []SlotInput) Result {
	res := Result{Verdicts: make([]domain.Verdict, len(slots))}
	for i, slot := range slots {
		if strings.TrimSpace(slot.KeyText) == "" {
			res.Verdicts[i] = domain.VerdictUnset
			continue
		}
		res.Evaluated++
		if Matches(slot.UserText, slot.KeyText) {
			res.Verdicts[i] = domain.VerdictCorrect
			res.Correct++
		} else {
			res.Verdicts[i] = domain.VerdictIncorrect
		}
	}
	return res
}

// BandScore maps a raw correct count to a band score by scanning the table
// from the highest threshold down and returning the first step whose
// threshold is <= correct. Tables end with a 0-threshold step, so the lookup
// is total for correct >= 0. Negative counts are outside the domain; callers
// must not pass them.
func BandScore(steps []domain.BandStep, correct int) float64 {
	for _, step := range steps {
		if correct >= step.MinCorrect {
			return step.Band
		}
	}
	return 0
}
