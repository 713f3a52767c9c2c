package domain

import "time"

// Verdict is the evaluation outcome for a single question.
type Verdict string

const (
	// VerdictUnset means the question has no key yet, or its texts changed since the last submit.
	VerdictUnset Verdict = "unset"
	// VerdictCorrect means the user answer matched the key on the last submit.
	VerdictCorrect Verdict = "correct"
	// VerdictIncorrect means the user answer did not match the key on the last submit.
	VerdictIncorrect Verdict = "incorrect"
)

// Group is a titled, contiguous sub-range of questions within a section.
type Group struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// BandStep maps a minimum raw-correct count to a band score. Tables are
// ordered descending by MinCorrect and end with a 0-threshold row.
type BandStep struct {
	MinCorrect int     `json:"minCorrect"`
	Band       float64 `json:"band"`
}

// Section is one test part (e.g. Listening or Reading) with its group layout
// and its own band table. Question numbers run 1..QuestionCount contiguously
// across groups.
type Section struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Groups []Group    `json:"groups"`
	Bands  []BandStep `json:"bands"`
}

// QuestionCount is the sum of group counts.
func (s Section) QuestionCount() int {
	total := 0
	for _, g := range s.Groups {
		total += g.Count
	}
	return total
}

// QuestionSlot holds the state of one numbered question on a sheet.
type QuestionSlot struct {
	Number  int     `json:"number"`
	Answer  string  `json:"answer"`
	Key     string  `json:"key"`
	Verdict Verdict `json:"verdict"`
}

// SheetSnapshot is a point-in-time view of a scoring sheet, pushed to clients
// after every mutation.
type SheetSnapshot struct {
	SheetID     string         `json:"sheetId"`
	SectionID   string         `json:"sectionId"`
	SectionName string         `json:"sectionName"`
	Slots       []QuestionSlot `json:"slots"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// SheetResult is the outcome of a submit: raw counts, the band score and the
// per-question verdicts in question order.
type SheetResult struct {
	SheetID   string    `json:"sheetId"`
	Correct   int       `json:"correct"`
	Evaluated int       `json:"evaluated"`
	Band      float64   `json:"band"`
	Verdicts  []Verdict `json:"verdicts"`
}
