package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"ielts-scoring-service/internal/domain"
	"ielts-scoring-service/internal/export"
	"ielts-scoring-service/internal/grading"
	"ielts-scoring-service/internal/keyparse"
)

// SheetRepository abstracts how open scoring sheets are stored (in-memory, Redis, etc).
type SheetRepository interface {
	GetOrCreate(sheetID string, newSheet func() *Sheet) *Sheet
	Get(sheetID string) (*Sheet, bool)
	Delete(sheetID string)
}

// SectionRepository loads section configurations (from cache/backing store).
type SectionRepository interface {
	GetSection(ctx context.Context, sectionID string) (domain.Section, error)
}

// SheetService contains the scoring-form use cases: one sheet per open
// section, edited field by field and scored on submit.
type SheetService struct {
	sheets   SheetRepository
	sections SectionRepository
}

func NewSheetService(sheets SheetRepository, sections SectionRepository) *SheetService {
	return &SheetService{sheets: sheets, sections: sections}
}

// NewSheet is exported for infrastructure layers that need to seed sheets.
func NewSheet(id string, section domain.Section) *Sheet {
	return newSheet(id, section)
}

// NewSheetWithClock is test-only for deterministic timestamps.
func NewSheetWithClock(id string, section domain.Section, now func() time.Time) *Sheet {
	return newSheetWithClock(id, section, now)
}

// Open selects a section and creates (or returns) the scoring sheet for it.
func (s *SheetService) Open(ctx context.Context, sheetID, sectionID string) (domain.SheetSnapshot, error) {
	section, err := s.sections.GetSection(ctx, sectionID)
	if err != nil {
		return domain.SheetSnapshot{}, err
	}
	sheet := s.sheets.GetOrCreate(sheetID, func() *Sheet {
		return newSheet(sheetID, section)
	})
	return sheet.Snapshot(), nil
}

// SetAnswer records the user's answer for one question.
func (s *SheetService) SetAnswer(_ context.Context, sheetID string, number int, text string) (domain.SheetSnapshot, error) {
	sheet, ok := s.sheets.Get(sheetID)
	if !ok {
		return domain.SheetSnapshot{}, domain.ErrSheetNotFound
	}
	return sheet.setAnswer(number, text)
}

// SetKey records the expected answer for one question.
func (s *SheetService) SetKey(_ context.Context, sheetID string, number int, text string) (domain.SheetSnapshot, error) {
	sheet, ok := s.sheets.Get(sheetID)
	if !ok {
		return domain.SheetSnapshot{}, domain.ErrSheetNotFound
	}
	return sheet.setKey(number, text)
}

// ClearAnswers blanks every user answer and resets verdicts.
func (s *SheetService) ClearAnswers(_ context.Context, sheetID string) (domain.SheetSnapshot, error) {
	sheet, ok := s.sheets.Get(sheetID)
	if !ok {
		return domain.SheetSnapshot{}, domain.ErrSheetNotFound
	}
	return sheet.clearAnswers(), nil
}

// ClearKeys blanks every key and resets verdicts.
func (s *SheetService) ClearKeys(_ context.Context, sheetID string) (domain.SheetSnapshot, error) {
	sheet, ok := s.sheets.Get(sheetID)
	if !ok {
		return domain.SheetSnapshot{}, domain.ErrSheetNotFound
	}
	return sheet.clearKeys(), nil
}

// PasteKeys parses pasted answer-key text and fills the matching key fields.
// Returns how many fields were populated; zero means nothing was detected and
// the caller decides whether to warn the user.
func (s *SheetService) PasteKeys(_ context.Context, sheetID, text string) (domain.SheetSnapshot, int, error) {
	sheet, ok := s.sheets.Get(sheetID)
	if !ok {
		return domain.SheetSnapshot{}, 0, domain.ErrSheetNotFound
	}
	mapping := keyparse.Parse(text, sheet.section.QuestionCount())
	snapshot, applied := sheet.applyKeys(mapping)
	return snapshot, applied, nil
}

// Submit evaluates the sheet and maps the raw correct count to a band score.
// At least one key field must be non-empty; the grader itself never fails.
func (s *SheetService) Submit(_ context.Context, sheetID string) (domain.SheetResult, error) {
	sheet, ok := s.sheets.Get(sheetID)
	if !ok {
		return domain.SheetResult{}, domain.ErrSheetNotFound
	}
	return sheet.submit()
}

// Export renders the sheet's user answers in the flat text interchange
// format. Writing the document anywhere is the caller's concern, so a failed
// write can never touch sheet state.
func (s *SheetService) Export(_ context.Context, sheetID string) (string, error) {
	sheet, ok := s.sheets.Get(sheetID)
	if !ok {
		return "", domain.ErrSheetNotFound
	}
	return export.Render(sheet.exportDocument()), nil
}

// Subscribe returns a channel that receives sheet snapshots after every
// mutation. The caller must invoke the returned cancel function to avoid leaks.
func (s *SheetService) Subscribe(_ context.Context, sheetID string) (<-chan domain.SheetSnapshot, func(), error) {
	sheet, ok := s.sheets.Get(sheetID)
	if !ok {
		return nil, nil, domain.ErrSheetNotFound
	}
	ch, cancel := sheet.subscribe()
	return ch, cancel, nil
}

// Close discards a sheet and its state.
func (s *SheetService) Close(_ context.Context, sheetID string) {
	s.sheets.Delete(sheetID)
}

// Sheet is the live state of one scoring session: the section configuration
// plus one QuestionSlot per question.
type Sheet struct {
	id          string
	section     domain.Section
	createdAt   time.Time
	now         func() time.Time
	mu          sync.RWMutex
	slots       []domain.QuestionSlot
	subscribers map[chan domain.SheetSnapshot]struct{}
}

func newSheet(id string, section domain.Section) *Sheet {
	return newSheetWithClock(id, section, time.Now)
}

// newSheetWithClock allows deterministic timestamps in tests.
func newSheetWithClock(id string, section domain.Section, now func() time.Time) *Sheet {
	slots := make([]domain.QuestionSlot, section.QuestionCount())
	for i := range slots {
		slots[i] = domain.QuestionSlot{Number: i + 1, Verdict: domain.VerdictUnset}
	}
	return &Sheet{
		id:          id,
		section:     section,
		createdAt:   now(),
		now:         now,
		slots:       slots,
		subscribers: make(map[chan domain.SheetSnapshot]struct{}),
	}
}

// Snapshot returns the current sheet state.
func (s *Sheet) Snapshot() domain.SheetSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Sheet) setAnswer(number int, text string) (domain.SheetSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if number < 1 || number > len(s.slots) {
		return domain.SheetSnapshot{}, domain.ErrQuestionOutOfRange
	}
	slot := &s.slots[number-1]
	if slot.Answer != text {
		slot.Answer = text
		slot.Verdict = domain.VerdictUnset
	}
	return s.broadcastLocked(), nil
}

func (s *Sheet) setKey(number int, text string) (domain.SheetSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if number < 1 || number > len(s.slots) {
		return domain.SheetSnapshot{}, domain.ErrQuestionOutOfRange
	}
	slot := &s.slots[number-1]
	if slot.Key != text {
		slot.Key = text
		slot.Verdict = domain.VerdictUnset
	}
	return s.broadcastLocked(), nil
}

func (s *Sheet) clearAnswers() domain.SheetSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		s.slots[i].Answer = ""
		s.slots[i].Verdict = domain.VerdictUnset
	}
	return s.broadcastLocked()
}

func (s *Sheet) clearKeys() domain.SheetSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		s.slots[i].Key = ""
		s.slots[i].Verdict = domain.VerdictUnset
	}
	return s.broadcastLocked()
}

// applyKeys fills key fields from a parsed mapping. Empty mapped values are
// skipped so a paste never blanks an existing key.
func (s *Sheet) applyKeys(mapping map[int]string) (domain.SheetSnapshot, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	applied := 0
	for i := range s.slots {
		value, ok := mapping[s.slots[i].Number]
		if !ok || value == "" {
			continue
		}
		applied++
		if s.slots[i].Key != value {
			s.slots[i].Key = value
			s.slots[i].Verdict = domain.VerdictUnset
		}
	}
	return s.broadcastLocked(), applied
}

func (s *Sheet) submit() (domain.SheetResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inputs := make([]grading.SlotInput, len(s.slots))
	hasKey := false
	for i, slot := range s.slots {
		inputs[i] = grading.SlotInput{UserText: slot.Answer, KeyText: slot.Key}
		if strings.TrimSpace(slot.Key) != "" {
			hasKey = true
		}
	}
	if !hasKey {
		return domain.SheetResult{}, domain.ErrNoAnswerKeys
	}

	res := grading.Evaluate(inputs)
	for i := range s.slots {
		s.slots[i].Verdict = res.Verdicts[i]
	}
	s.broadcastLocked()

	return domain.SheetResult{
		SheetID:   s.id,
		Correct:   res.Correct,
		Evaluated: res.Evaluated,
		Band:      grading.BandScore(s.section.Bands, res.Correct),
		Verdicts:  res.Verdicts,
	}, nil
}

func (s *Sheet) exportDocument() export.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := export.Document{
		SectionName: s.section.Name,
		Answers:     make([]export.Answer, len(s.slots)),
	}
	for i, slot := range s.slots {
		doc.Answers[i] = export.Answer{Number: slot.Number, Text: slot.Answer}
	}
	return doc
}

func (s *Sheet) subscribe() (<-chan domain.SheetSnapshot, func()) {
	ch := make(chan domain.SheetSnapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Sheet) broadcastLocked() domain.SheetSnapshot {
	snapshot := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
			// Drop the stale snapshot so a slow client never blocks edits.
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
	return snapshot
}

func (s *Sheet) snapshotLocked() domain.SheetSnapshot {
	slots := make([]domain.QuestionSlot, len(s.slots))
	copy(slots, s.slots)
	return domain.SheetSnapshot{
		SheetID:     s.id,
		SectionID:   s.section.ID,
		SectionName: s.section.Name,
		Slots:       slots,
		UpdatedAt:   s.now(),
	}
}
