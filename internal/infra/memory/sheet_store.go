package memory

import (
	"sync"

	"ielts-scoring-service/internal/app"
)

// SheetStore is an in-memory implementation of app.SheetRepository.
type SheetStore struct {
	mu     sync.RWMutex
	sheets map[string]*app.Sheet
}

func NewSheetStore() *SheetStore {
	return &SheetStore{
		sheets: make(map[string]*app.Sheet),
	}
}

func (s *SheetStore) GetOrCreate(sheetID string, newSheet func() *app.Sheet) *app.Sheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sheet, ok := s.sheets[sheetID]; ok {
		return sheet
	}
	sheet := newSheet()
	s.sheets[sheetID] = sheet
	return sheet
}

func (s *SheetStore) Get(sheetID string) (*app.Sheet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sheet, ok := s.sheets[sheetID]
	return sheet, ok
}

func (s *SheetStore) Delete(sheetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sheets, sheetID)
}
