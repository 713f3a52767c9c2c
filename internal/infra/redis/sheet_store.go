package redis

import (
	"context"
	"sync"
	"time"

	"ielts-scoring-service/internal/app"
	"github.com/redis/go-redis/v9"
)

// SheetStore is a Redis-aware implementation of app.SheetRepository.
// Notes:
//   - It still keeps a local in-memory map of sheets to reuse the existing
//     in-process snapshot broadcast logic.
//   - Redis is used to mark sheet liveness (and could be extended to share
//     slot state or route cross-instance pub/sub).
type SheetStore struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	sheets map[string]*app.Sheet
}

func NewSheetStore(client *redis.Client, ttl time.Duration) *SheetStore {
	return &SheetStore{
		client: client,
		ttl:    ttl,
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
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(sheetID), "1", s.ttl).Err()
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
	if _, ok := s.sheets[sheetID]; !ok {
		return
	}
	delete(s.sheets, sheetID)
	_ = s.client.Del(context.Background(), s.key(sheetID)).Err()
}

func (s *SheetStore) key(sheetID string) string {
	return "sheet:session:" + sheetID
}
