package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"ielts-scoring-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// SectionLoader fetches section configurations from a backing store.
type SectionLoader interface {
	LoadSection(ctx context.Context, sectionID string) (domain.Section, error)
}

// SectionRepository caches section configurations with TTL to avoid repeated
// backing-store hits; configurations are static data so a short TTL is plenty.
type SectionRepository struct {
	loader SectionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedSection
}

type cachedSection struct {
	section   domain.Section
	expiresAt time.Time
}

func NewSectionRepository(loader SectionLoader, ttl time.Duration) *SectionRepository {
	return &SectionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedSection),
	}
}

func (r *SectionRepository) GetSection(ctx context.Context, sectionID string) (domain.Section, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[sectionID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.section, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(sectionID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[sectionID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.section, nil
		}
		r.mu.RUnlock()

		section, err := r.loader.LoadSection(ctx, sectionID)
		if err != nil {
			return domain.Section{}, err
		}

		r.mu.Lock()
		r.cache[sectionID] = cachedSection{
			section:   section,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return section, nil
	})
	if err != nil {
		return domain.Section{}, err
	}
	return result.(domain.Section), nil
}

// StaticSectionLoader serves sections from an in-memory map (the built-in
// Listening/Reading configurations, or fixtures in tests).
type StaticSectionLoader struct {
	sections map[string]domain.Section
}

func NewStaticSectionLoader(sections map[string]domain.Section) *StaticSectionLoader {
	return &StaticSectionLoader{sections: sections}
}

func (l *StaticSectionLoader) LoadSection(_ context.Context, sectionID string) (domain.Section, error) {
	if section, ok := l.sections[sectionID]; ok {
		return section, nil
	}
	return domain.Section{}, domain.ErrSectionNotFound
}

func (r *SectionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
