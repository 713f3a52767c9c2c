package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"ielts-scoring-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// SectionLoader fetches section configurations from a backing store.
type SectionLoader interface {
	LoadSection(ctx context.Context, sectionID string) (domain.Section, error)
}

// SectionRepository caches section configurations in Redis as JSON values
// (key: section:{id}:config) and falls back to a loader on cache miss.
type SectionRepository struct {
	client *redis.Client
	loader SectionLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewSectionRepository(client *redis.Client, loader SectionLoader, ttl time.Duration) *SectionRepository {
	return &SectionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *SectionRepository) GetSection(ctx context.Context, sectionID string) (domain.Section, error) {
	key := r.configKey(sectionID)

	if section, ok := r.fromCache(ctx, key); ok {
		return section, nil
	}

	result, err, _ := r.sf.Do(sectionID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if section, ok := r.fromCache(ctx, key); ok {
			return section, nil
		}

		section, err := r.loader.LoadSection(ctx, sectionID)
		if err != nil {
			return domain.Section{}, err
		}

		if data, err := json.Marshal(section); err == nil {
			_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		}
		return section, nil
	})
	if err != nil {
		return domain.Section{}, err
	}
	return result.(domain.Section), nil
}

func (r *SectionRepository) fromCache(ctx context.Context, key string) (domain.Section, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return domain.Section{}, false
	}
	var section domain.Section
	if err := json.Unmarshal(raw, &section); err != nil {
		return domain.Section{}, false
	}
	return section, true
}

func (r *SectionRepository) configKey(sectionID string) string {
	return "section:" + sectionID + ":config"
}

func (r *SectionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
