package redis

import (
	"context"
	"testing"
	"time"

	"ielts-scoring-service/internal/domain"
	"ielts-scoring-service/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSectionRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	loader := &countingLoader{
		SectionLoader: memory.NewStaticSectionLoader(domain.BuiltinSections()),
	}
	repo := NewSectionRepository(client, loader, time.Minute)

	section, err := repo.GetSection(context.Background(), domain.SectionListening)
	if err != nil {
		t.Fatalf("get section: %v", err)
	}
	if section.Name != "Listening" || section.QuestionCount() != 40 {
		t.Fatalf("unexpected section: %+v", section)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("section:listening:config") {
		t.Fatalf("expected config cached in redis")
	}

	// Second call should hit the redis cache, loader not incremented.
	cached, err := repo.GetSection(context.Background(), domain.SectionListening)
	if err != nil {
		t.Fatalf("get section 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if len(cached.Bands) != len(section.Bands) {
		t.Fatalf("expected band table to survive the cache round trip")
	}
}

type countingLoader struct {
	memory.SectionLoader
	calls int
}

func (l *countingLoader) LoadSection(ctx context.Context, sectionID string) (domain.Section, error) {
	l.calls++
	return l.SectionLoader.LoadSection(ctx, sectionID)
}
