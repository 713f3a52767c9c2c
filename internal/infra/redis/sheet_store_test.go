package redis

import (
	"testing"
	"time"

	"ielts-scoring-service/internal/app"
	"ielts-scoring-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSheetStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSheetStore(client, time.Minute)

	section := domain.BuiltinSections()[domain.SectionListening]
	_ = store.GetOrCreate("sheet-1", func() *app.Sheet {
		return app.NewSheet("sheet-1", section)
	})
	if !mr.Exists("sheet:session:sheet-1") {
		t.Fatalf("expected redis key to be set")
	}

	store.Delete("sheet-1")
	if mr.Exists("sheet:session:sheet-1") {
		t.Fatalf("expected redis key to be removed")
	}
}
