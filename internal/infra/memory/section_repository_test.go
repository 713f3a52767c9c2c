package memory

import (
	"context"
	"testing"
	"time"

	"ielts-scoring-service/internal/domain"
)

func TestSectionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		SectionLoader: NewStaticSectionLoader(domain.BuiltinSections()),
	}
	repo := NewSectionRepository(loader, time.Minute)

	section, err := repo.GetSection(context.Background(), domain.SectionReading)
	if err != nil {
		t.Fatalf("get section: %v", err)
	}
	if section.QuestionCount() != 40 {
		t.Fatalf("expected 40 questions, got %d", section.QuestionCount())
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetSection(context.Background(), domain.SectionReading); err != nil {
		t.Fatalf("get section 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestSectionRepositoryUnknownSection(t *testing.T) {
	repo := NewSectionRepository(NewStaticSectionLoader(domain.BuiltinSections()), time.Minute)
	if _, err := repo.GetSection(context.Background(), "speaking"); err != domain.ErrSectionNotFound {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

type countingLoader struct {
	SectionLoader
	calls int
}

func (l *countingLoader) LoadSection(ctx context.Context, sectionID string) (domain.Section, error) {
	l.calls++
	return l.SectionLoader.LoadSection(ctx, sectionID)
}
