package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ielts-scoring-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// SectionLoader loads section configuration JSONB from Postgres.
type SectionLoader struct {
	pool *pgxpool.Pool
}

func NewSectionLoader(pool *pgxpool.Pool) *SectionLoader {
	return &SectionLoader{pool: pool}
}

func (l *SectionLoader) LoadSection(ctx context.Context, sectionID string) (domain.Section, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM sections WHERE id=$1`, sectionID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Section{}, domain.ErrSectionNotFound
	}
	if err != nil {
		return domain.Section{}, fmt.Errorf("load section: %w", err)
	}
	var section domain.Section
	if err := json.Unmarshal(raw, &section); err != nil {
		return domain.Section{}, fmt.Errorf("unmarshal section: %w", err)
	}
	return section, nil
}
