package migrations

import (
	"context"
	_ "embed"
	"encoding/json"

	"ielts-scoring-service/internal/domain"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_sections.sql
var createSectionsSQL string

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			if _, err := db.ExecContext(ctx, createSectionsSQL); err != nil {
				return err
			}
			return seedBuiltinSections(ctx, db)
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS sections`)
			return err
		},
	)
}

// seedBuiltinSections inserts the reference Listening/Reading configurations
// so a fresh database serves the standard test without manual setup.
func seedBuiltinSections(ctx context.Context, db *bun.DB) error {
	for id, section := range domain.BuiltinSections() {
		data, err := json.Marshal(section)
		if err != nil {
			return err
		}
		_, err = db.ExecContext(ctx,
			`INSERT INTO sections (id, data) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`,
			id, string(data))
		if err != nil {
			return err
		}
	}
	return nil
}
