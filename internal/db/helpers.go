// Package db holds small schema-introspection helpers used by the readiness
// endpoint to report tables the migration has not created yet.
package db

import (
	"context"
	"database/sql"

	"abarto-backend/internal/domain"
)

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// MissingTables lists resource tables absent from the connected schema.
func MissingTables(ctx context.Context, q QueryRower, resources []domain.Resource) []string {
	missing := []string{}
	for _, res := range resources {
		if !HasTable(ctx, q, res.Table) {
			missing = append(missing, res.Table)
		}
	}
	return missing
}
