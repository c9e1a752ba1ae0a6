package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"
)

// applyMigrations runs every *.sql file in fsys in lexical order, each in its
// own transaction. Files must be idempotent; nothing records what already ran.
func applyMigrations(ctx context.Context, db *sql.DB, fsys fs.FS) (int, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return 0, err
	}
	sort.Strings(names)

	for i, name := range names {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return i, err
		}
		if strings.TrimSpace(string(b)) == "" {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return i, err
		}
		if _, err := tx.ExecContext(ctx, string(b)); err != nil {
			_ = tx.Rollback()
			return i, fmt.Errorf("%s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return i, fmt.Errorf("%s: commit: %w", name, err)
		}
		log.Printf("[migrate] %s", name)
	}
	return len(names), nil
}
