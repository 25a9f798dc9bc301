package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// AdminSQLite wipes all persisted state. Used only by the testing/ops
// reset collaborator, never by normal user-facing flows.
type AdminSQLite struct {
	db *sql.DB
}

func NewAdminSQLite(db *sql.DB) *AdminSQLite { return &AdminSQLite{db: db} }

var _ Admin = (*AdminSQLite)(nil)

// Reset deletes every row from every table in one transaction so a reader
// never observes a half-cleared baseline.
func (r *AdminSQLite) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Order respects the sessions→users and blogs→users foreign keys.
	for _, stmt := range []string{
		`DELETE FROM blog_events`,
		`DELETE FROM sessions`,
		`DELETE FROM blogs`,
		`DELETE FROM users`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset %q: %w", stmt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset transaction: %w", err)
	}
	return nil
}
