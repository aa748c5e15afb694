package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/jkratochvil/karty/server/internal/db"
)

// AuditLogStore persists the free-text audit trail.
type AuditLogStore struct {
	conn   *sql.DB
	writer *dbpkg.Worker
}

func NewAuditLogStore(conn *sql.DB, writer *dbpkg.Worker) *AuditLogStore {
	return &AuditLogStore{conn: conn, writer: writer}
}

func (s *AuditLogStore) Append(ctx context.Context, at time.Time, text string) error {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	ms := at.UnixMilli()

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO audit_log(logged_at_ms, text) VALUES (?, ?);
`, ms, text); err != nil {
			return fmt.Errorf("Append insert: %w", err)
		}
		return nil
	})
}

func (s *AuditLogStore) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
DELETE FROM audit_log WHERE logged_at_ms < ?;
`, cutoff.UTC().UnixMilli())
		if err != nil {
			return fmt.Errorf("PruneOlderThan delete: %w", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}
