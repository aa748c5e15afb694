package sqlite_test

import (
	"context"
	"testing"
	"time"

	sqlitestore "github.com/jkratochvil/karty/server/internal/karty/store/sqlite"
)

func TestAuditLogStore_AppendAndPrune(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	al := sqlitestore.NewAuditLogStore(conn, w)
	ctx := context.Background()

	now := time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC)
	if err := al.Append(ctx, now.AddDate(0, 0, -120), "old line"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := al.Append(ctx, now, "recent line"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	deleted, err := al.PruneOlderThan(ctx, now.AddDate(0, 0, -90))
	if err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}

	var count int
	var text string
	if err := conn.QueryRowContext(ctx,
		`SELECT COUNT(*), MAX(text) FROM audit_log;`).Scan(&count, &text); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 1 || text != "recent line" {
		t.Errorf("expected only the recent line, got count=%d text=%q", count, text)
	}
}
