package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jkratochvil/karty/server/internal/db"
)

// openTestDB returns an in-memory SQLite connection with the same PRAGMAs
// and schema as production.  The connection is closed automatically when
// the test finishes.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Each call gets a unique in-memory database.  The shared-cache URI
	// keeps the database alive for the lifetime of the connection pool.
	dsn := fmt.Sprintf(
		"file:test_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		t.Name(),
	)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("openTestDB: sql.Open: %v", err)
	}

	// Match production: single connection for SQLite safety.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.Ping(); err != nil {
		conn.Close()
		t.Fatalf("openTestDB: ping: %v", err)
	}

	if err := db.Migrate(context.Background(), conn); err != nil {
		conn.Close()
		t.Fatalf("openTestDB: migrate: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// newTestWriter returns a db.Worker backed by conn, closed automatically
// when the test finishes.
func newTestWriter(t *testing.T, conn *sql.DB) *db.Worker {
	t.Helper()

	w := db.NewWorker(conn)
	t.Cleanup(func() { w.Close() })
	return w
}

// seedGraph installs the standard test fixture: user 1 (chip 42, card
// C100) in group "Day" (Mon-Fri 08:00-17:00) linked to reader R1; reader
// R2 is configured but linked to nothing.
func seedGraph(t *testing.T, conn *sql.DB) {
	t.Helper()
	ctx := context.Background()
	nowMs := time.Now().UTC().UnixMilli()

	stmts := []struct {
		sql  string
		args []any
	}{
		{`INSERT INTO users(id, name, second_name, access, card_number, chip_number, created_at_ms, updated_at_ms)
VALUES (1, 'Jan', 'Novak', 'A', 'C100', '0000000042', ?, ?);`, []any{nowMs, nowMs}},
		{`INSERT INTO groups(id, group_name, weekdays, access_from_s, access_to_s, created_at_ms, updated_at_ms)
VALUES (1, 'Day', 62, 28800, 61200, ?, ?);`, []any{nowMs, nowMs}},
		{`INSERT INTO timecards(id, name, head, reader_code, push_open, created_at_ms, updated_at_ms)
VALUES (1, 'Main Entrance', 'front', 'R1', 'relay-1', ?, ?);`, []any{nowMs, nowMs}},
		{`INSERT INTO timecards(id, name, head, reader_code, push_open, created_at_ms, updated_at_ms)
VALUES (2, 'Server Room', 'back', 'R2', '', ?, ?);`, []any{nowMs, nowMs}},
		{`INSERT INTO user_groups(user_id, group_id) VALUES (1, 1);`, nil},
		{`INSERT INTO group_timecards(group_id, timecard_id) VALUES (1, 1);`, nil},
	}
	for _, s := range stmts {
		if _, err := conn.ExecContext(ctx, s.sql, s.args...); err != nil {
			t.Fatalf("seedGraph: %v", err)
		}
	}
}
