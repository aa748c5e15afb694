package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/jkratochvil/karty/server/internal/db"
	"github.com/jkratochvil/karty/server/internal/karty/model"
	"github.com/jkratochvil/karty/server/internal/karty/store"
)

// ScanEventStore persists the append-only scan log.  Writes go through
// the single-writer Worker; reads hit the connection directly.
type ScanEventStore struct {
	conn   *sql.DB
	writer *dbpkg.Worker
	loc    *time.Location
}

// NewScanEventStore takes the location month and day boundaries are cut
// at; nil means time.Local.
func NewScanEventStore(conn *sql.DB, writer *dbpkg.Worker, loc *time.Location) *ScanEventStore {
	if loc == nil {
		loc = time.Local
	}
	return &ScanEventStore{conn: conn, writer: writer, loc: loc}
}

func (s *ScanEventStore) RecordScan(ctx context.Context, rec store.ScanRecord) error {
	at := rec.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	scannedMs := at.UnixMilli()
	nowMs := time.Now().UTC().UnixMilli()

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		// Resolve the reported reader code to a timecard id.  NULL when
		// the code matches no configured reader; the scan is kept anyway.
		var timecardID any
		err := tx.QueryRowContext(ctx, `
SELECT id FROM timecards WHERE reader_code = ?;
`, string(rec.ReaderCode)).Scan(&timecardID)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("RecordScan resolve timecard: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO scan_events(card_number, timecard_id, scanned_at_ms, access, created_at_ms)
VALUES (?, ?, ?, ?, ?);
`, string(rec.CardNumber), timecardID, scannedMs, rec.Access, nowMs); err != nil {
			return fmt.Errorf("RecordScan insert: %w", err)
		}
		return nil
	})
}

func (s *ScanEventStore) ScansForCardInMonth(ctx context.Context, card model.CardNumber, month model.Month) ([]model.ScanEvent, error) {
	from := month.Start(s.loc).UnixMilli()
	to := month.Next().Start(s.loc).UnixMilli()

	rows, err := s.conn.QueryContext(ctx, `
SELECT id, card_number, COALESCE(timecard_id, 0), scanned_at_ms, access
FROM scan_events
WHERE card_number = ? AND scanned_at_ms >= ? AND scanned_at_ms < ?
ORDER BY scanned_at_ms;
`, string(card), from, to)
	if err != nil {
		return nil, fmt.Errorf("ScansForCardInMonth query: %w", err)
	}
	defer rows.Close()

	var out []model.ScanEvent
	for rows.Next() {
		var ev model.ScanEvent
		var ms int64
		if err := rows.Scan(&ev.ID, &ev.CardNumber, &ev.TimecardID, &ms, &ev.Access); err != nil {
			return nil, fmt.Errorf("ScansForCardInMonth scan: %w", err)
		}
		ev.At = time.UnixMilli(ms).In(s.loc)
		out = append(out, ev)
	}
	return out, rows.Err()
}
