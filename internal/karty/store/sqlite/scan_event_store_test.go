package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jkratochvil/karty/server/internal/karty/model"
	"github.com/jkratochvil/karty/server/internal/karty/store"
	sqlitestore "github.com/jkratochvil/karty/server/internal/karty/store/sqlite"
)

func TestScanEventStore_RecordScan_InsertsRow(t *testing.T) {
	conn := openTestDB(t)
	seedGraph(t, conn)
	w := newTestWriter(t, conn)
	ss := sqlitestore.NewScanEventStore(conn, w, time.UTC)

	at := time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC)
	err := ss.RecordScan(context.Background(), store.ScanRecord{
		CardNumber: "C100",
		ReaderCode: "R1",
		At:         at,
		Access:     "allowed",
	})
	if err != nil {
		t.Fatalf("RecordScan: %v", err)
	}

	var (
		card       string
		timecardID sql.NullInt64
		scannedMs  int64
		access     string
	)
	err = conn.QueryRowContext(context.Background(), `
SELECT card_number, timecard_id, scanned_at_ms, access FROM scan_events;`,
	).Scan(&card, &timecardID, &scannedMs, &access)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if card != "C100" || access != "allowed" {
		t.Errorf("wrong row: card=%q access=%q", card, access)
	}
	if !timecardID.Valid || timecardID.Int64 != 1 {
		t.Errorf("expected reader code R1 resolved to timecard 1, got %v", timecardID)
	}
	if scannedMs != at.UnixMilli() {
		t.Errorf("expected scanned_at_ms=%d, got %d", at.UnixMilli(), scannedMs)
	}
}

func TestScanEventStore_RecordScan_UnknownReaderKeepsScan(t *testing.T) {
	conn := openTestDB(t)
	seedGraph(t, conn)
	w := newTestWriter(t, conn)
	ss := sqlitestore.NewScanEventStore(conn, w, time.UTC)

	err := ss.RecordScan(context.Background(), store.ScanRecord{
		CardNumber: "C100",
		ReaderCode: "R9",
		At:         time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC),
		Access:     "no_matching_group",
	})
	if err != nil {
		t.Fatalf("RecordScan: %v", err)
	}

	var timecardID sql.NullInt64
	if err := conn.QueryRowContext(context.Background(),
		`SELECT timecard_id FROM scan_events;`).Scan(&timecardID); err != nil {
		t.Fatalf("query: %v", err)
	}
	if timecardID.Valid {
		t.Error("expected NULL timecard_id for an unconfigured reader")
	}
}

func TestScanEventStore_ScansForCardInMonth(t *testing.T) {
	conn := openTestDB(t)
	seedGraph(t, conn)
	w := newTestWriter(t, conn)
	ss := sqlitestore.NewScanEventStore(conn, w, time.UTC)
	ctx := context.Background()

	scans := []time.Time{
		time.Date(2024, 3, 5, 11, 10, 0, 0, time.UTC), // inserted out of order
		time.Date(2024, 3, 5, 7, 55, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC), // previous month
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),  // next month
	}
	for _, at := range scans {
		if err := ss.RecordScan(ctx, store.ScanRecord{CardNumber: "C100", ReaderCode: "R1", At: at}); err != nil {
			t.Fatalf("RecordScan: %v", err)
		}
	}
	// A different card in the same month must not leak in.
	if err := ss.RecordScan(ctx, store.ScanRecord{CardNumber: "C200", ReaderCode: "R1",
		At: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("RecordScan: %v", err)
	}

	events, err := ss.ScansForCardInMonth(ctx, "C100", model.Month{Year: 2024, Month: time.March})
	if err != nil {
		t.Fatalf("ScansForCardInMonth: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 March events, got %d", len(events))
	}
	if !events[0].At.Before(events[1].At) {
		t.Error("events must come back in ascending timestamp order")
	}
	if events[0].At.Hour() != 7 || events[1].At.Hour() != 11 {
		t.Errorf("wrong events: %v, %v", events[0].At, events[1].At)
	}
}

func TestScanEventStore_MonthBoundariesExclusive(t *testing.T) {
	conn := openTestDB(t)
	seedGraph(t, conn)
	w := newTestWriter(t, conn)
	ss := sqlitestore.NewScanEventStore(conn, w, time.UTC)
	ctx := context.Background()

	// Midnight on the 1st belongs to the month; midnight on the next 1st
	// does not.
	for _, at := range []time.Time{
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	} {
		if err := ss.RecordScan(ctx, store.ScanRecord{CardNumber: "C100", ReaderCode: "R1", At: at}); err != nil {
			t.Fatalf("RecordScan: %v", err)
		}
	}

	events, err := ss.ScansForCardInMonth(ctx, "C100", model.Month{Year: 2024, Month: time.March})
	if err != nil {
		t.Fatalf("ScansForCardInMonth: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected exactly the March 1 midnight scan, got %d events", len(events))
	}
}
