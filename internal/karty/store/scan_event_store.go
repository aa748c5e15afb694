package store

import (
	"context"
	"time"

	"github.com/jkratochvil/karty/server/internal/karty/model"
)

// ScanRecord captures a single scan for the append-only log.  ReaderCode
// is the value the hardware reported; implementations resolve it to a
// timecard id where they can (the column stays nullable for scans from
// unconfigured readers).
type ScanRecord struct {
	CardNumber model.CardNumber
	ReaderCode model.ReaderCode
	At         time.Time
	Access     string
}

// ScanEvents persists scans and serves them back for attendance
// aggregation.
type ScanEvents interface {
	// RecordScan appends one scan.  Rows are immutable once written.
	RecordScan(ctx context.Context, rec ScanRecord) error

	// ScansForCardInMonth returns every scan for the card whose timestamp
	// falls inside the month, ascending by timestamp.
	ScansForCardInMonth(ctx context.Context, card model.CardNumber, month model.Month) ([]model.ScanEvent, error)
}
