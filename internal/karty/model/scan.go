package model

import "time"

// ScanEvent is one row of the append-only scan log.  Events are written
// once by the ingestion path and only ever read afterwards; attendance
// aggregation is computed entirely from these rows.
type ScanEvent struct {
	ID         int64
	CardNumber CardNumber
	// TimecardID is the internal id of the reader the scan came from,
	// zero when the reported reader code matched no configured timecard.
	TimecardID int64
	At         time.Time
	// Access is the recorded decision string ("allowed", "no_matching_group", ...).
	Access string
}
