package model

// ReaderCode is the external identifier a physical reader reports with
// each scan (the legacy entreader_id column).  It correlates incoming
// scans to configured timecards and is never the timecard's primary key.
type ReaderCode string

// Timecard is a physical badge reader.
type Timecard struct {
	ID         int64
	Name       string
	Head       string
	ReaderCode ReaderCode
	// PushOpen is an optional door-release action identifier.  The server
	// only reports it back on an allowed scan; actuation is the reader's
	// job.
	PushOpen string
}
