package types

// ScanRequest is what a badge reader posts for each presented chip.
// ReaderID is the reader's external code (entreader_id), not a database
// key.
type ScanRequest struct {
	ChipID      string `json:"chip_id"`
	ReaderID    string `json:"reader_id"`
	RequestedAt string `json:"requested_at,omitempty"` // optional device timestamp, RFC3339
}

type ScanResponse struct {
	OK      bool   `json:"ok"`
	Granted bool   `json:"granted"`
	Reason  string `json:"reason,omitempty"`
	// Group is the name of the schedule group that granted the scan.
	Group string `json:"group,omitempty"`
	// PushOpen is the door-release action identifier of the reader, sent
	// back only on a granted scan so the device can actuate the release.
	PushOpen   string `json:"push_open,omitempty"`
	ReaderID   string `json:"reader_id"`
	ServerTime string `json:"server_time"`
}
