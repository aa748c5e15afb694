package types

// VoucherDay is one calendar day of a meal-voucher report.
type VoucherDay struct {
	Date      string `json:"date"`  // "2006-01-02"
	First     string `json:"first"` // first scan, "15:04:05"
	Last      string `json:"last"`  // last scan, "15:04:05"
	SpreadS   int64  `json:"spread_s"`
	Qualifies bool   `json:"qualifies"`
}

// VoucherReport is the monthly attendance summary for one card.
type VoucherReport struct {
	CardNumber     string       `json:"card_number"`
	Month          string       `json:"month"`
	QualifyingDays int          `json:"qualifying_days"`
	Days           []VoucherDay `json:"days"`
}
