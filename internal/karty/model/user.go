package model

import "strings"

// ChipWidth is the fixed width chip identifiers are stored at.  Readers
// report chips with leading zeros stripped; every value is re-padded to
// this width before it is compared or persisted.
const ChipWidth = 10

// ChipNumber is the badge's wire-format identifier, zero-padded to
// ChipWidth.  CardNumber is the legacy identifier scan events are keyed
// by.  They are distinct types on purpose: the two fields live side by
// side on User and conflating them has caused real bugs upstream.
type ChipNumber string

type CardNumber string

type User struct {
	ID         int64
	Name       string
	SecondName string
	Email      string
	Username   string
	Access     string // single-character access-level flag
	CardNumber CardNumber
	ChipNumber ChipNumber
}

// NormalizeChip left-pads a raw chip value with zeros to ChipWidth.
// Values already at or beyond the width are returned unchanged.
func NormalizeChip(raw string) ChipNumber {
	raw = strings.TrimSpace(raw)
	if len(raw) >= ChipWidth {
		return ChipNumber(raw)
	}
	return ChipNumber(strings.Repeat("0", ChipWidth-len(raw)) + raw)
}

// MatchesChip reports whether a stored chip matches a normalized lookup
// value.  The match is case-insensitive and prefix-tolerant: this mirrors
// the LIKE lookup the legacy system performed against the zero-padded
// column.  Exact equality is deliberately NOT enforced here; see the open
// question on chip matching in DESIGN.md before tightening it.
func MatchesChip(stored, lookup ChipNumber) bool {
	s := strings.ToLower(string(stored))
	l := strings.ToLower(string(lookup))
	return strings.HasPrefix(s, l)
}
