package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jkratochvil/karty/server/internal/karty/model"
	"github.com/jkratochvil/karty/server/internal/karty/store"
	"github.com/jkratochvil/karty/server/internal/karty/types"
)

var (
	ErrInvalidChip   = errors.New("chip_id is required")
	ErrInvalidReader = errors.New("reader_id is required")
)

// Deny/grant reasons recorded with each scan.
const (
	ReasonGranted         = "allowed"
	ReasonUnknownChip     = "unknown_chip"
	ReasonNoMatchingGroup = "no_matching_group"
)

// Decision is the outcome of one authorization check.
type Decision struct {
	Granted bool
	Reason  string
	Group   string      // name of the group that granted, empty on deny
	User    *model.User // resolved user, nil when the chip matched nobody
}

// AccessService authorizes scans against the group schedule graph and
// records them.  Authorization itself is a pure read; the scan log and
// audit trail writes happen in Decide.
type AccessService struct {
	directory store.Directory
	scans     store.ScanEvents
	audit     store.AuditLog
	now       func() time.Time
}

func NewAccessService(dir store.Directory, scans store.ScanEvents, audit store.AuditLog) *AccessService {
	return &AccessService{
		directory: dir,
		scans:     scans,
		audit:     audit,
		now:       time.Now,
	}
}

// Authorize decides whether the user presenting chip may pass the reader
// with the given external code at the given instant.  A zero instant
// means "now".
//
// The decision holds no state and caches nothing: every call re-resolves
// the user, their groups and the group-reader links, so schedule edits
// take effect on the next scan.  Any store failure is returned as an
// error, never folded into a deny.
func (s *AccessService) Authorize(ctx context.Context, chip, readerCode string, at time.Time) (Decision, error) {
	chip = strings.TrimSpace(chip)
	readerCode = strings.TrimSpace(readerCode)
	if chip == "" {
		return Decision{}, ErrInvalidChip
	}
	if readerCode == "" {
		return Decision{}, ErrInvalidReader
	}
	if at.IsZero() {
		at = s.now()
	}

	user, err := s.directory.FindUserByChip(ctx, model.NormalizeChip(chip))
	if errors.Is(err, store.ErrNotFound) {
		return Decision{Reason: ReasonUnknownChip}, nil
	}
	if err != nil {
		return Decision{}, fmt.Errorf("find user by chip: %w", err)
	}

	groups, err := s.directory.GroupsForUser(ctx, user.ID)
	if err != nil {
		return Decision{}, fmt.Errorf("groups for user %d: %w", user.ID, err)
	}

	code := model.ReaderCode(readerCode)
	for _, g := range groups {
		if !g.ActiveAt(at) {
			continue
		}
		readers, err := s.directory.ReadersForGroup(ctx, g.ID)
		if err != nil {
			return Decision{}, fmt.Errorf("readers for group %d: %w", g.ID, err)
		}
		for _, r := range readers {
			if r == code {
				// First matching group wins; the rest are not evaluated.
				return Decision{Granted: true, Reason: ReasonGranted, Group: g.Name, User: &user}, nil
			}
		}
	}

	return Decision{Reason: ReasonNoMatchingGroup, User: &user}, nil
}

// Decide is the ingestion entry point: it authorizes the scan, appends it
// to the scan log, writes an audit line and builds the wire response.
func (s *AccessService) Decide(ctx context.Context, req types.ScanRequest) (types.ScanResponse, error) {
	at := time.Time{}
	if t := parseOptionalTimestamp(req.RequestedAt); t != nil {
		at = *t
	}

	dec, err := s.Authorize(ctx, req.ChipID, req.ReaderID, at)
	if err != nil {
		return types.ScanResponse{}, err
	}

	decidedAt := at
	if decidedAt.IsZero() {
		decidedAt = s.now()
	}

	resp := types.ScanResponse{
		OK:         true,
		Granted:    dec.Granted,
		Reason:     dec.Reason,
		Group:      dec.Group,
		ReaderID:   strings.TrimSpace(req.ReaderID),
		ServerTime: s.now().UTC().Format(time.RFC3339Nano),
	}

	if dec.Granted {
		// Hand the reader its door-release identifier, if it has one.
		tc, err := s.directory.FindTimecardByCode(ctx, model.ReaderCode(resp.ReaderID))
		if err == nil {
			resp.PushOpen = tc.PushOpen
		}
	}

	s.recordScan(ctx, req, dec, decidedAt)

	return resp, nil
}

// recordScan persists the scan and an audit line.  Errors are dropped on
// purpose: a failed audit write must not withhold the decision from the
// reader standing at the door.
func (s *AccessService) recordScan(ctx context.Context, req types.ScanRequest, dec Decision, at time.Time) {
	card := model.CardNumber(model.NormalizeChip(req.ChipID))
	if dec.User != nil && dec.User.CardNumber != "" {
		card = dec.User.CardNumber
	}

	_ = s.scans.RecordScan(ctx, store.ScanRecord{
		CardNumber: card,
		ReaderCode: model.ReaderCode(strings.TrimSpace(req.ReaderID)),
		At:         at,
		Access:     dec.Reason,
	})

	who := strings.TrimSpace(req.ChipID)
	if dec.User != nil {
		who = fmt.Sprintf("%s %s", dec.User.Name, dec.User.SecondName)
	}
	verdict := "denied"
	if dec.Granted {
		verdict = "allowed"
	}
	_ = s.audit.Append(ctx, s.now().UTC(),
		fmt.Sprintf("access %s for %s at reader %s (%s)", verdict, who, strings.TrimSpace(req.ReaderID), dec.Reason))
}

// parseOptionalTimestamp parses a device-reported timestamp.  Returns nil
// if the string is empty or unparseable.
func parseOptionalTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t
	}
	return nil
}
