package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jkratochvil/karty/server/internal/karty/model"
	"github.com/jkratochvil/karty/server/internal/karty/store"
	"github.com/jkratochvil/karty/server/internal/karty/types"
)

var (
	ErrInvalidCard  = errors.New("card_number is required")
	ErrInvalidMonth = errors.New("month is invalid")
)

// DefaultMinPresence is the minimum first-to-last scan spread a day needs
// to earn a meal voucher.  Policy, not mechanism: override it through
// VoucherConfig, not by editing call sites.
const DefaultMinPresence = 3 * time.Hour

type VoucherConfig struct {
	// MinPresence is the qualifying spread threshold, inclusive.
	// Zero means DefaultMinPresence.
	MinPresence time.Duration

	// Location is the timezone days are cut at.  Nil means time.Local.
	Location *time.Location
}

// VoucherService aggregates the raw scan log into per-day attendance
// figures.  Reads only; the scan log is owned by the ingestion path.
type VoucherService struct {
	scans       store.ScanEvents
	minPresence time.Duration
	loc         *time.Location
}

func NewVoucherService(scans store.ScanEvents, cfg VoucherConfig) *VoucherService {
	if cfg.MinPresence <= 0 {
		cfg.MinPresence = DefaultMinPresence
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &VoucherService{scans: scans, minPresence: cfg.MinPresence, loc: cfg.Location}
}

// QualifyingDays counts the days of the month on which the card's
// first-to-last scan spread reaches the presence threshold.
func (s *VoucherService) QualifyingDays(ctx context.Context, card model.CardNumber, month model.Month) (int, error) {
	rep, err := s.Report(ctx, card, month)
	if err != nil {
		return 0, err
	}
	return rep.QualifyingDays, nil
}

// Report builds the full per-day breakdown for the month.  The store
// contract already orders scans by timestamp, but the aggregator sorts
// again rather than trusting it: the result must not depend on arrival
// order.
func (s *VoucherService) Report(ctx context.Context, card model.CardNumber, month model.Month) (types.VoucherReport, error) {
	if card == "" {
		return types.VoucherReport{}, ErrInvalidCard
	}
	if !month.Valid() {
		return types.VoucherReport{}, ErrInvalidMonth
	}

	events, err := s.scans.ScansForCardInMonth(ctx, card, month)
	if err != nil {
		return types.VoucherReport{}, fmt.Errorf("scans for card in %s: %w", month, err)
	}

	sort.Slice(events, func(i, j int) bool { return events[i].At.Before(events[j].At) })

	type daySpan struct {
		first time.Time
		last  time.Time
	}
	spans := make(map[string]*daySpan)
	var order []string

	for _, ev := range events {
		at := ev.At.In(s.loc)
		day := at.Format("2006-01-02")
		sp, ok := spans[day]
		if !ok {
			spans[day] = &daySpan{first: at, last: at}
			order = append(order, day)
			continue
		}
		// Events are sorted, so only the upper bound can move.
		sp.last = at
	}

	rep := types.VoucherReport{
		CardNumber: string(card),
		Month:      month.String(),
	}
	for _, day := range order {
		sp := spans[day]
		spread := sp.last.Sub(sp.first)
		// True duration comparison, inclusive: exactly MinPresence apart
		// still qualifies.  A single scan has spread 0 and never does.
		qualifies := spread >= s.minPresence
		if qualifies {
			rep.QualifyingDays++
		}
		rep.Days = append(rep.Days, types.VoucherDay{
			Date:      day,
			First:     sp.first.Format("15:04:05"),
			Last:      sp.last.Format("15:04:05"),
			SpreadS:   int64(spread / time.Second),
			Qualifies: qualifies,
		})
	}

	return rep, nil
}
