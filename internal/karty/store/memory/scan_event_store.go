package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jkratochvil/karty/server/internal/karty/model"
	"github.com/jkratochvil/karty/server/internal/karty/store"
)

// ScanEventStore is an in-memory append-only scan log for tests and dev
// environments.
type ScanEventStore struct {
	mu     sync.Mutex
	loc    *time.Location
	nextID int64
	events []model.ScanEvent
}

// NewScanEventStore keeps the month boundary location explicit so tests
// can pin it; nil means time.Local, matching the sqlite store.
func NewScanEventStore(loc *time.Location) *ScanEventStore {
	if loc == nil {
		loc = time.Local
	}
	return &ScanEventStore{loc: loc}
}

func (s *ScanEventStore) RecordScan(_ context.Context, rec store.ScanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := rec.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	s.nextID++
	s.events = append(s.events, model.ScanEvent{
		ID:         s.nextID,
		CardNumber: rec.CardNumber,
		At:         at,
		Access:     rec.Access,
	})
	return nil
}

// Seed appends a pre-built event directly, bypassing RecordScan.
// Test-only helper.
func (s *ScanEventStore) Seed(ev model.ScanEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.ID == 0 {
		s.nextID++
		ev.ID = s.nextID
	}
	s.events = append(s.events, ev)
}

func (s *ScanEventStore) ScansForCardInMonth(_ context.Context, card model.CardNumber, month model.Month) ([]model.ScanEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.ScanEvent
	for _, ev := range s.events {
		if ev.CardNumber == card && month.Contains(ev.At, s.loc) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out, nil
}

// Events returns a copy of all recorded events.  Test-only helper.
func (s *ScanEventStore) Events() []model.ScanEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ScanEvent, len(s.events))
	copy(out, s.events)
	return out
}
