package memory

import (
	"context"
	"sync"
	"time"
)

// AuditLog collects free-text audit lines in memory.
type AuditLog struct {
	mu    sync.Mutex
	lines []AuditLine
}

type AuditLine struct {
	At   time.Time
	Text string
}

func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

func (l *AuditLog) Append(_ context.Context, at time.Time, text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if at.IsZero() {
		at = time.Now().UTC()
	}
	l.lines = append(l.lines, AuditLine{At: at, Text: text})
	return nil
}

func (l *AuditLog) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.lines[:0]
	var deleted int64
	for _, ln := range l.lines {
		if ln.At.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, ln)
	}
	l.lines = kept
	return deleted, nil
}

// Lines returns a copy of the collected lines.  Test-only helper.
func (l *AuditLog) Lines() []AuditLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]AuditLine, len(l.lines))
	copy(out, l.lines)
	return out
}
