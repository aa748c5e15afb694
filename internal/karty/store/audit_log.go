package store

import (
	"context"
	"time"
)

// AuditLog is the free-text trail of server-side actions.  Append-only,
// no further structure.  Scan events are never pruned (they feed the
// voucher reports); the audit trail is, on a configurable retention.
type AuditLog interface {
	Append(ctx context.Context, at time.Time, text string) error
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
