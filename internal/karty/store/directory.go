package store

import (
	"context"
	"errors"

	"github.com/jkratochvil/karty/server/internal/karty/model"
)

// ErrNotFound is returned by lookup methods when no row matches.  Callers
// distinguish it from infrastructure failures with errors.Is; a missing
// user is a normal deny, a failed query is not.
var ErrNotFound = errors.New("not found")

// Directory exposes read-only access to the configuration graph: users,
// their group memberships, and the readers each group is linked to.
// Mutation of the graph is an administrative concern outside this server.
//
// Implementations must be read-consistent within a single call.  The
// engines re-resolve state on every decision, so cross-call consistency
// is not required.
type Directory interface {
	// FindUserByChip resolves a user by normalized chip number using the
	// legacy prefix-tolerant match (see model.MatchesChip).
	FindUserByChip(ctx context.Context, chip model.ChipNumber) (model.User, error)

	// GroupsForUser lists the groups the user belongs to.
	GroupsForUser(ctx context.Context, userID int64) ([]model.Group, error)

	// ReadersForGroup lists the external reader codes linked to a group.
	ReadersForGroup(ctx context.Context, groupID int64) ([]model.ReaderCode, error)

	// FindTimecardByCode resolves a timecard from the code a reader
	// reports.
	FindTimecardByCode(ctx context.Context, code model.ReaderCode) (model.Timecard, error)
}
