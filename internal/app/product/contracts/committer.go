package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	commitplan "github.com/murkotick/offering-catalog-service/internal/pkg/committer"
)

// RowQuerier runs a SQL statement and returns its row iterator. Both the
// open read-write transaction scope and a single-use read-only transaction
// satisfy it, so loaders and the reference validator can run inside or
// outside a locked transaction unchanged.
type RowQuerier interface {
	Query(ctx context.Context, stmt spanner.Statement) *spanner.RowIterator
}

// Committer is the abstraction usecases call to apply mutations atomically.
// It keeps usecases independent of Spanner driver details.
type Committer interface {
	// Apply atomically applies a pre-built mutation plan. Used by operations
	// that need no in-transaction reads, such as blind inserts.
	Apply(ctx context.Context, plan *commitplan.Plan) error

	// Exec runs fn inside one read-write transaction. fn loads the rows it
	// needs through the scope (taking row locks via SELECT ... FOR UPDATE),
	// re-checks preconditions and buffers its mutations; an error from fn
	// aborts the whole transaction.
	Exec(ctx context.Context, fn func(ctx context.Context, scope commitplan.Scope) error) error
}
