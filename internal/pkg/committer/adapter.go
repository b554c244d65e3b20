package committer

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
)

// Scope is the view of an open read-write transaction handed to mutation
// callbacks. Queries run on the transaction itself, so SELECT ... FOR UPDATE
// statements acquire row locks held until commit or rollback.
type Scope interface {
	Query(ctx context.Context, stmt spanner.Statement) *spanner.RowIterator
	Buffer(plan *Plan) error
}

// Adapter applies mutation plans against Spanner. It is the single place
// where read-write transactions are opened: every multi-step mutation runs
// through Exec so that lock-acquire -> read -> validate -> write stays inside
// one transaction.
type Adapter struct {
	client *spanner.Client
	lg     *zap.Logger
}

func NewAdapter(client *spanner.Client, lg *zap.Logger) *Adapter {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Adapter{client: client, lg: lg}
}

// Apply atomically applies a pre-built plan without any in-transaction reads.
// Used for operations that need no lock, such as blind inserts.
func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	if a.client == nil {
		return fmt.Errorf("committer: spanner client is nil")
	}

	_, err := a.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		return tx.BufferWrite(plan.Mutations())
	})
	return err
}

// Exec runs fn inside a single read-write transaction. fn reads the rows it
// needs (taking locks via FOR UPDATE), re-evaluates preconditions against the
// observed state and buffers its mutations; returning an error aborts the
// whole transaction so no row is left half-updated.
func (a *Adapter) Exec(ctx context.Context, fn func(ctx context.Context, scope Scope) error) error {
	if a.client == nil {
		return fmt.Errorf("committer: spanner client is nil")
	}

	start := time.Now()
	resp, err := a.client.ReadWriteTransactionWithOptions(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		return fn(ctx, &txScope{tx: tx})
	}, spanner.TransactionOptions{})
	if err != nil {
		return err
	}

	a.lg.Debug("transaction committed",
		zap.Time("commit_ts", resp.CommitTs),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// txScope adapts a live read-write transaction to the Scope interface.
type txScope struct {
	tx *spanner.ReadWriteTransaction
}

func (s *txScope) Query(ctx context.Context, stmt spanner.Statement) *spanner.RowIterator {
	return s.tx.Query(ctx, stmt)
}

func (s *txScope) Buffer(plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	return s.tx.BufferWrite(plan.Mutations())
}
