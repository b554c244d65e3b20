package contracts

import (
	"cloud.google.com/go/spanner"

	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
)

// SnapshotRepo builds insert mutations for product snapshots. Snapshots are
// insert-only; there is no update path.
type SnapshotRepo interface {
	// InsertMut serializes the snapshot lines and returns the insert
	// mutation. Serialization failures surface as errors.
	InsertMut(s *domain.Snapshot) (*spanner.Mutation, error)
}
