package repo

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"

	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	"github.com/murkotick/offering-catalog-service/internal/models/m_snapshot"
)

// SnapshotRepo is the Spanner implementation of the snapshot repository.
// Snapshots are insert-only.
type SnapshotRepo struct{}

func NewSnapshotRepo() *SnapshotRepo {
	return &SnapshotRepo{}
}

// InsertMut serializes the snapshot lines to JSON and builds the insert mutation.
func (r *SnapshotRepo) InsertMut(s *domain.Snapshot) (*spanner.Mutation, error) {
	if s == nil {
		return nil, nil
	}

	lines, err := json.Marshal(s.Lines)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot lines: %w", err)
	}

	values := m_snapshot.BuildInsertMap(
		s.ID,
		s.ProductID,
		s.Name,
		s.Code,
		s.Price.Numerator(),
		s.Price.Denominator(),
		s.Price.Currency(),
		string(lines),
		s.GeneratedAt.UTC(),
		s.GeneratedBy,
	)
	return m_snapshot.InsertMutation(values), nil
}
