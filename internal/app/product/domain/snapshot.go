package domain

import "time"

// ResolvedReference is the catalog data needed to freeze an item line into a
// snapshot. Lookups are performed by the caller via the reference catalogs.
type ResolvedReference struct {
	Code string
}

// SnapshotLine is one frozen item of a snapshot.
type SnapshotLine struct {
	ReferenceKind string `json:"reference_kind"`
	ReferenceID   string `json:"reference_id"`
	ReferenceCode string `json:"reference_code"`
	Quantity      int64  `json:"quantity"`
}

// Snapshot is an immutable point-in-time copy of a published product and its
// resolved items. It is a plain value: later edits to the product or the
// reference catalogs never affect an already-built snapshot.
type Snapshot struct {
	ID          string
	ProductID   string
	Name        string
	Code        string
	Price       *Money
	Lines       []SnapshotLine
	GeneratedAt time.Time
	GeneratedBy string
}

// BuildSnapshot freezes an active product into a snapshot. The resolved map
// is keyed by ItemReference.Key() and must cover every current item.
func BuildSnapshot(id string, p *Product, resolved map[string]ResolvedReference, actor string, now time.Time) (*Snapshot, error) {
	if p.Status() != ProductStatusActive {
		return nil, ErrProductNotPublished
	}

	items := p.Items()
	lines := make([]SnapshotLine, 0, len(items))
	for _, it := range items {
		ref := it.Reference()
		res, ok := resolved[ref.Key()]
		if !ok {
			return nil, MissingReferencesError([]string{ref.ID()})
		}
		lines = append(lines, SnapshotLine{
			ReferenceKind: string(ref.Kind()),
			ReferenceID:   ref.ID(),
			ReferenceCode: res.Code,
			Quantity:      it.Quantity(),
		})
	}

	return &Snapshot{
		ID:          id,
		ProductID:   p.ID(),
		Name:        p.Name(),
		Code:        p.Code(),
		Price:       p.Price(),
		Lines:       lines,
		GeneratedAt: now,
		GeneratedBy: actor,
	}, nil
}
