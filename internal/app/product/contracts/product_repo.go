package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
)

// ProductRepo is the write-side repository interface for products.
// Mutation builders return Spanner mutations; they do not apply them.
// Loaders take a RowQuerier so they run on whatever transaction the caller
// holds open.
type ProductRepo interface {
	// InsertMut returns a mutation that inserts the product (or nil if none).
	InsertMut(p *domain.Product) *spanner.Mutation

	// UpdateMut returns a mutation that updates the product row according to
	// its ChangeTracker (or nil when nothing changed). Item-collection
	// changes alone still stamp updated_at/updated_by on the parent row.
	UpdateMut(p *domain.Product) *spanner.Mutation

	// LoadForUpdate reads the product row with a FOR UPDATE lock plus its
	// item rows and reconstructs the aggregate. Returns
	// domain.ErrProductNotFound when no row exists.
	LoadForUpdate(ctx context.Context, q RowQuerier, productID string) (*domain.Product, error)

	// CodeInUse reports whether another non-deleted product already uses the
	// code. excludeProductID is ignored when empty.
	CodeInUse(ctx context.Context, q RowQuerier, code, excludeProductID string) (bool, error)
}

// ProductItemRepo builds mutations for the interleaved item rows out of the
// aggregate's recorded item changes.
type ProductItemRepo interface {
	// InsertMuts returns insert mutations for items added since load.
	InsertMuts(p *domain.Product) []*spanner.Mutation

	// SortMuts returns sort-order updates for items reordered since load.
	SortMuts(p *domain.Product) []*spanner.Mutation

	// DeleteMuts returns deletes for items removed since load.
	DeleteMuts(p *domain.Product) []*spanner.Mutation

	// ProductIDsForItems returns the distinct product ids owning the given
	// item ids. Used to reject reorder batches spanning products.
	ProductIDsForItems(ctx context.Context, q RowQuerier, itemIDs []string) ([]string, error)
}
