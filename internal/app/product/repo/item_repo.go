package repo

import (
	"context"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	"github.com/murkotick/offering-catalog-service/internal/models/m_product_item"
)

// ProductItemRepo builds mutations for the interleaved product_items rows
// out of the aggregate's recorded item changes.
type ProductItemRepo struct{}

func NewProductItemRepo() *ProductItemRepo {
	return &ProductItemRepo{}
}

// InsertMuts returns insert mutations for items added since load.
func (r *ProductItemRepo) InsertMuts(p *domain.Product) []*spanner.Mutation {
	added := p.AddedItems()
	if len(added) == 0 {
		return nil
	}

	muts := make([]*spanner.Mutation, 0, len(added))
	for _, it := range added {
		values := m_product_item.BuildInsertMap(
			it.ProductID(),
			it.ID(),
			string(it.Reference().Kind()),
			it.Reference().ID(),
			it.Quantity(),
			it.SortOrder(),
			it.CreatedAt().UTC(),
		)
		muts = append(muts, m_product_item.InsertMutation(values))
	}
	return muts
}

// SortMuts returns sort-order updates for items reordered since load.
// Items that were added in the same unit of work carry their final sort
// order in the insert already and are skipped here.
func (r *ProductItemRepo) SortMuts(p *domain.Product) []*spanner.Mutation {
	reordered := p.ReorderedItems()
	if len(reordered) == 0 {
		return nil
	}

	added := make(map[string]struct{}, len(p.AddedItems()))
	for _, it := range p.AddedItems() {
		added[it.ID()] = struct{}{}
	}

	muts := make([]*spanner.Mutation, 0, len(reordered))
	for itemID, sortOrder := range reordered {
		if _, ok := added[itemID]; ok {
			continue
		}
		muts = append(muts, m_product_item.UpdateSortMutation(p.ID(), itemID, sortOrder))
	}
	return muts
}

// DeleteMuts returns deletes for items removed since load.
func (r *ProductItemRepo) DeleteMuts(p *domain.Product) []*spanner.Mutation {
	removed := p.RemovedItemIDs()
	if len(removed) == 0 {
		return nil
	}

	muts := make([]*spanner.Mutation, 0, len(removed))
	for _, itemID := range removed {
		muts = append(muts, m_product_item.DeleteMutation(p.ID(), itemID))
	}
	return muts
}

// ProductIDsForItems returns the distinct product ids owning the given item ids.
func (r *ProductItemRepo) ProductIDsForItems(ctx context.Context, q contracts.RowQuerier, itemIDs []string) ([]string, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	stmt := spanner.Statement{
		SQL: `SELECT DISTINCT product_id
		      FROM product_items
		      WHERE item_id IN UNNEST(@ids)`,
		Params: map[string]interface{}{"ids": itemIDs},
	}

	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	var out []string
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var productID string
		if err := row.Columns(&productID); err != nil {
			return nil, err
		}
		out = append(out, productID)
	}
}
