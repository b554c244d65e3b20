package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
)

func draftWithItems(t *testing.T, itemIDs ...string) *domain.Product {
	t.Helper()
	now := time.Now().UTC()

	var items []*domain.ProductItem
	for i, id := range itemIDs {
		ref, err := domain.NewItemReference(domain.ReferenceKindServiceType, "st-"+id)
		require.NoError(t, err)
		items = append(items, domain.ReconstructProductItem(id, "prod-1", ref, 1, int64(i), now))
	}

	return domain.ReconstructProduct(domain.ProductState{
		ID:        "prod-1",
		Name:      "Fiber Basic",
		Code:      "fiber-basic",
		Price:     domain.NewMoney(1999, 100, "USD"),
		Status:    domain.ProductStatusDraft,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func TestInsertMuts_OnlyAddedItems(t *testing.T) {
	r := NewProductItemRepo()
	p := draftWithItems(t, "item-1")

	assert.Empty(t, r.InsertMuts(p), "persisted items must not be re-inserted")

	ref, err := domain.NewItemReference(domain.ReferenceKindServicePackage, "sp-1")
	require.NoError(t, err)
	_, err = p.AddItem("item-2", ref, 3, nil, "editor", time.Now().UTC())
	require.NoError(t, err)

	muts := r.InsertMuts(p)
	assert.Len(t, muts, 1)
}

func TestDeleteMuts(t *testing.T) {
	r := NewProductItemRepo()
	p := draftWithItems(t, "item-1", "item-2")

	require.NoError(t, p.RemoveItem("item-2", "editor", time.Now().UTC()))

	muts := r.DeleteMuts(p)
	assert.Len(t, muts, 1)
}

func TestSortMuts_SkipsFreshlyAddedItems(t *testing.T) {
	r := NewProductItemRepo()
	p := draftWithItems(t, "item-1")
	now := time.Now().UTC()

	ref, err := domain.NewItemReference(domain.ReferenceKindServiceType, "st-new")
	require.NoError(t, err)
	added, err := p.AddItem("item-2", ref, 1, nil, "editor", now)
	require.NoError(t, err)

	require.NoError(t, p.ReorderItems([]domain.ItemSortOrder{
		{ItemID: "item-1", SortOrder: 5},
		{ItemID: added.ID(), SortOrder: 6},
	}, "editor", now))

	// item-2 was just added in this unit of work; its insert carries the
	// final sort order already.
	muts := r.SortMuts(p)
	assert.Len(t, muts, 1)
}
