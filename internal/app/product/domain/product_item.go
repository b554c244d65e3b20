package domain

import "time"

// ProductItem is a child entity of the Product aggregate. It ties a quantity
// of one externally catalogued reference to the product, with an explicit
// display position.
type ProductItem struct {
	id        string
	productID string
	reference ItemReference
	quantity  int64
	sortOrder int64
	createdAt time.Time
}

// NewProductItem creates a new item for a product.
func NewProductItem(id, productID string, ref ItemReference, quantity, sortOrder int64, now time.Time) (*ProductItem, error) {
	if quantity <= 0 {
		return nil, ErrNonPositiveQuantity
	}
	if sortOrder < 0 {
		return nil, ErrNegativeSortOrder
	}
	return &ProductItem{
		id:        id,
		productID: productID,
		reference: ref,
		quantity:  quantity,
		sortOrder: sortOrder,
		createdAt: now,
	}, nil
}

// ReconstructProductItem rebuilds an item from persisted state.
func ReconstructProductItem(id, productID string, ref ItemReference, quantity, sortOrder int64, createdAt time.Time) *ProductItem {
	return &ProductItem{
		id:        id,
		productID: productID,
		reference: ref,
		quantity:  quantity,
		sortOrder: sortOrder,
		createdAt: createdAt,
	}
}

func (i *ProductItem) ID() string {
	return i.id
}

func (i *ProductItem) ProductID() string {
	return i.productID
}

func (i *ProductItem) Reference() ItemReference {
	return i.reference
}

func (i *ProductItem) Quantity() int64 {
	return i.quantity
}

func (i *ProductItem) SortOrder() int64 {
	return i.sortOrder
}

func (i *ProductItem) CreatedAt() time.Time {
	return i.createdAt
}
