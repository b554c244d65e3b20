package m_product_item

import (
	"time"

	"cloud.google.com/go/spanner"
)

// BuildInsertMap prepares the canonical fields for an item insertion.
func BuildInsertMap(productID, itemID, refKind, refID string, quantity, sortOrder int64, createdAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColProductID: productID,
		ColItemID:    itemID,
		ColRefKind:   refKind,
		ColRefID:     refID,
		ColQuantity:  quantity,
		ColSortOrder: sortOrder,
		ColCreatedAt: createdAt,
	}
}

// InsertMutation builds a spanner.Insert mutation for a product item.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateSortMutation builds an update of a single item's sort order.
func UpdateSortMutation(productID, itemID string, sortOrder int64) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{ColProductID, ColItemID, ColSortOrder},
		[]interface{}{productID, itemID, sortOrder},
	)
}

// DeleteMutation builds a delete of a single item row.
func DeleteMutation(productID, itemID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID, itemID})
}
