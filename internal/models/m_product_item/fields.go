package m_product_item

// Field constants for the product_items table. The table is interleaved in
// products so item rows commit and lock together with their parent row.
const (
	TableName = "product_items"

	ColProductID = "product_id"
	ColItemID    = "item_id"
	ColRefKind   = "ref_kind"
	ColRefID     = "ref_id"
	ColQuantity  = "quantity"
	ColSortOrder = "sort_order"
	ColCreatedAt = "created_at"
)
