package m_snapshot

// Field constants for the product_snapshots table. Rows are insert-only:
// a snapshot is never updated after generation.
const (
	TableName = "product_snapshots"

	ColSnapshotID       = "snapshot_id"
	ColProductID        = "product_id"
	ColName             = "name"
	ColCode             = "code"
	ColPriceNumerator   = "price_numerator"
	ColPriceDenominator = "price_denominator"
	ColCurrency         = "currency"
	ColLines            = "lines"
	ColGeneratedAt      = "generated_at"
	ColGeneratedBy      = "generated_by"
)
