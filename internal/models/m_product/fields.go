package m_product

// Field constants for the products table.
const (
	TableName = "products"

	ColProductID        = "product_id"
	ColName             = "name"
	ColDescription      = "description"
	ColCode             = "code"
	ColPriceNumerator   = "price_numerator"
	ColPriceDenominator = "price_denominator"
	ColCurrency         = "currency"
	ColStatus           = "status"
	ColMetadata         = "metadata"
	ColCreatedAt        = "created_at"
	ColCreatedBy        = "created_by"
	ColUpdatedAt        = "updated_at"
	ColUpdatedBy        = "updated_by"
	ColPublishedAt      = "published_at"
	ColPublishedBy      = "published_by"
	ColUnpublishedAt    = "unpublished_at"
	ColUnpublishedBy    = "unpublished_by"
	ColUnpublishReason  = "unpublish_reason"
	ColDeletedAt        = "deleted_at"
)
