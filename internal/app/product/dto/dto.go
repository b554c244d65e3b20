package dto

import "time"

// ProductItemDTO is one item row of a product as returned by read queries.
type ProductItemDTO struct {
	ItemID        string
	ReferenceKind string
	ReferenceID   string
	Quantity      int64
	SortOrder     int64
	CreatedAt     time.Time
}

// ProductDTO contains full product fields returned by read queries, items
// included in display order.
type ProductDTO struct {
	ProductID       string
	Name            string
	Description     *string
	Code            string
	PriceNum        int64
	PriceDen        int64
	Currency        string
	Status          string
	MetadataJSON    *string
	Items           []*ProductItemDTO
	CreatedAt       time.Time
	CreatedBy       string
	UpdatedAt       time.Time
	UpdatedBy       string
	PublishedAt     *time.Time
	PublishedBy     *string
	UnpublishedAt   *time.Time
	UnpublishedBy   *string
	UnpublishReason *string
	DeletedAt       *time.Time
}

// ProductSummaryDTO is a compact DTO for search results.
type ProductSummaryDTO struct {
	ProductID string
	Name      string
	Code      string
	PriceNum  int64
	PriceDen  int64
	Currency  string
	Status    string
	ItemCount int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SearchFilter narrows and orders a product search. Nil pointer fields are
// not applied. Deleted products are excluded unless IncludeDeleted is set.
type SearchFilter struct {
	Status         *string
	Code           *string
	NameContains   *string
	IncludeDeleted bool

	// SortField/SortOrder must already be whitelist-validated by the caller.
	SortField string
	SortOrder string

	Limit  int
	Offset int
}
