package product

import (
	"time"

	"github.com/murkotick/offering-catalog-service/internal/app/product/dto"
)

type moneyResponse struct {
	Numerator   int64  `json:"numerator"`
	Denominator int64  `json:"denominator"`
	Currency    string `json:"currency"`
}

type itemResponse struct {
	ItemID        string    `json:"item_id"`
	ReferenceKind string    `json:"reference_kind"`
	ReferenceID   string    `json:"reference_id"`
	Quantity      int64     `json:"quantity"`
	SortOrder     int64     `json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
}

type productResponse struct {
	ProductID       string         `json:"product_id"`
	Name            string         `json:"name"`
	Description     *string        `json:"description,omitempty"`
	Code            string         `json:"code"`
	Price           moneyResponse  `json:"price"`
	Status          string         `json:"status"`
	Metadata        *string        `json:"metadata,omitempty"`
	Items           []itemResponse `json:"items"`
	CreatedAt       time.Time      `json:"created_at"`
	CreatedBy       string         `json:"created_by"`
	UpdatedAt       time.Time      `json:"updated_at"`
	UpdatedBy       string         `json:"updated_by"`
	PublishedAt     *time.Time     `json:"published_at,omitempty"`
	PublishedBy     *string        `json:"published_by,omitempty"`
	UnpublishedAt   *time.Time     `json:"unpublished_at,omitempty"`
	UnpublishedBy   *string        `json:"unpublished_by,omitempty"`
	UnpublishReason *string        `json:"unpublish_reason,omitempty"`
	DeletedAt       *time.Time     `json:"deleted_at,omitempty"`
}

type productSummaryResponse struct {
	ProductID string        `json:"product_id"`
	Name      string        `json:"name"`
	Code      string        `json:"code"`
	Price     moneyResponse `json:"price"`
	Status    string        `json:"status"`
	ItemCount int64         `json:"item_count"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func toProductResponse(p *dto.ProductDTO) productResponse {
	items := make([]itemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, itemResponse{
			ItemID:        it.ItemID,
			ReferenceKind: it.ReferenceKind,
			ReferenceID:   it.ReferenceID,
			Quantity:      it.Quantity,
			SortOrder:     it.SortOrder,
			CreatedAt:     it.CreatedAt,
		})
	}

	return productResponse{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Description: p.Description,
		Code:        p.Code,
		Price: moneyResponse{
			Numerator:   p.PriceNum,
			Denominator: p.PriceDen,
			Currency:    p.Currency,
		},
		Status:          p.Status,
		Metadata:        p.MetadataJSON,
		Items:           items,
		CreatedAt:       p.CreatedAt,
		CreatedBy:       p.CreatedBy,
		UpdatedAt:       p.UpdatedAt,
		UpdatedBy:       p.UpdatedBy,
		PublishedAt:     p.PublishedAt,
		PublishedBy:     p.PublishedBy,
		UnpublishedAt:   p.UnpublishedAt,
		UnpublishedBy:   p.UnpublishedBy,
		UnpublishReason: p.UnpublishReason,
		DeletedAt:       p.DeletedAt,
	}
}

func toSummaryResponses(in []*dto.ProductSummaryDTO) []productSummaryResponse {
	out := make([]productSummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, productSummaryResponse{
			ProductID: s.ProductID,
			Name:      s.Name,
			Code:      s.Code,
			Price: moneyResponse{
				Numerator:   s.PriceNum,
				Denominator: s.PriceDen,
				Currency:    s.Currency,
			},
			Status:    s.Status,
			ItemCount: s.ItemCount,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return out
}
