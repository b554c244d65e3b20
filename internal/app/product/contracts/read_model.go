package contracts

import (
	"context"

	"github.com/murkotick/offering-catalog-service/internal/app/product/dto"
)

type ReadModel interface {
	GetProduct(ctx context.Context, productID string) (*dto.ProductDTO, error)
	SearchProducts(ctx context.Context, filter dto.SearchFilter) ([]*dto.ProductSummaryDTO, error)
}
