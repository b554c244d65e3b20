package queries

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/offering-catalog-service/internal/app/product/dto"
	"github.com/murkotick/offering-catalog-service/internal/app/product/queries/get_product"
	"github.com/murkotick/offering-catalog-service/internal/app/product/queries/search_products"
)

// SpannerReadModel is an infrastructure adapter that satisfies contracts.ReadModel.
// It composes the individual query implementations.
type SpannerReadModel struct {
	getQ    *get_product.SpannerGetProductQuery
	searchQ *search_products.SpannerSearchProductsQuery
}

func NewSpannerReadModel(client *spanner.Client) *SpannerReadModel {
	return &SpannerReadModel{
		getQ:    get_product.NewSpannerGetProductQuery(client),
		searchQ: search_products.NewSpannerSearchProductsQuery(client),
	}
}

func (rm *SpannerReadModel) GetProduct(ctx context.Context, productID string) (*dto.ProductDTO, error) {
	return rm.getQ.GetProduct(ctx, productID)
}

func (rm *SpannerReadModel) SearchProducts(ctx context.Context, filter dto.SearchFilter) ([]*dto.ProductSummaryDTO, error) {
	return rm.searchQ.SearchProducts(ctx, filter)
}
