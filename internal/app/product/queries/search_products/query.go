package search_products

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/offering-catalog-service/internal/app/product/dto"
)

// SpannerSearchProductsQuery lists product summaries with optional filters.
// The filter's sort field and order must already be whitelist-validated by
// the handler; they are interpolated into the statement.
type SpannerSearchProductsQuery struct {
	Client *spanner.Client
}

func NewSpannerSearchProductsQuery(client *spanner.Client) *SpannerSearchProductsQuery {
	return &SpannerSearchProductsQuery{Client: client}
}

func (q *SpannerSearchProductsQuery) SearchProducts(ctx context.Context, filter dto.SearchFilter) ([]*dto.ProductSummaryDTO, error) {
	baseSQL := `SELECT p.product_id, p.name, p.code,
	                   p.price_numerator, p.price_denominator, p.currency,
	                   p.status, p.created_at, p.updated_at,
	                   (SELECT COUNT(1) FROM product_items i WHERE i.product_id = p.product_id) AS item_count
	            FROM products p
	            WHERE 1 = 1`
	params := map[string]interface{}{}

	if !filter.IncludeDeleted {
		baseSQL += " AND p.status != 'deleted'"
	}
	if filter.Status != nil {
		baseSQL += " AND p.status = @status"
		params["status"] = *filter.Status
	}
	if filter.Code != nil {
		baseSQL += " AND p.code = @code"
		params["code"] = *filter.Code
	}
	if filter.NameContains != nil {
		baseSQL += " AND STRPOS(LOWER(p.name), LOWER(@name)) > 0"
		params["name"] = *filter.NameContains
	}

	baseSQL += fmt.Sprintf(" ORDER BY p.%s %s LIMIT @limit OFFSET @offset", filter.SortField, filter.SortOrder)
	params["limit"] = int64(filter.Limit)
	params["offset"] = int64(filter.Offset)

	stmt := spanner.Statement{SQL: baseSQL, Params: params}
	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var out []*dto.ProductSummaryDTO
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		s := &dto.ProductSummaryDTO{}
		if err := row.Columns(&s.ProductID, &s.Name, &s.Code,
			&s.PriceNum, &s.PriceDen, &s.Currency,
			&s.Status, &s.CreatedAt, &s.UpdatedAt, &s.ItemCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
}
