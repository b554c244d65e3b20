package get_product

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	"github.com/murkotick/offering-catalog-service/internal/app/product/dto"
)

// SpannerGetProductQuery reads one product with its items from Spanner using
// a single-use read-only transaction.
type SpannerGetProductQuery struct {
	Client *spanner.Client
}

func NewSpannerGetProductQuery(client *spanner.Client) *SpannerGetProductQuery {
	return &SpannerGetProductQuery{Client: client}
}

// GetProduct fetches the product row and its item rows in display order.
// Deleted products are returned as-is; the status field tells them apart.
func (q *SpannerGetProductQuery) GetProduct(ctx context.Context, productID string) (*dto.ProductDTO, error) {
	tx := q.Client.Single()
	defer tx.Close()

	stmt := spanner.Statement{
		SQL: `SELECT product_id, name, description, code,
		             price_numerator, price_denominator, currency,
		             status, metadata,
		             created_at, created_by, updated_at, updated_by,
		             published_at, published_by,
		             unpublished_at, unpublished_by, unpublish_reason,
		             deleted_at
		      FROM products
		      WHERE product_id = @id`,
		Params: map[string]interface{}{"id": productID},
	}

	iter := tx.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	out, err := scanProduct(row)
	if err != nil {
		return nil, err
	}

	items, err := q.loadItems(ctx, tx, productID)
	if err != nil {
		return nil, err
	}
	out.Items = items

	return out, nil
}

func (q *SpannerGetProductQuery) loadItems(ctx context.Context, tx *spanner.ReadOnlyTransaction, productID string) ([]*dto.ProductItemDTO, error) {
	stmt := spanner.Statement{
		SQL: `SELECT item_id, ref_kind, ref_id, quantity, sort_order, created_at
		      FROM product_items
		      WHERE product_id = @id
		      ORDER BY sort_order ASC, created_at ASC`,
		Params: map[string]interface{}{"id": productID},
	}

	iter := tx.Query(ctx, stmt)
	defer iter.Stop()

	var out []*dto.ProductItemDTO
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		item := &dto.ProductItemDTO{}
		if err := row.Columns(&item.ItemID, &item.ReferenceKind, &item.ReferenceID,
			&item.Quantity, &item.SortOrder, &item.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
}

func scanProduct(row *spanner.Row) (*dto.ProductDTO, error) {
	var (
		id, name, code       string
		description          spanner.NullString
		priceNum, priceDen   int64
		currency             string
		status               string
		metadata             spanner.NullString
		createdAt, updatedAt time.Time
		createdBy, updatedBy string
		publishedAt          spanner.NullTime
		publishedBy          spanner.NullString
		unpublishedAt        spanner.NullTime
		unpublishedBy        spanner.NullString
		unpublishReason      spanner.NullString
		deletedAt            spanner.NullTime
	)

	if err := row.Columns(&id, &name, &description, &code,
		&priceNum, &priceDen, &currency,
		&status, &metadata,
		&createdAt, &createdBy, &updatedAt, &updatedBy,
		&publishedAt, &publishedBy,
		&unpublishedAt, &unpublishedBy, &unpublishReason,
		&deletedAt); err != nil {
		return nil, err
	}

	out := &dto.ProductDTO{
		ProductID: id,
		Name:      name,
		Code:      code,
		PriceNum:  priceNum,
		PriceDen:  priceDen,
		Currency:  currency,
		Status:    status,
		CreatedAt: createdAt,
		CreatedBy: createdBy,
		UpdatedAt: updatedAt,
		UpdatedBy: updatedBy,
	}

	if description.Valid {
		d := description.StringVal
		out.Description = &d
	}
	if metadata.Valid {
		m := metadata.StringVal
		out.MetadataJSON = &m
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		out.PublishedAt = &t
	}
	if publishedBy.Valid {
		s := publishedBy.StringVal
		out.PublishedBy = &s
	}
	if unpublishedAt.Valid {
		t := unpublishedAt.Time
		out.UnpublishedAt = &t
	}
	if unpublishedBy.Valid {
		s := unpublishedBy.StringVal
		out.UnpublishedBy = &s
	}
	if unpublishReason.Valid {
		s := unpublishReason.StringVal
		out.UnpublishReason = &s
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		out.DeletedAt = &t
	}

	return out, nil
}
