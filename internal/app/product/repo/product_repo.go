package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	"github.com/murkotick/offering-catalog-service/internal/models/m_product"
)

// ProductRepo is the Spanner implementation of the write-side repository.
// It builds *spanner.Mutation objects but never applies them; loads run on
// the caller's transaction so locks stay with the enclosing commit.
type ProductRepo struct{}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{}
}

// buildInsertValues constructs the values map used for insertion.
// It's unexported so tests in the same package can inspect the map without
// relying on spanner.Mutation internals.
func buildInsertValues(p *domain.Product) (map[string]interface{}, error) {
	var description interface{}
	if d := p.Description(); d != "" {
		description = d
	}

	metadata, err := marshalMetadata(p.Metadata())
	if err != nil {
		return nil, err
	}

	price := p.Price()

	values := map[string]interface{}{
		m_product.ColProductID:        p.ID(),
		m_product.ColName:             p.Name(),
		m_product.ColDescription:      description,
		m_product.ColCode:             p.Code(),
		m_product.ColPriceNumerator:   price.Numerator(),
		m_product.ColPriceDenominator: price.Denominator(),
		m_product.ColCurrency:         price.Currency(),
		m_product.ColStatus:           string(p.Status()),
		m_product.ColMetadata:         metadata,
		m_product.ColCreatedAt:        p.CreatedAt().UTC(),
		m_product.ColCreatedBy:        p.CreatedBy(),
		m_product.ColUpdatedAt:        p.UpdatedAt().UTC(),
		m_product.ColUpdatedBy:        p.UpdatedBy(),
		m_product.ColPublishedAt:      nil,
		m_product.ColPublishedBy:      nil,
		m_product.ColUnpublishedAt:    nil,
		m_product.ColUnpublishedBy:    nil,
		m_product.ColUnpublishReason:  nil,
		m_product.ColDeletedAt:        nil,
	}
	return values, nil
}

// InsertMut builds an Insert mutation for a new product.
func (r *ProductRepo) InsertMut(p *domain.Product) *spanner.Mutation {
	values, err := buildInsertValues(p)
	if err != nil {
		return nil
	}
	return m_product.InsertMutation(values)
}

// UpdateMut builds an Update mutation using the aggregate's ChangeTracker.
// It updates only dirty fields and stamps updated_at/updated_by whenever the
// row or the item collection changed.
func (r *ProductRepo) UpdateMut(p *domain.Product) *spanner.Mutation {
	if p == nil || p.Changes() == nil {
		return nil
	}
	if !p.Changes().HasChanges() && !p.HasItemChanges() {
		return nil
	}

	updates := map[string]interface{}{}

	if p.Changes().Dirty(domain.FieldName) {
		updates[m_product.ColName] = p.Name()
	}
	if p.Changes().Dirty(domain.FieldDescription) {
		if p.Description() == "" {
			updates[m_product.ColDescription] = nil
		} else {
			updates[m_product.ColDescription] = p.Description()
		}
	}
	if p.Changes().Dirty(domain.FieldCode) {
		updates[m_product.ColCode] = p.Code()
	}
	if p.Changes().Dirty(domain.FieldPrice) {
		updates[m_product.ColPriceNumerator] = p.Price().Numerator()
		updates[m_product.ColPriceDenominator] = p.Price().Denominator()
		updates[m_product.ColCurrency] = p.Price().Currency()
	}
	if p.Changes().Dirty(domain.FieldMetadata) {
		metadata, err := marshalMetadata(p.Metadata())
		if err != nil {
			return nil
		}
		updates[m_product.ColMetadata] = metadata
	}
	if p.Changes().Dirty(domain.FieldStatus) {
		updates[m_product.ColStatus] = string(p.Status())
	}
	if p.Changes().Dirty(domain.FieldPublishedAt) {
		updates[m_product.ColPublishedAt] = timePtrOrNil(p.PublishedAt())
	}
	if p.Changes().Dirty(domain.FieldPublishedBy) {
		updates[m_product.ColPublishedBy] = stringOrNil(p.PublishedBy())
	}
	if p.Changes().Dirty(domain.FieldUnpublishedAt) {
		updates[m_product.ColUnpublishedAt] = timePtrOrNil(p.UnpublishedAt())
	}
	if p.Changes().Dirty(domain.FieldUnpublishedBy) {
		updates[m_product.ColUnpublishedBy] = stringOrNil(p.UnpublishedBy())
	}
	if p.Changes().Dirty(domain.FieldUnpublishReason) {
		updates[m_product.ColUnpublishReason] = stringOrNil(p.UnpublishReason())
	}
	if p.Changes().Dirty(domain.FieldDeletedAt) {
		updates[m_product.ColDeletedAt] = timePtrOrNil(p.DeletedAt())
	}

	updates[m_product.ColUpdatedAt] = p.UpdatedAt().UTC()
	updates[m_product.ColUpdatedBy] = p.UpdatedBy()
	return m_product.UpdateMutation(p.ID(), updates)
}

// LoadForUpdate reads the product row with a row lock plus its item rows in
// display order and reconstructs the aggregate.
func (r *ProductRepo) LoadForUpdate(ctx context.Context, q contracts.RowQuerier, productID string) (*domain.Product, error) {
	stmt := spanner.Statement{
		SQL: `SELECT product_id, name, description, code,
		             price_numerator, price_denominator, currency,
		             status, metadata,
		             created_at, created_by, updated_at, updated_by,
		             published_at, published_by,
		             unpublished_at, unpublished_by, unpublish_reason,
		             deleted_at
		      FROM products
		      WHERE product_id = @id
		      FOR UPDATE`,
		Params: map[string]interface{}{"id": productID},
	}

	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	state, err := scanProductState(row)
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	state.Items = items

	return domain.ReconstructProduct(*state), nil
}

// CodeInUse reports whether a non-deleted product other than excludeProductID
// already holds the code.
func (r *ProductRepo) CodeInUse(ctx context.Context, q contracts.RowQuerier, code, excludeProductID string) (bool, error) {
	sql := `SELECT product_id FROM products WHERE code = @code AND status != @deleted`
	params := map[string]interface{}{
		"code":    code,
		"deleted": string(domain.ProductStatusDeleted),
	}
	if excludeProductID != "" {
		sql += " AND product_id != @exclude"
		params["exclude"] = excludeProductID
	}
	sql += " LIMIT 1"

	iter := q.Query(ctx, spanner.Statement{SQL: sql, Params: params})
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ProductRepo) loadItems(ctx context.Context, q contracts.RowQuerier, productID string) ([]*domain.ProductItem, error) {
	stmt := spanner.Statement{
		SQL: `SELECT item_id, ref_kind, ref_id, quantity, sort_order, created_at
		      FROM product_items
		      WHERE product_id = @id
		      ORDER BY sort_order ASC, created_at ASC`,
		Params: map[string]interface{}{"id": productID},
	}

	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	var items []*domain.ProductItem
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return items, nil
		}
		if err != nil {
			return nil, err
		}

		var (
			itemID    string
			refKind   string
			refID     string
			quantity  int64
			sortOrder int64
			createdAt time.Time
		)
		if err := row.Columns(&itemID, &refKind, &refID, &quantity, &sortOrder, &createdAt); err != nil {
			return nil, err
		}

		kind, err := domain.ParseReferenceKind(refKind)
		if err != nil {
			return nil, fmt.Errorf("product %s item %s: %w", productID, itemID, err)
		}
		ref, err := domain.NewItemReference(kind, refID)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.ReconstructProductItem(itemID, productID, ref, quantity, sortOrder, createdAt))
	}
}

func scanProductState(row *spanner.Row) (*domain.ProductState, error) {
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

	var meta *domain.Metadata
	if metadata.Valid && metadata.StringVal != "" {
		meta = &domain.Metadata{}
		if err := json.Unmarshal([]byte(metadata.StringVal), meta); err != nil {
			return nil, fmt.Errorf("product %s: unmarshal metadata: %w", id, err)
		}
	}

	state := &domain.ProductState{
		ID:          id,
		Name:        name,
		Description: description.StringVal,
		Code:        code,
		Price:       domain.NewMoney(priceNum, priceDen, currency),
		Status:      domain.ProductStatus(status),
		Metadata:    meta,
		CreatedAt:   createdAt,
		CreatedBy:   createdBy,
		UpdatedAt:   updatedAt,
		UpdatedBy:   updatedBy,
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		state.PublishedAt = &t
	}
	state.PublishedBy = publishedBy.StringVal
	if unpublishedAt.Valid {
		t := unpublishedAt.Time
		state.UnpublishedAt = &t
	}
	state.UnpublishedBy = unpublishedBy.StringVal
	state.UnpublishReason = unpublishReason.StringVal
	if deletedAt.Valid {
		t := deletedAt.Time
		state.DeletedAt = &t
	}

	return state, nil
}

func marshalMetadata(m *domain.Metadata) (interface{}, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal product metadata: %w", err)
	}
	return string(b), nil
}

func timePtrOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func stringOrNil(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
