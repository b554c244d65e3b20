package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	"github.com/murkotick/offering-catalog-service/internal/models/m_product"
)

func newDraft(t *testing.T, id string) *domain.Product {
	t.Helper()
	now := time.Now().UTC()
	price := domain.NewMoney(1999, 100, "USD")
	p, err := domain.NewProduct(id, "Fiber Basic", "entry level plan", "fiber-basic", price, nil, "tester", now)
	require.NoError(t, err)
	return p
}

// TestInsertMut verifies the insert values for a freshly created product.
func TestInsertMut(t *testing.T) {
	r := NewProductRepo()
	p := newDraft(t, "prod-1")

	values, err := buildInsertValues(p)
	require.NoError(t, err)
	require.NotNil(t, values)

	assert.Equal(t, "prod-1", values[m_product.ColProductID])
	assert.Equal(t, "Fiber Basic", values[m_product.ColName])
	assert.Equal(t, "fiber-basic", values[m_product.ColCode])
	assert.Equal(t, int64(1999), values[m_product.ColPriceNumerator])
	assert.Equal(t, int64(100), values[m_product.ColPriceDenominator])
	assert.Equal(t, "USD", values[m_product.ColCurrency])
	assert.Equal(t, string(domain.ProductStatusDraft), values[m_product.ColStatus])

	// lifecycle columns start out empty
	assert.Nil(t, values[m_product.ColPublishedAt])
	assert.Nil(t, values[m_product.ColUnpublishedAt])
	assert.Nil(t, values[m_product.ColDeletedAt])
	assert.Nil(t, values[m_product.ColMetadata])

	mut := r.InsertMut(p)
	require.NotNil(t, mut)
}

// TestInsertMut_Metadata verifies metadata is serialized to JSON.
func TestInsertMut_Metadata(t *testing.T) {
	now := time.Now().UTC()
	price := domain.NewMoney(4999, 100, "EUR")
	meta := &domain.Metadata{
		Features: []string{"unlimited traffic"},
		Terms:    "12 month minimum",
	}
	p, err := domain.NewProduct("prod-2", "Fiber Pro", "", "fiber-pro", price, meta, "tester", now)
	require.NoError(t, err)

	values, err := buildInsertValues(p)
	require.NoError(t, err)

	raw, ok := values[m_product.ColMetadata].(string)
	require.True(t, ok, "metadata should be stored as a JSON string")
	assert.Contains(t, raw, "unlimited traffic")
	assert.Contains(t, raw, "12 month minimum")
}

// TestUpdateMut_NoChanges verifies no mutation is produced for a pristine aggregate.
func TestUpdateMut_NoChanges(t *testing.T) {
	r := NewProductRepo()
	now := time.Now().UTC()

	p := domain.ReconstructProduct(domain.ProductState{
		ID:        "prod-3",
		Name:      "Fiber Basic",
		Code:      "fiber-basic",
		Price:     domain.NewMoney(1999, 100, "USD"),
		Status:    domain.ProductStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	})

	assert.Nil(t, r.UpdateMut(p))
}

// TestUpdateMut_Rename verifies only dirty fields plus the audit stamp are updated.
func TestUpdateMut_Rename(t *testing.T) {
	r := NewProductRepo()
	now := time.Now().UTC()

	p := domain.ReconstructProduct(domain.ProductState{
		ID:        "prod-4",
		Name:      "Fiber Basic",
		Code:      "fiber-basic",
		Price:     domain.NewMoney(1999, 100, "USD"),
		Status:    domain.ProductStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	})

	require.NoError(t, p.Rename("Fiber Standard", "editor", now.Add(time.Minute)))

	mut := r.UpdateMut(p)
	require.NotNil(t, mut)
}

// TestUpdateMut_ItemChangesOnly verifies item-set changes alone still stamp
// the parent row.
func TestUpdateMut_ItemChangesOnly(t *testing.T) {
	r := NewProductRepo()
	now := time.Now().UTC()

	p := domain.ReconstructProduct(domain.ProductState{
		ID:        "prod-5",
		Name:      "Fiber Basic",
		Code:      "fiber-basic",
		Price:     domain.NewMoney(1999, 100, "USD"),
		Status:    domain.ProductStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	})

	ref, err := domain.NewItemReference(domain.ReferenceKindServiceType, "st-1")
	require.NoError(t, err)
	_, err = p.AddItem("item-1", ref, 1, nil, "editor", now.Add(time.Minute))
	require.NoError(t, err)

	mut := r.UpdateMut(p)
	require.NotNil(t, mut, "item changes must refresh updated_at on the product row")
}
