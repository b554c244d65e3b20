package add_item

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	"github.com/murkotick/offering-catalog-service/internal/app/product/repo"
	"github.com/murkotick/offering-catalog-service/internal/app/product/validator"
	"github.com/murkotick/offering-catalog-service/internal/pkg/clock"
	commitplan "github.com/murkotick/offering-catalog-service/internal/pkg/committer"
)

type fakeProductRepo struct {
	repo.ProductRepo
	product *domain.Product
}

func (f *fakeProductRepo) LoadForUpdate(_ context.Context, _ contracts.RowQuerier, _ string) (*domain.Product, error) {
	if f.product == nil {
		return nil, domain.ErrProductNotFound
	}
	return f.product, nil
}

func (f *fakeProductRepo) CodeInUse(_ context.Context, _ contracts.RowQuerier, _, _ string) (bool, error) {
	return false, nil
}

type fakeCatalog struct {
	records map[string]contracts.ReferenceRecord
}

func (f *fakeCatalog) FetchByIDs(_ context.Context, _ contracts.RowQuerier, _ domain.ReferenceKind, ids []string) (map[string]contracts.ReferenceRecord, error) {
	out := map[string]contracts.ReferenceRecord{}
	for _, id := range ids {
		if rec, ok := f.records[id]; ok {
			out[id] = rec
		}
	}
	return out, nil
}

type fakeCommitter struct {
	plans []*commitplan.Plan
}

func (f *fakeCommitter) Apply(_ context.Context, plan *commitplan.Plan) error {
	f.plans = append(f.plans, plan)
	return nil
}

func (f *fakeCommitter) Exec(ctx context.Context, fn func(ctx context.Context, scope commitplan.Scope) error) error {
	return fn(ctx, &fakeScope{c: f})
}

type fakeScope struct {
	c *fakeCommitter
}

func (s *fakeScope) Query(_ context.Context, _ spanner.Statement) *spanner.RowIterator {
	return nil
}

func (s *fakeScope) Buffer(plan *commitplan.Plan) error {
	s.c.plans = append(s.c.plans, plan)
	return nil
}

func draftWith(t *testing.T, refIDs ...string) *domain.Product {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var items []*domain.ProductItem
	for i, id := range refIDs {
		ref, err := domain.NewItemReference(domain.ReferenceKindServiceType, id)
		require.NoError(t, err)
		items = append(items, domain.ReconstructProductItem(uuid.New().String(), "prod-1", ref, 1, int64(i), now))
	}

	return domain.ReconstructProduct(domain.ProductState{
		ID:        "prod-1",
		Name:      "Fiber Basic",
		Code:      "fiber-basic",
		Price:     domain.NewMoney(1999, 100, "USD"),
		Status:    domain.ProductStatusDraft,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func newInteractor(p *domain.Product, cat *fakeCatalog) (*Interactor, *fakeCommitter) {
	committer := &fakeCommitter{}
	it := NewInteractor(
		&fakeProductRepo{product: p},
		repo.NewProductItemRepo(),
		repo.NewOutboxRepo(),
		validator.New(cat),
		committer,
		clock.NewFake(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)),
	)
	return it, committer
}

func TestExecute_AddsItem(t *testing.T) {
	refID := uuid.New().String()
	p := draftWith(t)
	it, committer := newInteractor(p, &fakeCatalog{records: map[string]contracts.ReferenceRecord{
		refID: {ID: refID, Code: "ST-1", Status: "active"},
	}})

	itemID, err := it.Execute(context.Background(), Request{
		ProductID:     "prod-1",
		ReferenceKind: "service_type",
		ReferenceID:   refID,
		Quantity:      2,
		ActorID:       "editor",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, itemID)

	require.Len(t, p.Items(), 1)
	assert.Equal(t, int64(0), p.Items()[0].SortOrder(), "first item is appended at position zero")

	require.Len(t, committer.plans, 1)
	// item insert, product audit stamp and the outbox event
	assert.GreaterOrEqual(t, committer.plans[0].Len(), 3)
}

func TestExecute_AppendsAfterExisting(t *testing.T) {
	existing := uuid.New().String()
	refID := uuid.New().String()
	p := draftWith(t, existing)
	it, _ := newInteractor(p, &fakeCatalog{records: map[string]contracts.ReferenceRecord{
		refID: {ID: refID, Code: "ST-2", Status: "active"},
	}})

	_, err := it.Execute(context.Background(), Request{
		ProductID:     "prod-1",
		ReferenceKind: "service_type",
		ReferenceID:   refID,
		Quantity:      1,
		ActorID:       "editor",
	})
	require.NoError(t, err)

	items := p.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[1].SortOrder())
}

func TestExecute_DuplicateReference(t *testing.T) {
	refID := uuid.New().String()
	p := draftWith(t, refID)
	it, committer := newInteractor(p, &fakeCatalog{records: map[string]contracts.ReferenceRecord{
		refID: {ID: refID, Code: "ST-1", Status: "active"},
	}})

	_, err := it.Execute(context.Background(), Request{
		ProductID:     "prod-1",
		ReferenceKind: "service_type",
		ReferenceID:   refID,
		Quantity:      1,
		ActorID:       "editor",
	})
	assert.True(t, errors.Is(err, domain.ErrDuplicateItemReference))
	assert.Empty(t, committer.plans)
}

func TestExecute_UnknownKind(t *testing.T) {
	p := draftWith(t)
	it, _ := newInteractor(p, &fakeCatalog{})

	_, err := it.Execute(context.Background(), Request{
		ProductID:     "prod-1",
		ReferenceKind: "bundle",
		ReferenceID:   uuid.New().String(),
		Quantity:      1,
		ActorID:       "editor",
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidReferenceKind))
}

func TestExecute_NonPositiveQuantity(t *testing.T) {
	refID := uuid.New().String()
	p := draftWith(t)
	it, _ := newInteractor(p, &fakeCatalog{records: map[string]contracts.ReferenceRecord{
		refID: {ID: refID, Code: "ST-1", Status: "active"},
	}})

	_, err := it.Execute(context.Background(), Request{
		ProductID:     "prod-1",
		ReferenceKind: "service_type",
		ReferenceID:   refID,
		Quantity:      0,
		ActorID:       "editor",
	})
	assert.True(t, errors.Is(err, domain.ErrNonPositiveQuantity))
}

func TestExecute_PublishedProductRejected(t *testing.T) {
	refID := uuid.New().String()
	p := draftWith(t, refID)
	now := time.Now().UTC()
	require.NoError(t, p.Publish("publisher", now))
	p.ClearEvents()

	other := uuid.New().String()
	it, _ := newInteractor(p, &fakeCatalog{records: map[string]contracts.ReferenceRecord{
		other: {ID: other, Code: "ST-2", Status: "active"},
	}})

	_, err := it.Execute(context.Background(), Request{
		ProductID:     "prod-1",
		ReferenceKind: "service_type",
		ReferenceID:   other,
		Quantity:      1,
		ActorID:       "editor",
	})
	assert.True(t, errors.Is(err, domain.ErrProductNotDraft))
}
