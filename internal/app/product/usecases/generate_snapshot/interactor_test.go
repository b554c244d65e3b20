package generate_snapshot

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

func productWith(t *testing.T, status domain.ProductStatus, refID string) *domain.Product {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ref, err := domain.NewItemReference(domain.ReferenceKindServiceType, refID)
	require.NoError(t, err)

	return domain.ReconstructProduct(domain.ProductState{
		ID:     "prod-1",
		Name:   "Fiber Basic",
		Code:   "fiber-basic",
		Price:  domain.NewMoney(1999, 100, "USD"),
		Status: status,
		Items: []*domain.ProductItem{
			domain.ReconstructProductItem("item-1", "prod-1", ref, 2, 0, now),
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func newInteractor(p *domain.Product, cat *fakeCatalog) (*Interactor, *fakeCommitter) {
	committer := &fakeCommitter{}
	it := NewInteractor(
		&fakeProductRepo{product: p},
		repo.NewSnapshotRepo(),
		repo.NewOutboxRepo(),
		validator.New(cat),
		committer,
		clock.NewFake(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)),
	)
	return it, committer
}

func TestExecute_FreezesActiveProduct(t *testing.T) {
	refID := uuid.New().String()
	p := productWith(t, domain.ProductStatusActive, refID)
	it, committer := newInteractor(p, &fakeCatalog{records: map[string]contracts.ReferenceRecord{
		refID: {ID: refID, Code: "ST-1", Status: "active"},
	}})

	snap, err := it.Execute(context.Background(), Request{ProductID: "prod-1", ActorID: "operator"})
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, "prod-1", snap.ProductID)
	assert.Equal(t, "fiber-basic", snap.Code)
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, "ST-1", snap.Lines[0].ReferenceCode)
	assert.Equal(t, int64(2), snap.Lines[0].Quantity)
	assert.Equal(t, "operator", snap.GeneratedBy)

	require.Len(t, committer.plans, 1)
	// snapshot insert plus the generated outbox event
	assert.Equal(t, 2, committer.plans[0].Len())
}

func TestExecute_DraftRejected(t *testing.T) {
	refID := uuid.New().String()
	p := productWith(t, domain.ProductStatusDraft, refID)
	it, committer := newInteractor(p, &fakeCatalog{})

	_, err := it.Execute(context.Background(), Request{ProductID: "prod-1", ActorID: "operator"})
	assert.True(t, errors.Is(err, domain.ErrProductNotPublished))
	assert.Empty(t, committer.plans)
}

func TestExecute_InactiveRejected(t *testing.T) {
	refID := uuid.New().String()
	p := productWith(t, domain.ProductStatusInactive, refID)
	it, _ := newInteractor(p, &fakeCatalog{})

	_, err := it.Execute(context.Background(), Request{ProductID: "prod-1", ActorID: "operator"})
	assert.True(t, errors.Is(err, domain.ErrProductNotPublished))
}

func TestExecute_NotFound(t *testing.T) {
	it, _ := newInteractor(nil, &fakeCatalog{})

	_, err := it.Execute(context.Background(), Request{ProductID: "missing", ActorID: "operator"})
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}
