package reorder_items

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	"github.com/murkotick/offering-catalog-service/internal/app/product/repo"
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

type fakeItemRepo struct {
	repo.ProductItemRepo
	productIDs []string
}

func (f *fakeItemRepo) ProductIDsForItems(_ context.Context, _ contracts.RowQuerier, _ []string) ([]string, error) {
	return f.productIDs, nil
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

func draftWithItems(t *testing.T, itemIDs ...string) *domain.Product {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var items []*domain.ProductItem
	for i, id := range itemIDs {
		ref, err := domain.NewItemReference(domain.ReferenceKindServiceType, "st-"+id)
		require.NoError(t, err)
		items = append(items, domain.ReconstructProductItem(id, "prod-1", ref, 1, int64(i), now))
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

func newInteractor(p *domain.Product, productIDs []string) (*Interactor, *fakeCommitter) {
	committer := &fakeCommitter{}
	it := NewInteractor(
		&fakeProductRepo{product: p},
		&fakeItemRepo{productIDs: productIDs},
		repo.NewOutboxRepo(),
		committer,
		clock.NewFake(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)),
	)
	return it, committer
}

func TestExecute_ReordersAtomically(t *testing.T) {
	p := draftWithItems(t, "item-1", "item-2")
	it, committer := newInteractor(p, []string{"prod-1"})

	err := it.Execute(context.Background(), Request{
		Orders: []domain.ItemSortOrder{
			{ItemID: "item-1", SortOrder: 1},
			{ItemID: "item-2", SortOrder: 0},
		},
		ActorID: "editor",
	})
	require.NoError(t, err)

	items := p.Items()
	assert.Equal(t, "item-2", items[0].ID())
	assert.Equal(t, "item-1", items[1].ID())

	require.Len(t, committer.plans, 1)
	// two sort updates, the product audit stamp and the outbox event
	assert.Equal(t, 4, committer.plans[0].Len())
}

func TestExecute_BatchSpansProducts(t *testing.T) {
	p := draftWithItems(t, "item-1")
	it, committer := newInteractor(p, []string{"prod-1", "prod-2"})

	err := it.Execute(context.Background(), Request{
		Orders: []domain.ItemSortOrder{
			{ItemID: "item-1", SortOrder: 1},
			{ItemID: "foreign-item", SortOrder: 0},
		},
		ActorID: "editor",
	})
	assert.True(t, errors.Is(err, domain.ErrItemsSpanProducts))
	assert.Empty(t, committer.plans)
}

func TestExecute_UnknownItems(t *testing.T) {
	it, _ := newInteractor(nil, nil)

	err := it.Execute(context.Background(), Request{
		Orders:  []domain.ItemSortOrder{{ItemID: "ghost", SortOrder: 0}},
		ActorID: "editor",
	})
	assert.True(t, errors.Is(err, domain.ErrItemNotFound))
}

func TestExecute_NegativeSortOrder(t *testing.T) {
	p := draftWithItems(t, "item-1")
	it, _ := newInteractor(p, []string{"prod-1"})

	err := it.Execute(context.Background(), Request{
		Orders:  []domain.ItemSortOrder{{ItemID: "item-1", SortOrder: -1}},
		ActorID: "editor",
	})
	assert.True(t, errors.Is(err, domain.ErrNegativeSortOrder))
}

func TestExecute_EmptyBatchIsNoop(t *testing.T) {
	it, committer := newInteractor(nil, nil)

	err := it.Execute(context.Background(), Request{ActorID: "editor"})
	require.NoError(t, err)
	assert.Empty(t, committer.plans)
}
