package reorder_items

import (
	"context"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	"github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	shared "github.com/murkotick/offering-catalog-service/internal/app/product/usecases/shared"
	"github.com/murkotick/offering-catalog-service/internal/pkg/clock"
	commitplan "github.com/murkotick/offering-catalog-service/internal/pkg/committer"
)

// Request applies a batch of sort-order assignments. The owning product is
// derived from the item ids; a batch touching more than one product is
// rejected as a whole.
type Request struct {
	Orders  []domain.ItemSortOrder
	ActorID string
}

type Interactor struct {
	ProductRepo contracts.ProductRepo
	ItemRepo    contracts.ProductItemRepo
	OutboxRepo  contracts.OutboxRepo
	Committer   contracts.Committer
	Clock       clock.Clock
}

func NewInteractor(prodRepo contracts.ProductRepo, itemRepo contracts.ProductItemRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer, clk clock.Clock) *Interactor {
	return &Interactor{
		ProductRepo: prodRepo,
		ItemRepo:    itemRepo,
		OutboxRepo:  outboxRepo,
		Committer:   committer,
		Clock:       clk,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) error {
	if len(req.Orders) == 0 {
		return nil
	}
	now := it.Clock.Now()

	itemIDs := make([]string, 0, len(req.Orders))
	for _, o := range req.Orders {
		itemIDs = append(itemIDs, o.ItemID)
	}

	return it.Committer.Exec(ctx, func(ctx context.Context, scope commitplan.Scope) error {
		productIDs, err := it.ItemRepo.ProductIDsForItems(ctx, scope, itemIDs)
		if err != nil {
			return err
		}
		if len(productIDs) == 0 {
			return domain.ErrItemNotFound
		}
		if len(productIDs) > 1 {
			return domain.ErrItemsSpanProducts
		}

		product, err := it.ProductRepo.LoadForUpdate(ctx, scope, productIDs[0])
		if err != nil {
			return err
		}

		if err := product.ReorderItems(req.Orders, req.ActorID, now); err != nil {
			return err
		}

		plan := commitplan.NewPlan()
		for _, mut := range it.ItemRepo.SortMuts(product) {
			plan.Add(mut)
		}
		plan.Add(it.ProductRepo.UpdateMut(product))
		if err := shared.AddOutboxMuts(plan, it.OutboxRepo, product.DomainEvents(), now); err != nil {
			return err
		}
		return scope.Buffer(plan)
	})
}
