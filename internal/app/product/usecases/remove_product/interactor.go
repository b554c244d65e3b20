package remove_product

import (
	"context"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	shared "github.com/murkotick/offering-catalog-service/internal/app/product/usecases/shared"
	"github.com/murkotick/offering-catalog-service/internal/pkg/clock"
	commitplan "github.com/murkotick/offering-catalog-service/internal/pkg/committer"
)

// Request soft-deletes a never-published draft product.
type Request struct {
	ProductID string
	ActorID   string
}

type Interactor struct {
	ProductRepo contracts.ProductRepo
	OutboxRepo  contracts.OutboxRepo
	Committer   contracts.Committer
	Clock       clock.Clock
}

func NewInteractor(prodRepo contracts.ProductRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer, clk clock.Clock) *Interactor {
	return &Interactor{
		ProductRepo: prodRepo,
		OutboxRepo:  outboxRepo,
		Committer:   committer,
		Clock:       clk,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) error {
	now := it.Clock.Now()

	return it.Committer.Exec(ctx, func(ctx context.Context, scope commitplan.Scope) error {
		product, err := it.ProductRepo.LoadForUpdate(ctx, scope, req.ProductID)
		if err != nil {
			return err
		}

		if err := product.Remove(req.ActorID, now); err != nil {
			return err
		}

		plan := commitplan.NewPlan()
		plan.Add(it.ProductRepo.UpdateMut(product))
		if err := shared.AddOutboxMuts(plan, it.OutboxRepo, product.DomainEvents(), now); err != nil {
			return err
		}
		return scope.Buffer(plan)
	})
}
