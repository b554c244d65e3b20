package publish_product

import (
	"context"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	shared "github.com/murkotick/offering-catalog-service/internal/app/product/usecases/shared"
	"github.com/murkotick/offering-catalog-service/internal/app/product/validator"
	"github.com/murkotick/offering-catalog-service/internal/pkg/clock"
	commitplan "github.com/murkotick/offering-catalog-service/internal/pkg/committer"
)

// Request publishes a draft product.
type Request struct {
	ProductID string
	ActorID   string
}

// Interactor publishes a product. The row lock taken by LoadForUpdate
// serializes concurrent publishes of the same product: the loser of the race
// observes the already-active status and fails the transition.
type Interactor struct {
	ProductRepo contracts.ProductRepo
	OutboxRepo  contracts.OutboxRepo
	Validator   *validator.ReferenceValidator
	Committer   contracts.Committer
	Clock       clock.Clock
}

func NewInteractor(prodRepo contracts.ProductRepo, outboxRepo contracts.OutboxRepo, v *validator.ReferenceValidator, committer contracts.Committer, clk clock.Clock) *Interactor {
	return &Interactor{
		ProductRepo: prodRepo,
		OutboxRepo:  outboxRepo,
		Validator:   v,
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

		if err := product.Publish(req.ActorID, now); err != nil {
			return err
		}

		// Every referenced record must still exist and be active at the
		// moment of publication, checked under the same lock.
		if err := it.Validator.Validate(ctx, scope, product.ItemReferences()); err != nil {
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
