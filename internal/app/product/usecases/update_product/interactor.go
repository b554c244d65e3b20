package update_product

import (
	"context"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	"github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	shared "github.com/murkotick/offering-catalog-service/internal/app/product/usecases/shared"
	"github.com/murkotick/offering-catalog-service/internal/pkg/clock"
	commitplan "github.com/murkotick/offering-catalog-service/internal/pkg/committer"
)

// PriceInput carries a complete replacement price.
type PriceInput struct {
	Num      int64
	Den      int64
	Currency string
}

// Request is a partial update: nil fields are left untouched. Metadata is
// applied only when MetadataSet is true; a nil Metadata with MetadataSet
// clears it.
type Request struct {
	ProductID   string
	Name        *string
	Description *string
	Code        *string
	Price       *PriceInput
	Metadata    *domain.Metadata
	MetadataSet bool
	ActorID     string
}

// Interactor updates draft-product fields under a row lock.
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

		if req.Name != nil {
			if err := product.Rename(*req.Name, req.ActorID, now); err != nil {
				return err
			}
		}
		if req.Description != nil {
			if err := product.UpdateDescription(*req.Description, req.ActorID, now); err != nil {
				return err
			}
		}
		if req.Code != nil {
			if err := product.ChangeCode(*req.Code, req.ActorID, now); err != nil {
				return err
			}
			if product.Changes().Dirty(domain.FieldCode) {
				inUse, err := it.ProductRepo.CodeInUse(ctx, scope, product.Code(), product.ID())
				if err != nil {
					return err
				}
				if inUse {
					return domain.ErrDuplicateProductCode
				}
			}
		}
		if req.Price != nil {
			if req.Price.Den == 0 {
				return domain.ErrNonPositivePrice
			}
			price := domain.NewMoney(req.Price.Num, req.Price.Den, req.Price.Currency)
			if err := product.ChangePrice(price, req.ActorID, now); err != nil {
				return err
			}
		}
		if req.MetadataSet {
			if err := product.UpdateMetadata(req.Metadata, req.ActorID, now); err != nil {
				return err
			}
		}

		plan := commitplan.NewPlan()
		plan.Add(it.ProductRepo.UpdateMut(product))
		if err := shared.AddOutboxMuts(plan, it.OutboxRepo, product.DomainEvents(), now); err != nil {
			return err
		}
		return scope.Buffer(plan)
	})
}
