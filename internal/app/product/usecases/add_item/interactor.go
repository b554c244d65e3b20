package add_item

import (
	"context"

	"github.com/google/uuid"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	"github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	shared "github.com/murkotick/offering-catalog-service/internal/app/product/usecases/shared"
	"github.com/murkotick/offering-catalog-service/internal/app/product/validator"
	"github.com/murkotick/offering-catalog-service/internal/pkg/clock"
	commitplan "github.com/murkotick/offering-catalog-service/internal/pkg/committer"
)

// Request adds one item to a draft product. SortOrder nil means append.
type Request struct {
	ProductID     string
	ReferenceKind string
	ReferenceID   string
	Quantity      int64
	SortOrder     *int64
	ActorID       string
}

type Interactor struct {
	ProductRepo contracts.ProductRepo
	ItemRepo    contracts.ProductItemRepo
	OutboxRepo  contracts.OutboxRepo
	Validator   *validator.ReferenceValidator
	Committer   contracts.Committer
	Clock       clock.Clock
}

func NewInteractor(prodRepo contracts.ProductRepo, itemRepo contracts.ProductItemRepo, outboxRepo contracts.OutboxRepo, v *validator.ReferenceValidator, committer contracts.Committer, clk clock.Clock) *Interactor {
	return &Interactor{
		ProductRepo: prodRepo,
		ItemRepo:    itemRepo,
		OutboxRepo:  outboxRepo,
		Validator:   v,
		Committer:   committer,
		Clock:       clk,
	}
}

// Execute adds the item inside one locked transaction and returns the new
// item id. The reference is checked against its catalog in the same
// transaction, after the aggregate's own gates (status, duplicates, quantity).
func (it *Interactor) Execute(ctx context.Context, req Request) (string, error) {
	now := it.Clock.Now()

	kind, err := domain.ParseReferenceKind(req.ReferenceKind)
	if err != nil {
		return "", err
	}
	ref, err := domain.NewItemReference(kind, req.ReferenceID)
	if err != nil {
		return "", err
	}

	itemID := uuid.New().String()

	err = it.Committer.Exec(ctx, func(ctx context.Context, scope commitplan.Scope) error {
		product, err := it.ProductRepo.LoadForUpdate(ctx, scope, req.ProductID)
		if err != nil {
			return err
		}

		if _, err := product.AddItem(itemID, ref, req.Quantity, req.SortOrder, req.ActorID, now); err != nil {
			return err
		}

		if err := it.Validator.Validate(ctx, scope, []domain.ItemReference{ref}); err != nil {
			return err
		}

		plan := commitplan.NewPlan()
		for _, mut := range it.ItemRepo.InsertMuts(product) {
			plan.Add(mut)
		}
		plan.Add(it.ProductRepo.UpdateMut(product))
		if err := shared.AddOutboxMuts(plan, it.OutboxRepo, product.DomainEvents(), now); err != nil {
			return err
		}
		return scope.Buffer(plan)
	})
	if err != nil {
		return "", err
	}

	return itemID, nil
}
