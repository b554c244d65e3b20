package create_product

import (
	"context"

	"github.com/google/uuid"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	"github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	shared "github.com/murkotick/offering-catalog-service/internal/app/product/usecases/shared"
	"github.com/murkotick/offering-catalog-service/internal/pkg/clock"
	commitplan "github.com/murkotick/offering-catalog-service/internal/pkg/committer"
)

// Request is the application-level create-product request.
type Request struct {
	Name        string
	Description string
	Code        string
	PriceNum    int64
	PriceDen    int64
	Currency    string
	Metadata    *domain.Metadata
	ActorID     string
}

// Interactor creates a product in draft status. The code-uniqueness check
// and the insert run in the same transaction so two concurrent creates with
// the same code cannot both succeed.
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

// Execute creates a new product, persists it and writes outbox events in a
// single commit. Returns the new product id.
func (it *Interactor) Execute(ctx context.Context, req Request) (string, error) {
	now := it.Clock.Now()

	if req.PriceDen == 0 {
		return "", domain.ErrNonPositivePrice
	}
	price := domain.NewMoney(req.PriceNum, req.PriceDen, req.Currency)

	id := uuid.New().String()
	product, err := domain.NewProduct(id, req.Name, req.Description, req.Code, price, req.Metadata, req.ActorID, now)
	if err != nil {
		return "", err
	}

	err = it.Committer.Exec(ctx, func(ctx context.Context, scope commitplan.Scope) error {
		inUse, err := it.ProductRepo.CodeInUse(ctx, scope, product.Code(), "")
		if err != nil {
			return err
		}
		if inUse {
			return domain.ErrDuplicateProductCode
		}

		plan := commitplan.NewPlan()
		plan.Add(it.ProductRepo.InsertMut(product))
		if err := shared.AddOutboxMuts(plan, it.OutboxRepo, product.DomainEvents(), now); err != nil {
			return err
		}
		return scope.Buffer(plan)
	})
	if err != nil {
		return "", err
	}

	return product.ID(), nil
}
