package generate_snapshot

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

// Request generates a point-in-time snapshot of a published product.
type Request struct {
	ProductID string
	ActorID   string
}

// Interactor freezes a published product into an immutable snapshot. The
// product row is locked while references are resolved so the snapshot never
// mixes states from different moments.
type Interactor struct {
	ProductRepo  contracts.ProductRepo
	SnapshotRepo contracts.SnapshotRepo
	OutboxRepo   contracts.OutboxRepo
	Validator    *validator.ReferenceValidator
	Committer    contracts.Committer
	Clock        clock.Clock
}

func NewInteractor(prodRepo contracts.ProductRepo, snapRepo contracts.SnapshotRepo, outboxRepo contracts.OutboxRepo, v *validator.ReferenceValidator, committer contracts.Committer, clk clock.Clock) *Interactor {
	return &Interactor{
		ProductRepo:  prodRepo,
		SnapshotRepo: snapRepo,
		OutboxRepo:   outboxRepo,
		Validator:    v,
		Committer:    committer,
		Clock:        clk,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) (*domain.Snapshot, error) {
	now := it.Clock.Now()
	snapshotID := uuid.New().String()

	var snapshot *domain.Snapshot
	err := it.Committer.Exec(ctx, func(ctx context.Context, scope commitplan.Scope) error {
		product, err := it.ProductRepo.LoadForUpdate(ctx, scope, req.ProductID)
		if err != nil {
			return err
		}
		if product.Status() != domain.ProductStatusActive {
			return domain.ErrProductNotPublished
		}

		resolved, err := it.Validator.Resolve(ctx, scope, product.ItemReferences())
		if err != nil {
			return err
		}

		snapshot, err = domain.BuildSnapshot(snapshotID, product, resolved, req.ActorID, now)
		if err != nil {
			return err
		}

		mut, err := it.SnapshotRepo.InsertMut(snapshot)
		if err != nil {
			return err
		}

		plan := commitplan.NewPlan()
		plan.Add(mut)

		ev := &domain.SnapshotGeneratedEvent{
			SnapshotID:  snapshot.ID,
			ProductID:   snapshot.ProductID,
			GeneratedAt: now,
			GeneratedBy: req.ActorID,
		}
		if err := shared.AddOutboxMuts(plan, it.OutboxRepo, []domain.DomainEvent{ev}, now); err != nil {
			return err
		}
		return scope.Buffer(plan)
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}
