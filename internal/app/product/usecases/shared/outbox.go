package shared

import (
	"time"

	"github.com/google/uuid"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	"github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	commitplan "github.com/murkotick/offering-catalog-service/internal/pkg/committer"
)

// AddOutboxMuts enriches the aggregate's domain events into outbox rows and
// adds their insert mutations to the plan, so events commit atomically with
// the state change that produced them.
func AddOutboxMuts(plan *commitplan.Plan, outboxRepo contracts.OutboxRepo, events []domain.DomainEvent, now time.Time) error {
	for _, ev := range events {
		payload, err := MarshalDomainEventPayload(ev)
		if err != nil {
			return err
		}
		plan.Add(outboxRepo.InsertMut(&contracts.OutboxEvent{
			EventID:      uuid.New().String(),
			EventType:    ev.EventType(),
			AggregateID:  ev.AggregateID(),
			PayloadJSON:  payload,
			Status:       "pending",
			CreatedAtUTC: now,
		}))
	}
	return nil
}
