package shared

import (
	"encoding/json"
	"fmt"

	"github.com/murkotick/offering-catalog-service/internal/app/product/domain"
)

// MarshalDomainEventPayload converts a domain event into a JSON payload
// suitable for the outbox.
//
// The domain layer intentionally avoids serialization concerns; this adapter
// extracts primitives (e.g., Money as numerator/denominator) to keep payloads
// useful to downstream consumers.
func MarshalDomainEventPayload(ev domain.DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	switch e := ev.(type) {
	case *domain.ProductCreatedEvent:
		payload := map[string]interface{}{
			"product_id": e.ProductID,
			"name":       e.Name,
			"code":       e.Code,
			"price": map[string]interface{}{
				"numerator":   e.Price.Numerator(),
				"denominator": e.Price.Denominator(),
				"currency":    e.Price.Currency(),
			},
			"created_at": e.CreatedAt,
			"created_by": e.CreatedBy,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.ProductUpdatedEvent:
		payload := map[string]interface{}{
			"product_id": e.ProductID,
			"changes":    e.Changes,
			"updated_at": e.UpdatedAt,
			"updated_by": e.UpdatedBy,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.ProductPublishedEvent:
		payload := map[string]interface{}{
			"product_id":   e.ProductID,
			"published_at": e.PublishedAt,
			"published_by": e.PublishedBy,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.ProductUnpublishedEvent:
		payload := map[string]interface{}{
			"product_id":     e.ProductID,
			"reason":         e.Reason,
			"unpublished_at": e.UnpublishedAt,
			"unpublished_by": e.UnpublishedBy,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.ProductRevertedToDraftEvent:
		payload := map[string]interface{}{
			"product_id":  e.ProductID,
			"reverted_at": e.RevertedAt,
			"reverted_by": e.RevertedBy,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.ProductRemovedEvent:
		payload := map[string]interface{}{
			"product_id": e.ProductID,
			"removed_at": e.RemovedAt,
			"removed_by": e.RemovedBy,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.ProductRestoredEvent:
		payload := map[string]interface{}{
			"product_id":  e.ProductID,
			"restored_at": e.RestoredAt,
			"restored_by": e.RestoredBy,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.ItemAddedEvent:
		payload := map[string]interface{}{
			"product_id":     e.ProductID,
			"item_id":        e.ItemID,
			"reference_kind": e.ReferenceKind,
			"reference_id":   e.ReferenceID,
			"quantity":       e.Quantity,
			"sort_order":     e.SortOrder,
			"added_at":       e.AddedAt,
			"added_by":       e.AddedBy,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.ItemRemovedEvent:
		payload := map[string]interface{}{
			"product_id": e.ProductID,
			"item_id":    e.ItemID,
			"removed_at": e.RemovedAt,
			"removed_by": e.RemovedBy,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.ItemsReorderedEvent:
		payload := map[string]interface{}{
			"product_id":   e.ProductID,
			"orders":       e.Orders,
			"reordered_at": e.ReorderedAt,
			"reordered_by": e.ReorderedBy,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.SnapshotGeneratedEvent:
		payload := map[string]interface{}{
			"snapshot_id":  e.SnapshotID,
			"product_id":   e.ProductID,
			"generated_at": e.GeneratedAt,
			"generated_by": e.GeneratedBy,
		}
		b, err := json.Marshal(payload)
		return string(b), err
	}

	// Fallback: try to marshal the event directly.
	b, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
	}
	return string(b), nil
}
