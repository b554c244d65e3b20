package domain

import "time"

// DomainEvent is a marker interface for all domain events.
// Domain events represent facts about things that have happened in the domain.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// ProductCreatedEvent is raised when a new product is created.
type ProductCreatedEvent struct {
	ProductID string
	Name      string
	Code      string
	Price     *Money
	CreatedAt time.Time
	CreatedBy string
}

func (e *ProductCreatedEvent) EventType() string     { return "product.created" }
func (e *ProductCreatedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// ProductUpdatedEvent is raised when a draft product field is updated.
type ProductUpdatedEvent struct {
	ProductID string
	Changes   map[string]interface{}
	UpdatedAt time.Time
	UpdatedBy string
}

func (e *ProductUpdatedEvent) EventType() string     { return "product.updated" }
func (e *ProductUpdatedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// ProductPublishedEvent is raised when a draft product goes active.
type ProductPublishedEvent struct {
	ProductID   string
	PublishedAt time.Time
	PublishedBy string
}

func (e *ProductPublishedEvent) EventType() string     { return "product.published" }
func (e *ProductPublishedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductPublishedEvent) OccurredAt() time.Time { return e.PublishedAt }

// ProductUnpublishedEvent is raised when an active product is withdrawn.
type ProductUnpublishedEvent struct {
	ProductID     string
	Reason        string
	UnpublishedAt time.Time
	UnpublishedBy string
}

func (e *ProductUnpublishedEvent) EventType() string     { return "product.unpublished" }
func (e *ProductUnpublishedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductUnpublishedEvent) OccurredAt() time.Time { return e.UnpublishedAt }

// ProductRevertedToDraftEvent is raised when an inactive product returns to draft.
type ProductRevertedToDraftEvent struct {
	ProductID  string
	RevertedAt time.Time
	RevertedBy string
}

func (e *ProductRevertedToDraftEvent) EventType() string     { return "product.reverted_to_draft" }
func (e *ProductRevertedToDraftEvent) AggregateID() string   { return e.ProductID }
func (e *ProductRevertedToDraftEvent) OccurredAt() time.Time { return e.RevertedAt }

// ProductRemovedEvent is raised when a draft product is soft-deleted.
type ProductRemovedEvent struct {
	ProductID string
	RemovedAt time.Time
	RemovedBy string
}

func (e *ProductRemovedEvent) EventType() string     { return "product.removed" }
func (e *ProductRemovedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductRemovedEvent) OccurredAt() time.Time { return e.RemovedAt }

// ProductRestoredEvent is raised when a soft-deleted product is restored.
type ProductRestoredEvent struct {
	ProductID  string
	RestoredAt time.Time
	RestoredBy string
}

func (e *ProductRestoredEvent) EventType() string     { return "product.restored" }
func (e *ProductRestoredEvent) AggregateID() string   { return e.ProductID }
func (e *ProductRestoredEvent) OccurredAt() time.Time { return e.RestoredAt }

// ItemAddedEvent is raised when an item is added to a draft product.
type ItemAddedEvent struct {
	ProductID     string
	ItemID        string
	ReferenceKind string
	ReferenceID   string
	Quantity      int64
	SortOrder     int64
	AddedAt       time.Time
	AddedBy       string
}

func (e *ItemAddedEvent) EventType() string     { return "product.item_added" }
func (e *ItemAddedEvent) AggregateID() string   { return e.ProductID }
func (e *ItemAddedEvent) OccurredAt() time.Time { return e.AddedAt }

// ItemRemovedEvent is raised when an item is removed from a draft product.
type ItemRemovedEvent struct {
	ProductID string
	ItemID    string
	RemovedAt time.Time
	RemovedBy string
}

func (e *ItemRemovedEvent) EventType() string     { return "product.item_removed" }
func (e *ItemRemovedEvent) AggregateID() string   { return e.ProductID }
func (e *ItemRemovedEvent) OccurredAt() time.Time { return e.RemovedAt }

// ItemsReorderedEvent is raised when item sort orders are updated as a batch.
type ItemsReorderedEvent struct {
	ProductID   string
	Orders      map[string]int64
	ReorderedAt time.Time
	ReorderedBy string
}

func (e *ItemsReorderedEvent) EventType() string     { return "product.items_reordered" }
func (e *ItemsReorderedEvent) AggregateID() string   { return e.ProductID }
func (e *ItemsReorderedEvent) OccurredAt() time.Time { return e.ReorderedAt }

// SnapshotGeneratedEvent is raised when a point-in-time snapshot of a
// published product is generated.
type SnapshotGeneratedEvent struct {
	SnapshotID  string
	ProductID   string
	GeneratedAt time.Time
	GeneratedBy string
}

func (e *SnapshotGeneratedEvent) EventType() string     { return "product.snapshot_generated" }
func (e *SnapshotGeneratedEvent) AggregateID() string   { return e.ProductID }
func (e *SnapshotGeneratedEvent) OccurredAt() time.Time { return e.GeneratedAt }
