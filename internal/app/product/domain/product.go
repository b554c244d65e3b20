package domain

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Field constants for change tracking
const (
	FieldName            = "name"
	FieldDescription     = "description"
	FieldCode            = "code"
	FieldPrice           = "price"
	FieldMetadata        = "metadata"
	FieldStatus          = "status"
	FieldPublishedAt     = "published_at"
	FieldPublishedBy     = "published_by"
	FieldUnpublishedAt   = "unpublished_at"
	FieldUnpublishedBy   = "unpublished_by"
	FieldUnpublishReason = "unpublish_reason"
	FieldDeletedAt       = "deleted_at"
)

// ProductStatus represents the lifecycle state of a product.
type ProductStatus string

const (
	// ProductStatusDraft indicates a product that is being prepared.
	ProductStatusDraft ProductStatus = "draft"

	// ProductStatusActive indicates a published product available for sale.
	ProductStatusActive ProductStatus = "active"

	// ProductStatusInactive indicates a product withdrawn from sale.
	ProductStatusInactive ProductStatus = "inactive"

	// ProductStatusDeleted indicates a soft-deleted product.
	ProductStatusDeleted ProductStatus = "deleted"
)

var codePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]{2,19}$`)

// ItemSortOrder is one entry of a batch sort-order update.
type ItemSortOrder struct {
	ItemID    string
	SortOrder int64
}

// Product is the aggregate root of the offering catalog. It owns the item
// collection and every status transition; all invariants spanning the product
// row and its item rows are enforced here.
type Product struct {
	id              string
	name            string
	description     string
	code            string
	price           *Money
	status          ProductStatus
	metadata        *Metadata
	items           []*ProductItem
	createdAt       time.Time
	createdBy       string
	updatedAt       time.Time
	updatedBy       string
	publishedAt     *time.Time
	publishedBy     string
	unpublishedAt   *time.Time
	unpublishedBy   string
	unpublishReason string
	deletedAt       *time.Time

	changes        *ChangeTracker
	events         []DomainEvent
	itemsAdded     []*ProductItem
	itemsRemoved   []string
	itemsReordered map[string]int64
}

// NewProduct creates a new Product in Draft status.
func NewProduct(id, name, description, code string, price *Money, metadata *Metadata, actor string, now time.Time) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := ValidateProductCode(code); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	p := &Product{
		id:          id,
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		code:        code,
		price:       price,
		status:      ProductStatusDraft,
		metadata:    metadata,
		createdAt:   now,
		createdBy:   actor,
		updatedAt:   now,
		updatedBy:   actor,
		changes:     NewChangeTracker(),
	}

	p.events = append(p.events, &ProductCreatedEvent{
		ProductID: p.id,
		Name:      p.name,
		Code:      p.code,
		Price:     p.price,
		CreatedAt: now,
		CreatedBy: actor,
	})

	return p, nil
}

// ProductState carries persisted state for reconstruction.
type ProductState struct {
	ID              string
	Name            string
	Description     string
	Code            string
	Price           *Money
	Status          ProductStatus
	Metadata        *Metadata
	Items           []*ProductItem
	CreatedAt       time.Time
	CreatedBy       string
	UpdatedAt       time.Time
	UpdatedBy       string
	PublishedAt     *time.Time
	PublishedBy     string
	UnpublishedAt   *time.Time
	UnpublishedBy   string
	UnpublishReason string
	DeletedAt       *time.Time
}

// ReconstructProduct rebuilds a Product from persisted state.
// Used by repositories when loading from the database.
func ReconstructProduct(s ProductState) *Product {
	p := &Product{
		id:              s.ID,
		name:            s.Name,
		description:     s.Description,
		code:            s.Code,
		price:           s.Price,
		status:          s.Status,
		metadata:        s.Metadata,
		items:           s.Items,
		createdAt:       s.CreatedAt,
		createdBy:       s.CreatedBy,
		updatedAt:       s.UpdatedAt,
		updatedBy:       s.UpdatedBy,
		publishedAt:     s.PublishedAt,
		publishedBy:     s.PublishedBy,
		unpublishedAt:   s.UnpublishedAt,
		unpublishedBy:   s.UnpublishedBy,
		unpublishReason: s.UnpublishReason,
		deletedAt:       s.DeletedAt,
		changes:         NewChangeTracker(),
	}
	p.sortItems()
	return p
}

// Getters

func (p *Product) ID() string               { return p.id }
func (p *Product) Name() string             { return p.name }
func (p *Product) Description() string      { return p.description }
func (p *Product) Code() string             { return p.code }
func (p *Product) Price() *Money            { return p.price }
func (p *Product) Status() ProductStatus    { return p.status }
func (p *Product) Metadata() *Metadata      { return p.metadata }
func (p *Product) CreatedAt() time.Time     { return p.createdAt }
func (p *Product) CreatedBy() string        { return p.createdBy }
func (p *Product) UpdatedAt() time.Time     { return p.updatedAt }
func (p *Product) UpdatedBy() string        { return p.updatedBy }
func (p *Product) PublishedAt() *time.Time  { return p.publishedAt }
func (p *Product) PublishedBy() string      { return p.publishedBy }
func (p *Product) UnpublishedAt() *time.Time { return p.unpublishedAt }
func (p *Product) UnpublishedBy() string    { return p.unpublishedBy }
func (p *Product) UnpublishReason() string  { return p.unpublishReason }
func (p *Product) DeletedAt() *time.Time    { return p.deletedAt }
func (p *Product) Changes() *ChangeTracker  { return p.changes }
func (p *Product) DomainEvents() []DomainEvent { return p.events }

// Items returns the item collection in display order: sort order ascending,
// creation time breaking ties.
func (p *Product) Items() []*ProductItem {
	out := make([]*ProductItem, len(p.items))
	copy(out, p.items)
	return out
}

// ItemReferences returns the references of all current items.
func (p *Product) ItemReferences() []ItemReference {
	refs := make([]ItemReference, 0, len(p.items))
	for _, it := range p.items {
		refs = append(refs, it.reference)
	}
	return refs
}

// AddedItems returns items added since load, for persistence.
func (p *Product) AddedItems() []*ProductItem { return p.itemsAdded }

// RemovedItemIDs returns ids of items removed since load.
func (p *Product) RemovedItemIDs() []string { return p.itemsRemoved }

// ReorderedItems returns itemID -> new sort order assignments since load.
func (p *Product) ReorderedItems() map[string]int64 { return p.itemsReordered }

// HasItemChanges reports whether the item collection was mutated since load.
func (p *Product) HasItemChanges() bool {
	return len(p.itemsAdded) > 0 || len(p.itemsRemoved) > 0 || len(p.itemsReordered) > 0
}

// ClearEvents clears the accumulated domain events.
// Should be called after events have been published.
func (p *Product) ClearEvents() {
	p.events = nil
}

// State transitions

// Publish moves a draft product to Active. The item collection must be
// non-empty; reference validation against the external catalogs happens in
// the enclosing transaction before this call.
func (p *Product) Publish(actor string, now time.Time) error {
	if p.status == ProductStatusDeleted {
		return ErrProductDeleted
	}
	if p.status != ProductStatusDraft {
		return InvalidTransitionError(p.status, "publish")
	}
	if len(p.items) == 0 {
		return ErrMinimumOneItem
	}

	p.status = ProductStatusActive
	p.publishedAt = &now
	p.publishedBy = actor
	p.changes.MarkDirty(FieldStatus)
	p.changes.MarkDirty(FieldPublishedAt)
	p.changes.MarkDirty(FieldPublishedBy)
	p.touch(actor, now)

	p.events = append(p.events, &ProductPublishedEvent{
		ProductID:   p.id,
		PublishedAt: now,
		PublishedBy: actor,
	})
	return nil
}

// Unpublish withdraws an active product from sale. A non-empty reason is required.
func (p *Product) Unpublish(reason, actor string, now time.Time) error {
	if p.status == ProductStatusDeleted {
		return ErrProductDeleted
	}
	if p.status != ProductStatusActive {
		return InvalidTransitionError(p.status, "unpublish")
	}
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyUnpublishReason
	}

	p.status = ProductStatusInactive
	p.unpublishedAt = &now
	p.unpublishedBy = actor
	p.unpublishReason = strings.TrimSpace(reason)
	p.changes.MarkDirty(FieldStatus)
	p.changes.MarkDirty(FieldUnpublishedAt)
	p.changes.MarkDirty(FieldUnpublishedBy)
	p.changes.MarkDirty(FieldUnpublishReason)
	p.touch(actor, now)

	p.events = append(p.events, &ProductUnpublishedEvent{
		ProductID:     p.id,
		Reason:        p.unpublishReason,
		UnpublishedAt: now,
		UnpublishedBy: actor,
	})
	return nil
}

// RevertToDraft moves an inactive product back to Draft so it can be edited
// and republished. Unpublish markers are cleared; the publish timestamp is
// kept as history so Remove can still tell the product was once published.
func (p *Product) RevertToDraft(actor string, now time.Time) error {
	if p.status == ProductStatusDeleted {
		return ErrProductDeleted
	}
	if p.status != ProductStatusInactive {
		return InvalidTransitionError(p.status, "revert to draft")
	}

	p.status = ProductStatusDraft
	p.unpublishedAt = nil
	p.unpublishedBy = ""
	p.unpublishReason = ""
	p.changes.MarkDirty(FieldStatus)
	p.changes.MarkDirty(FieldUnpublishedAt)
	p.changes.MarkDirty(FieldUnpublishedBy)
	p.changes.MarkDirty(FieldUnpublishReason)
	p.touch(actor, now)

	p.events = append(p.events, &ProductRevertedToDraftEvent{
		ProductID:  p.id,
		RevertedAt: now,
		RevertedBy: actor,
	})
	return nil
}

// Remove soft-deletes a draft product that has never been published.
func (p *Product) Remove(actor string, now time.Time) error {
	if p.status == ProductStatusDeleted {
		return ErrProductDeleted
	}
	if p.status != ProductStatusDraft {
		return InvalidTransitionError(p.status, "remove")
	}
	if p.publishedAt != nil {
		return ErrProductWasPublished
	}

	p.status = ProductStatusDeleted
	p.deletedAt = &now
	p.changes.MarkDirty(FieldStatus)
	p.changes.MarkDirty(FieldDeletedAt)
	p.touch(actor, now)

	p.events = append(p.events, &ProductRemovedEvent{
		ProductID: p.id,
		RemovedAt: now,
		RemovedBy: actor,
	})
	return nil
}

// Restore brings a soft-deleted product back to Draft.
func (p *Product) Restore(actor string, now time.Time) error {
	if p.status != ProductStatusDeleted {
		return InvalidTransitionError(p.status, "restore")
	}

	p.status = ProductStatusDraft
	p.deletedAt = nil
	p.changes.MarkDirty(FieldStatus)
	p.changes.MarkDirty(FieldDeletedAt)
	p.touch(actor, now)

	p.events = append(p.events, &ProductRestoredEvent{
		ProductID:  p.id,
		RestoredAt: now,
		RestoredBy: actor,
	})
	return nil
}

// Field updates (draft only)

// Rename changes the product name.
func (p *Product) Rename(name, actor string, now time.Time) error {
	if err := p.guardDraftUpdate(); err != nil {
		return err
	}
	if err := validateProductName(name); err != nil {
		return err
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == p.name {
		return nil
	}
	p.name = trimmed
	p.changes.MarkDirty(FieldName)
	p.recordUpdate(FieldName, p.name, actor, now)
	return nil
}

// UpdateDescription changes the free-text description.
func (p *Product) UpdateDescription(description, actor string, now time.Time) error {
	if err := p.guardDraftUpdate(); err != nil {
		return err
	}
	trimmed := strings.TrimSpace(description)
	if trimmed == p.description {
		return nil
	}
	p.description = trimmed
	p.changes.MarkDirty(FieldDescription)
	p.recordUpdate(FieldDescription, p.description, actor, now)
	return nil
}

// ChangeCode changes the unique product code. Uniqueness among non-deleted
// products is checked by the caller inside the enclosing transaction.
func (p *Product) ChangeCode(code, actor string, now time.Time) error {
	if err := p.guardDraftUpdate(); err != nil {
		return err
	}
	if err := ValidateProductCode(code); err != nil {
		return err
	}
	if code == p.code {
		return nil
	}
	p.code = code
	p.changes.MarkDirty(FieldCode)
	p.recordUpdate(FieldCode, p.code, actor, now)
	return nil
}

// ChangePrice changes the product price.
func (p *Product) ChangePrice(price *Money, actor string, now time.Time) error {
	if err := p.guardDraftUpdate(); err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}
	if price.Equals(p.price) {
		return nil
	}
	p.price = price
	p.changes.MarkDirty(FieldPrice)
	p.recordUpdate(FieldPrice, price.String(), actor, now)
	return nil
}

// UpdateMetadata replaces the marketing metadata. A nil value clears it.
func (p *Product) UpdateMetadata(metadata *Metadata, actor string, now time.Time) error {
	if err := p.guardDraftUpdate(); err != nil {
		return err
	}
	p.metadata = metadata
	p.changes.MarkDirty(FieldMetadata)
	p.recordUpdate(FieldMetadata, metadata, actor, now)
	return nil
}

// Item set management

// AddItem adds a new item for a reference not yet present on the product.
// When sortOrder is nil the item is appended one past the current maximum.
func (p *Product) AddItem(itemID string, ref ItemReference, quantity int64, sortOrder *int64, actor string, now time.Time) (*ProductItem, error) {
	if err := p.guardDraftUpdate(); err != nil {
		return nil, err
	}
	for _, it := range p.items {
		if it.reference.Key() == ref.Key() {
			return nil, ErrDuplicateItemReference
		}
	}

	so := p.nextSortOrder()
	if sortOrder != nil {
		so = *sortOrder
	}

	item, err := NewProductItem(itemID, p.id, ref, quantity, so, now)
	if err != nil {
		return nil, err
	}

	p.items = append(p.items, item)
	p.sortItems()
	p.itemsAdded = append(p.itemsAdded, item)
	p.touch(actor, now)

	p.events = append(p.events, &ItemAddedEvent{
		ProductID:     p.id,
		ItemID:        item.id,
		ReferenceKind: string(ref.Kind()),
		ReferenceID:   ref.ID(),
		Quantity:      quantity,
		SortOrder:     so,
		AddedAt:       now,
		AddedBy:       actor,
	})
	return item, nil
}

// RemoveItem removes one item. The last remaining item can never be removed,
// so a draft is always publishable without re-adding items.
func (p *Product) RemoveItem(itemID, actor string, now time.Time) error {
	if err := p.guardDraftUpdate(); err != nil {
		return err
	}

	idx := -1
	for i, it := range p.items {
		if it.id == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrItemNotFound
	}
	if len(p.items) == 1 {
		return ErrMinimumOneItem
	}

	p.items = append(p.items[:idx], p.items[idx+1:]...)
	p.itemsRemoved = append(p.itemsRemoved, itemID)
	p.touch(actor, now)

	p.events = append(p.events, &ItemRemovedEvent{
		ProductID: p.id,
		ItemID:    itemID,
		RemovedAt: now,
		RemovedBy: actor,
	})
	return nil
}

// ReorderItems applies a batch of sort-order assignments atomically. Every
// referenced item must belong to this product.
func (p *Product) ReorderItems(orders []ItemSortOrder, actor string, now time.Time) error {
	if err := p.guardDraftUpdate(); err != nil {
		return err
	}

	byID := make(map[string]*ProductItem, len(p.items))
	for _, it := range p.items {
		byID[it.id] = it
	}
	for _, o := range orders {
		if o.SortOrder < 0 {
			return ErrNegativeSortOrder
		}
		if _, ok := byID[o.ItemID]; !ok {
			return ErrItemNotFound
		}
	}

	if p.itemsReordered == nil {
		p.itemsReordered = make(map[string]int64, len(orders))
	}
	changed := make(map[string]int64, len(orders))
	for _, o := range orders {
		it := byID[o.ItemID]
		if it.sortOrder == o.SortOrder {
			continue
		}
		it.sortOrder = o.SortOrder
		p.itemsReordered[o.ItemID] = o.SortOrder
		changed[o.ItemID] = o.SortOrder
	}
	if len(changed) == 0 {
		return nil
	}
	p.sortItems()
	p.touch(actor, now)

	p.events = append(p.events, &ItemsReorderedEvent{
		ProductID:   p.id,
		Orders:      changed,
		ReorderedAt: now,
		ReorderedBy: actor,
	})
	return nil
}

// Helpers

// guardDraftUpdate enforces the mutation gate: deleted products are gone
// (reported distinctly), anything not in draft is rejected as already published.
func (p *Product) guardDraftUpdate() error {
	if p.status == ProductStatusDeleted {
		return ErrProductDeleted
	}
	if p.status != ProductStatusDraft {
		return ErrProductNotDraft
	}
	return nil
}

func (p *Product) touch(actor string, now time.Time) {
	p.updatedAt = now
	p.updatedBy = actor
}

func (p *Product) recordUpdate(field string, value interface{}, actor string, now time.Time) {
	p.touch(actor, now)
	p.events = append(p.events, &ProductUpdatedEvent{
		ProductID: p.id,
		Changes:   map[string]interface{}{field: value},
		UpdatedAt: now,
		UpdatedBy: actor,
	})
}

func (p *Product) nextSortOrder() int64 {
	if len(p.items) == 0 {
		return 0
	}
	var max int64 = -1
	for _, it := range p.items {
		if it.sortOrder > max {
			max = it.sortOrder
		}
	}
	return max + 1
}

func (p *Product) sortItems() {
	sort.SliceStable(p.items, func(i, j int) bool {
		if p.items[i].sortOrder != p.items[j].sortOrder {
			return p.items[i].sortOrder < p.items[j].sortOrder
		}
		return p.items[i].createdAt.Before(p.items[j].createdAt)
	})
}

// Validation helpers

func validateProductName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyProductName
	}
	if len(trimmed) > 255 {
		return ErrProductNameTooLong
	}
	return nil
}

// ValidateProductCode checks the code format: 3-20 characters, alphanumeric
// plus hyphen, starting with a letter, no trailing or consecutive hyphens.
func ValidateProductCode(code string) error {
	if !codePattern.MatchString(code) {
		return ErrInvalidProductCode
	}
	if strings.HasSuffix(code, "-") || strings.Contains(code, "--") {
		return ErrInvalidProductCode
	}
	return nil
}

func validatePrice(price *Money) error {
	if price == nil || !price.IsPositive() {
		return ErrNonPositivePrice
	}
	if !validCurrency(price.Currency()) {
		return ErrInvalidCurrency
	}
	return nil
}
