package domain

import (
	"fmt"
	"strings"
)

// ErrorKind classifies domain errors so outer layers can map them to a
// transport status without inspecting individual codes.
type ErrorKind string

const (
	// KindNotFound indicates a product, item or referenced record does not exist.
	KindNotFound ErrorKind = "not_found"

	// KindGone indicates the operation targets a soft-deleted product.
	KindGone ErrorKind = "gone"

	// KindConflict indicates a uniqueness violation (product code, item reference).
	KindConflict ErrorKind = "conflict"

	// KindInvalidState indicates the operation is illegal for the product's current status.
	KindInvalidState ErrorKind = "invalid_state"

	// KindValidation indicates malformed input.
	KindValidation ErrorKind = "validation_failure"

	// KindReferenceInactive indicates a referenced record exists but is not active.
	KindReferenceInactive ErrorKind = "reference_inactive"
)

// Error is a structured domain error carrying a kind and a stable
// machine-readable code. Errors compare with errors.Is by code, so detailed
// instances built by the constructor helpers below still match their sentinel.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches two domain errors by code, ignoring message details.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// KindOf returns the kind of a domain error, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	if de, ok := err.(*Error); ok {
		return de.Kind
	}
	return ""
}

// Not-found / gone errors
var (
	ErrProductNotFound = &Error{Kind: KindNotFound, Code: "product_not_found", Message: "product not found"}
	ErrItemNotFound    = &Error{Kind: KindNotFound, Code: "item_not_found", Message: "product item not found"}

	// ErrReferenceNotFound covers blank identifiers and identifiers that do not
	// resolve to a catalog record.
	ErrReferenceNotFound = &Error{Kind: KindNotFound, Code: "reference_not_found", Message: "referenced service type not found"}

	ErrProductDeleted = &Error{Kind: KindGone, Code: "product_deleted", Message: "product has been deleted"}
)

// Conflict errors
var (
	ErrDuplicateProductCode   = &Error{Kind: KindConflict, Code: "duplicate_product_code", Message: "product code is already in use"}
	ErrDuplicateItemReference = &Error{Kind: KindConflict, Code: "duplicate_item_reference", Message: "product already has an item for this reference"}
)

// State errors
var (
	ErrInvalidStatusTransition = &Error{Kind: KindInvalidState, Code: "invalid_status_transition", Message: "invalid status transition"}
	ErrProductNotDraft         = &Error{Kind: KindInvalidState, Code: "product_already_published", Message: "product has already been published"}
	ErrProductWasPublished     = &Error{Kind: KindInvalidState, Code: "product_was_published", Message: "cannot remove a product that has been published"}
	ErrProductNotPublished     = &Error{Kind: KindInvalidState, Code: "product_not_published", Message: "product is not published"}
)

// Validation errors
var (
	ErrEmptyProductName     = &Error{Kind: KindValidation, Code: "empty_product_name", Message: "product name cannot be empty"}
	ErrProductNameTooLong   = &Error{Kind: KindValidation, Code: "product_name_too_long", Message: "product name exceeds maximum length of 255 characters"}
	ErrInvalidProductCode   = &Error{Kind: KindValidation, Code: "invalid_product_code", Message: "product code must be 3-20 alphanumeric or hyphen characters, start with a letter and contain no trailing or consecutive hyphens"}
	ErrNonPositivePrice     = &Error{Kind: KindValidation, Code: "nonpositive_price", Message: "price must be strictly positive"}
	ErrInvalidCurrency      = &Error{Kind: KindValidation, Code: "invalid_currency", Message: "currency must be a three-letter code"}
	ErrNonPositiveQuantity  = &Error{Kind: KindValidation, Code: "nonpositive_quantity", Message: "item quantity must be positive"}
	ErrNegativeSortOrder    = &Error{Kind: KindValidation, Code: "negative_sort_order", Message: "item sort order cannot be negative"}
	ErrEmptyUnpublishReason = &Error{Kind: KindValidation, Code: "empty_unpublish_reason", Message: "unpublish reason cannot be empty"}
	ErrMinimumOneItem       = &Error{Kind: KindValidation, Code: "minimum_one_item", Message: "product must have at least one item"}
	ErrInvalidReferenceID   = &Error{Kind: KindValidation, Code: "invalid_reference_id", Message: "reference id is not a valid identifier"}
	ErrInvalidReferenceKind = &Error{Kind: KindValidation, Code: "invalid_reference_kind", Message: "unknown item reference kind"}
	ErrItemsSpanProducts    = &Error{Kind: KindValidation, Code: "items_span_products", Message: "sort order batch must reference items of exactly one product"}
	ErrInvalidSortField     = &Error{Kind: KindValidation, Code: "invalid_sort_field", Message: "unsupported sort field"}
)

// Reference lifecycle errors
var (
	ErrReferenceNotActive = &Error{Kind: KindReferenceInactive, Code: "reference_not_active", Message: "referenced service type is not active"}
)

// InvalidTransitionError builds a detailed invalid-transition error naming the
// current and requested status. It matches ErrInvalidStatusTransition under errors.Is.
func InvalidTransitionError(from ProductStatus, requested string) *Error {
	return &Error{
		Kind:    KindInvalidState,
		Code:    ErrInvalidStatusTransition.Code,
		Message: fmt.Sprintf("invalid status transition: cannot %s a %s product", requested, from),
	}
}

// MissingReferencesError builds a reference-not-found error carrying the
// specific missing identifiers for diagnostics.
func MissingReferencesError(ids []string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    ErrReferenceNotFound.Code,
		Message: fmt.Sprintf("referenced service type not found: %s", strings.Join(ids, ", ")),
	}
}

// InactiveReferencesError builds a reference-not-active error naming the
// offending identifiers.
func InactiveReferencesError(ids []string) *Error {
	return &Error{
		Kind:    KindReferenceInactive,
		Code:    ErrReferenceNotActive.Code,
		Message: fmt.Sprintf("referenced service type not active: %s", strings.Join(ids, ", ")),
	}
}
