package domain

// ReferenceKind discriminates which external catalog an item points into.
type ReferenceKind string

const (
	// ReferenceKindServiceType points into the service-type catalog.
	ReferenceKindServiceType ReferenceKind = "service_type"

	// ReferenceKindServicePackage points into the service-package catalog.
	ReferenceKindServicePackage ReferenceKind = "service_package"
)

// ParseReferenceKind validates a raw kind string.
func ParseReferenceKind(raw string) (ReferenceKind, error) {
	switch ReferenceKind(raw) {
	case ReferenceKindServiceType, ReferenceKindServicePackage:
		return ReferenceKind(raw), nil
	default:
		return "", ErrInvalidReferenceKind
	}
}

// ItemReference is a tagged reference to a record in one of the external
// catalogs. The identifier itself is validated by the reference validator,
// not at construction time, so that blank and malformed ids surface through
// the documented error codes.
type ItemReference struct {
	kind ReferenceKind
	id   string
}

// NewItemReference builds a reference of a known kind.
func NewItemReference(kind ReferenceKind, id string) (ItemReference, error) {
	if _, err := ParseReferenceKind(string(kind)); err != nil {
		return ItemReference{}, err
	}
	return ItemReference{kind: kind, id: id}, nil
}

func (r ItemReference) Kind() ReferenceKind {
	return r.kind
}

func (r ItemReference) ID() string {
	return r.id
}

// Key returns a string uniquely identifying the reference within a product.
func (r ItemReference) Key() string {
	return string(r.kind) + ":" + r.id
}
