package contracts

import (
	"context"

	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
)

// ReferenceRecord is one row of an external reference catalog as seen by
// this core: identifier, human-facing code and lifecycle status.
type ReferenceRecord struct {
	ID     string
	Code   string
	Name   string
	Status string
}

// ReferenceCatalog reads the external catalogs (service types and service
// packages). The core never writes to them.
type ReferenceCatalog interface {
	// FetchByIDs returns the records found for the given ids of one kind,
	// keyed by id. Ids absent from the catalog are simply missing from the
	// result; the caller decides what a miss means.
	FetchByIDs(ctx context.Context, q RowQuerier, kind domain.ReferenceKind, ids []string) (map[string]ReferenceRecord, error)
}
