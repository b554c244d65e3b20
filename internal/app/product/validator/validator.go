package validator

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
)

// ReferenceValidator checks item references against the external catalogs.
// It takes a caller-supplied RowQuerier so the same checks run inside a
// locked publish transaction or against a standalone read.
type ReferenceValidator struct {
	catalog contracts.ReferenceCatalog
}

func New(catalog contracts.ReferenceCatalog) *ReferenceValidator {
	return &ReferenceValidator{catalog: catalog}
}

// Validate checks that every reference resolves to an active catalog record.
// Duplicate references are tolerated and checked once. Checks run in order:
// blank id, malformed id, existence (one batch fetch per kind), lifecycle.
func (v *ReferenceValidator) Validate(ctx context.Context, q contracts.RowQuerier, refs []domain.ItemReference) error {
	byKind, err := dedupe(refs)
	if err != nil {
		return err
	}

	for kind, ids := range byKind {
		records, err := v.catalog.FetchByIDs(ctx, q, kind, ids)
		if err != nil {
			return err
		}

		var missing, inactive []string
		for _, id := range ids {
			rec, ok := records[id]
			if !ok {
				missing = append(missing, id)
				continue
			}
			if rec.Status != "active" {
				inactive = append(inactive, id)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return domain.MissingReferencesError(missing)
		}
		if len(inactive) > 0 {
			sort.Strings(inactive)
			return domain.InactiveReferencesError(inactive)
		}
	}
	return nil
}

// Resolve validates the references and returns the catalog data needed to
// freeze them into a snapshot, keyed by ItemReference.Key().
func (v *ReferenceValidator) Resolve(ctx context.Context, q contracts.RowQuerier, refs []domain.ItemReference) (map[string]domain.ResolvedReference, error) {
	byKind, err := dedupe(refs)
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.ResolvedReference, len(refs))
	for kind, ids := range byKind {
		records, err := v.catalog.FetchByIDs(ctx, q, kind, ids)
		if err != nil {
			return nil, err
		}

		var missing, inactive []string
		for _, id := range ids {
			rec, ok := records[id]
			if !ok {
				missing = append(missing, id)
				continue
			}
			if rec.Status != "active" {
				inactive = append(inactive, id)
				continue
			}
			out[string(kind)+":"+id] = domain.ResolvedReference{Code: rec.Code}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return nil, domain.MissingReferencesError(missing)
		}
		if len(inactive) > 0 {
			sort.Strings(inactive)
			return nil, domain.InactiveReferencesError(inactive)
		}
	}
	return out, nil
}

// dedupe groups unique reference ids by kind, rejecting blank and malformed
// identifiers first. Blank ids count as not found; malformed ids are a
// distinct validation failure.
func dedupe(refs []domain.ItemReference) (map[domain.ReferenceKind][]string, error) {
	seen := make(map[string]struct{}, len(refs))
	byKind := make(map[domain.ReferenceKind][]string)

	for _, ref := range refs {
		id := ref.ID()
		if strings.TrimSpace(id) == "" {
			return nil, domain.ErrReferenceNotFound
		}
		if _, err := uuid.Parse(id); err != nil {
			return nil, domain.ErrInvalidReferenceID
		}
		if _, ok := seen[ref.Key()]; ok {
			continue
		}
		seen[ref.Key()] = struct{}{}
		byKind[ref.Kind()] = append(byKind[ref.Kind()], id)
	}
	return byKind, nil
}
