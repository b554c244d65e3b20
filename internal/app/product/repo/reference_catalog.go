package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	"github.com/murkotick/offering-catalog-service/internal/models/m_service_package"
	"github.com/murkotick/offering-catalog-service/internal/models/m_service_type"
)

// ReferenceCatalog reads the service_types and service_packages tables.
// Both catalogs are owned by other services; this core only looks records up.
type ReferenceCatalog struct{}

func NewReferenceCatalog() *ReferenceCatalog {
	return &ReferenceCatalog{}
}

// FetchByIDs fetches the records for the given ids of one kind in a single
// statement. Missing ids are simply absent from the result map.
func (c *ReferenceCatalog) FetchByIDs(ctx context.Context, q contracts.RowQuerier, kind domain.ReferenceKind, ids []string) (map[string]contracts.ReferenceRecord, error) {
	if len(ids) == 0 {
		return map[string]contracts.ReferenceRecord{}, nil
	}

	var table, idCol string
	switch kind {
	case domain.ReferenceKindServiceType:
		table, idCol = m_service_type.TableName, m_service_type.ColServiceTypeID
	case domain.ReferenceKindServicePackage:
		table, idCol = m_service_package.TableName, m_service_package.ColServicePackageID
	default:
		return nil, domain.ErrInvalidReferenceKind
	}

	stmt := spanner.Statement{
		SQL: fmt.Sprintf(`SELECT %s, code, name, status FROM %s WHERE %s IN UNNEST(@ids)`,
			idCol, table, idCol),
		Params: map[string]interface{}{"ids": ids},
	}

	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	out := make(map[string]contracts.ReferenceRecord, len(ids))
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		var rec contracts.ReferenceRecord
		if err := row.Columns(&rec.ID, &rec.Code, &rec.Name, &rec.Status); err != nil {
			return nil, err
		}
		out[rec.ID] = rec
	}
}
