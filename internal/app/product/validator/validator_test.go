package validator

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
)

// fakeCatalog serves records from in-memory maps and counts fetches so tests
// can assert one batch per kind.
type fakeCatalog struct {
	records map[domain.ReferenceKind]map[string]contracts.ReferenceRecord
	fetches int
}

func (f *fakeCatalog) FetchByIDs(_ context.Context, _ contracts.RowQuerier, kind domain.ReferenceKind, ids []string) (map[string]contracts.ReferenceRecord, error) {
	f.fetches++
	out := map[string]contracts.ReferenceRecord{}
	for _, id := range ids {
		if rec, ok := f.records[kind][id]; ok {
			out[id] = rec
		}
	}
	return out, nil
}

func catalogWith(kind domain.ReferenceKind, recs ...contracts.ReferenceRecord) *fakeCatalog {
	f := &fakeCatalog{records: map[domain.ReferenceKind]map[string]contracts.ReferenceRecord{
		domain.ReferenceKindServiceType:    {},
		domain.ReferenceKindServicePackage: {},
	}}
	for _, rec := range recs {
		f.records[kind][rec.ID] = rec
	}
	return f
}

func mustRef(t *testing.T, kind domain.ReferenceKind, id string) domain.ItemReference {
	t.Helper()
	ref, err := domain.NewItemReference(kind, id)
	require.NoError(t, err)
	return ref
}

func TestValidate_AllActive(t *testing.T) {
	id := uuid.New().String()
	cat := catalogWith(domain.ReferenceKindServiceType,
		contracts.ReferenceRecord{ID: id, Code: "ST-1", Status: "active"})
	v := New(cat)

	err := v.Validate(context.Background(), nil, []domain.ItemReference{
		mustRef(t, domain.ReferenceKindServiceType, id),
	})
	assert.NoError(t, err)
}

func TestValidate_BlankID(t *testing.T) {
	v := New(catalogWith(domain.ReferenceKindServiceType))

	err := v.Validate(context.Background(), nil, []domain.ItemReference{
		mustRef(t, domain.ReferenceKindServiceType, "   "),
	})
	assert.True(t, errors.Is(err, domain.ErrReferenceNotFound))
}

func TestValidate_MalformedID(t *testing.T) {
	v := New(catalogWith(domain.ReferenceKindServiceType))

	err := v.Validate(context.Background(), nil, []domain.ItemReference{
		mustRef(t, domain.ReferenceKindServiceType, "not-a-uuid"),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidReferenceID))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestValidate_Missing(t *testing.T) {
	known := uuid.New().String()
	unknown := uuid.New().String()
	cat := catalogWith(domain.ReferenceKindServiceType,
		contracts.ReferenceRecord{ID: known, Code: "ST-1", Status: "active"})
	v := New(cat)

	err := v.Validate(context.Background(), nil, []domain.ItemReference{
		mustRef(t, domain.ReferenceKindServiceType, known),
		mustRef(t, domain.ReferenceKindServiceType, unknown),
	})
	require.True(t, errors.Is(err, domain.ErrReferenceNotFound))
	assert.Contains(t, err.Error(), unknown)
}

func TestValidate_Inactive(t *testing.T) {
	id := uuid.New().String()
	cat := catalogWith(domain.ReferenceKindServicePackage,
		contracts.ReferenceRecord{ID: id, Code: "SP-1", Status: "retired"})
	v := New(cat)

	err := v.Validate(context.Background(), nil, []domain.ItemReference{
		mustRef(t, domain.ReferenceKindServicePackage, id),
	})
	assert.True(t, errors.Is(err, domain.ErrReferenceNotActive))
	assert.Equal(t, domain.KindReferenceInactive, domain.KindOf(err))
}

func TestValidate_DuplicatesFetchedOnce(t *testing.T) {
	id := uuid.New().String()
	cat := catalogWith(domain.ReferenceKindServiceType,
		contracts.ReferenceRecord{ID: id, Code: "ST-1", Status: "active"})
	v := New(cat)

	err := v.Validate(context.Background(), nil, []domain.ItemReference{
		mustRef(t, domain.ReferenceKindServiceType, id),
		mustRef(t, domain.ReferenceKindServiceType, id),
		mustRef(t, domain.ReferenceKindServiceType, id),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cat.fetches, "one batch fetch per kind")
}

func TestResolve_ReturnsCodesKeyedByReference(t *testing.T) {
	stID := uuid.New().String()
	spID := uuid.New().String()

	cat := catalogWith(domain.ReferenceKindServiceType,
		contracts.ReferenceRecord{ID: stID, Code: "ST-9", Status: "active"})
	cat.records[domain.ReferenceKindServicePackage][spID] =
		contracts.ReferenceRecord{ID: spID, Code: "SP-3", Status: "active"}
	v := New(cat)

	refs := []domain.ItemReference{
		mustRef(t, domain.ReferenceKindServiceType, stID),
		mustRef(t, domain.ReferenceKindServicePackage, spID),
	}
	resolved, err := v.Resolve(context.Background(), nil, refs)
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, "ST-9", resolved[refs[0].Key()].Code)
	assert.Equal(t, "SP-3", resolved[refs[1].Key()].Code)
}

func TestResolve_InactiveFails(t *testing.T) {
	id := uuid.New().String()
	cat := catalogWith(domain.ReferenceKindServiceType,
		contracts.ReferenceRecord{ID: id, Code: "ST-1", Status: "draft"})
	v := New(cat)

	_, err := v.Resolve(context.Background(), nil, []domain.ItemReference{
		mustRef(t, domain.ReferenceKindServiceType, id),
	})
	assert.True(t, errors.Is(err, domain.ErrReferenceNotActive))
}
