package search_products

import (
	"context"
	"strings"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	domain "github.com/murkotick/offering-catalog-service/internal/app/product/domain"
	"github.com/murkotick/offering-catalog-service/internal/app/product/dto"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// sortFields whitelists the column names a caller may sort by.
var sortFields = map[string]struct{}{
	"created_at": {},
	"updated_at": {},
	"name":       {},
	"code":       {},
	"status":     {},
}

// Handler validates and normalizes search filters before delegating to the
// read model. Defaults come from configuration, passed in at wiring time.
type Handler struct {
	readModel        contracts.ReadModel
	defaultSortField string
	defaultSortOrder string
}

func NewHandler(r contracts.ReadModel, defaultSortField, defaultSortOrder string) *Handler {
	return &Handler{
		readModel:        r,
		defaultSortField: defaultSortField,
		defaultSortOrder: defaultSortOrder,
	}
}

func (h *Handler) Execute(ctx context.Context, filter dto.SearchFilter) ([]*dto.ProductSummaryDTO, error) {
	if filter.SortField == "" {
		filter.SortField = h.defaultSortField
	}
	if filter.SortOrder == "" {
		filter.SortOrder = h.defaultSortOrder
	}
	if _, ok := sortFields[filter.SortField]; !ok {
		return nil, domain.ErrInvalidSortField
	}
	switch strings.ToLower(filter.SortOrder) {
	case "asc":
		filter.SortOrder = "ASC"
	case "desc":
		filter.SortOrder = "DESC"
	default:
		return nil, domain.ErrInvalidSortField
	}

	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return h.readModel.SearchProducts(ctx, filter)
}
