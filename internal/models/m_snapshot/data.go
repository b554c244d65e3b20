package m_snapshot

import (
	"time"

	"cloud.google.com/go/spanner"
)

// BuildInsertMap prepares the fields for a snapshot insertion. lines is a
// JSON document describing the frozen item tuples.
func BuildInsertMap(snapshotID, productID, name, code string, priceNum, priceDen int64, currency, lines string, generatedAt time.Time, generatedBy string) map[string]interface{} {
	return map[string]interface{}{
		ColSnapshotID:       snapshotID,
		ColProductID:        productID,
		ColName:             name,
		ColCode:             code,
		ColPriceNumerator:   priceNum,
		ColPriceDenominator: priceDen,
		ColCurrency:         currency,
		ColLines:            lines,
		ColGeneratedAt:      generatedAt,
		ColGeneratedBy:      generatedBy,
	}
}

// InsertMutation builds a spanner.Insert mutation for a snapshot.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for c, v := range values {
		cols = append(cols, c)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}
