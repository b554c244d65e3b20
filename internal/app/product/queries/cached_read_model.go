package queries

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	"github.com/murkotick/offering-catalog-service/internal/app/product/dto"
)

// CachedReadModel is a read-through decorator for the single-product query.
// Entries expire by TTL only; reads are eventually consistent, so a short
// TTL bounds staleness without invalidation plumbing on the write path.
// Search results are never cached.
type CachedReadModel struct {
	inner contracts.ReadModel
	rdb   *goredis.Client
	ttl   time.Duration
}

func NewCachedReadModel(inner contracts.ReadModel, rdb *goredis.Client, ttl time.Duration) *CachedReadModel {
	return &CachedReadModel{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *CachedReadModel) GetProduct(ctx context.Context, productID string) (*dto.ProductDTO, error) {
	key := "product:" + productID

	data, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		var cached dto.ProductDTO
		if err := json.Unmarshal([]byte(data), &cached); err == nil {
			return &cached, nil
		}
		// corrupt entry, fall through to the source of truth
	} else if err != goredis.Nil {
		return nil, err
	}

	out, err := c.inner.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		// best effort; a failed cache write must not fail the read
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachedReadModel) SearchProducts(ctx context.Context, filter dto.SearchFilter) ([]*dto.ProductSummaryDTO, error) {
	return c.inner.SearchProducts(ctx, filter)
}
