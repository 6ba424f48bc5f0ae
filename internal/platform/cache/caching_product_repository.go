// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"shop_backend/internal/feature/catalog/domain/entity"
	"shop_backend/internal/feature/catalog/usecase"
)

// CachingProductRepository decorates a ProductRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
//
// Only the catalog browsing reads (List, FindByUUID) are cached; FindByUUIDs
// always hits the database because the orders feature uses it as the stock
// snapshot for order validation and must see fresh values.
type CachingProductRepository struct {
	inner     usecase.ProductRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ProductRepository = (*CachingProductRepository)(nil)

// NewCachingProductRepository decorates a ProductRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "products".
func NewCachingProductRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProductRepository, namespace string) *CachingProductRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "products"
	}
	return &CachingProductRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List retrieves all products, checking cache first then falling back to the database.
func (c *CachingProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Product
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByUUID retrieves one product, checking cache first then falling back to the database.
func (c *CachingProductRepository) FindByUUID(ctx context.Context, uuid string) (*entity.Product, error) {
	if c.rdb == nil {
		return c.inner.FindByUUID(ctx, uuid)
	}

	key := c.productKey(uuid)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Product
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByUUIDs always reads from the underlying repository.
// Order validation depends on fresh stock values here.
func (c *CachingProductRepository) FindByUUIDs(ctx context.Context, uuids []string) (map[string]entity.Product, error) {
	return c.inner.FindByUUIDs(ctx, uuids)
}

// UpsertBatch writes products and invalidates related cache entries.
func (c *CachingProductRepository) UpsertBatch(ctx context.Context, products []entity.Product) error {
	// First upsert to the underlying repository (MySQL)
	if err := c.inner.UpsertBatch(ctx, products); err != nil {
		return err
	}
	// Exit early if Redis is not configured or there are no products
	if c.rdb == nil || len(products) == 0 {
		return nil
	}

	// Invalidate the whole namespace (listing plus per-product entries)
	_ = c.deleteByPattern(ctx, c.namespace+":*") // Best effort: don't fail if cache deletion fails
	return nil
}

// listKey generates the cache key for the full product listing.
func (c *CachingProductRepository) listKey() string {
	return fmt.Sprintf("%s:list", c.namespace)
}

// productKey generates the cache key for a single product.
func (c *CachingProductRepository) productKey(uuid string) string {
	return fmt.Sprintf("%s:uuid:%s", c.namespace, safe(uuid))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingProductRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	// Simple escaping of characters that are problematic for Redis keys
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
