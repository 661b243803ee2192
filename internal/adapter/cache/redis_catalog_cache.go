package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	domain "github.com/FernandoNarvaez1904/ecommerce-expo/internal/entity"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/usecase"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RedisCatalogCache fronts item-by-id reads. Entries are dropped whenever
// catalog edits or stock-moving order transitions touch the item, so a
// cached row is at worst ttl-stale and never survives a known mutation.
type RedisCatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCatalogCache(rdb *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{rdb: rdb, ttl: ttl}
}

type cachedItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Stock       int64  `json:"stock"`
	Description string `json:"description,omitempty"`
	CategoryID  *int64 `json:"categoryId,omitempty"`
}

func itemKey(id int64) string {
	return "catalog:item:" + strconv.FormatInt(id, 10)
}

func (c *RedisCatalogCache) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	raw, err := c.rdb.Get(ctx, itemKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ci cachedItem
	if err := json.Unmarshal(raw, &ci); err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(ci.Price)
	if err != nil {
		return nil, err
	}
	return &domain.Item{
		ID:          ci.ID,
		Name:        ci.Name,
		Price:       price,
		Stock:       ci.Stock,
		Description: ci.Description,
		CategoryID:  ci.CategoryID,
	}, nil
}

func (c *RedisCatalogCache) SetItem(ctx context.Context, it *domain.Item) error {
	raw, err := json.Marshal(cachedItem{
		ID:          it.ID,
		Name:        it.Name,
		Price:       it.Price.String(),
		Stock:       it.Stock,
		Description: it.Description,
		CategoryID:  it.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, itemKey(it.ID), raw, c.ttl).Err()
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, itemKey(id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}

var _ usecase.CatalogCache = (*RedisCatalogCache)(nil)
