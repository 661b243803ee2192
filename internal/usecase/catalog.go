package usecase

import (
	"context"
	"fmt"

	domain "github.com/FernandoNarvaez1904/ecommerce-expo/internal/entity"
	"github.com/shopspring/decimal"
)

// Catalog serves item reads through the cache and applies catalog edits.
// It never touches order state; stock consumed by orders goes through the
// OrderEngine's transactions instead.
type Catalog struct {
	items ItemRepo
	cache CatalogCache // optional
}

func NewCatalog(items ItemRepo, cache CatalogCache) *Catalog {
	return &Catalog{items: items, cache: cache}
}

func (c *Catalog) List(ctx context.Context) ([]domain.Item, error) {
	return c.items.All(ctx)
}

func (c *Catalog) Get(ctx context.Context, id int64) (*domain.Item, error) {
	if c.cache != nil {
		if it, err := c.cache.GetItem(ctx, id); err == nil && it != nil {
			return it, nil
		}
	}
	it, err := c.items.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		_ = c.cache.SetItem(ctx, it)
	}
	return it, nil
}

func (c *Catalog) Create(ctx context.Context, it domain.Item) (*domain.Item, error) {
	if err := it.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := c.items.Insert(ctx, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// ItemPatch carries the optional fields of an item update; nil means
// leave the field alone.
type ItemPatch struct {
	Name        *string
	Price       *decimal.Decimal
	Stock       *int64
	Description *string
	CategoryID  *int64
}

func (c *Catalog) Update(ctx context.Context, id int64, patch ItemPatch) (*domain.Item, error) {
	it, err := c.items.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.Price != nil {
		it.Price = *patch.Price
	}
	if patch.Stock != nil {
		it.Stock = *patch.Stock
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.CategoryID != nil {
		it.CategoryID = patch.CategoryID
	}
	if err := it.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := c.items.Update(ctx, it); err != nil {
		return nil, err
	}
	if c.cache != nil {
		_ = c.cache.Invalidate(ctx, it.ID)
	}
	return it, nil
}

// ApplyStockAdjustment applies a relative warehouse delta to an item and
// drops its cache entry. Missing items are reported as ErrNotFound so the
// feed can decide whether to retry.
func (c *Catalog) ApplyStockAdjustment(ctx context.Context, msg StockAdjustedMsg) (*domain.Item, error) {
	if msg.ItemID <= 0 {
		return nil, fmt.Errorf("%w: item id must be positive", ErrValidation)
	}
	it, err := c.items.AdjustStock(ctx, msg.ItemID, msg.Delta)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		_ = c.cache.Invalidate(ctx, it.ID)
	}
	return it, nil
}
