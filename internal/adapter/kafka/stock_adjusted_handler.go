package kafka

import (
	"context"
	"errors"

	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/usecase"
)

// StockAdjustedHandler applies warehouse stock deltas to the catalog.
type StockAdjustedHandler struct {
	Catalog *usecase.Catalog
}

func NewStockAdjustedHandler(catalog *usecase.Catalog) *StockAdjustedHandler {
	return &StockAdjustedHandler{Catalog: catalog}
}

func (h *StockAdjustedHandler) Handle(ctx context.Context, ev usecase.StockAdjustedMsg) error {
	_, err := h.Catalog.ApplyStockAdjustment(ctx, ev)
	if errors.Is(err, usecase.ErrNotFound) || errors.Is(err, usecase.ErrValidation) {
		// unknown item or malformed event: retrying cannot help, drop it
		return nil
	}
	return err
}
