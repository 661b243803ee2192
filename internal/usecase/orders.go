package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/FernandoNarvaez1904/ecommerce-expo/internal/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineRequest is one submitted cart line: the item and the quantity the
// client settled on.
type LineRequest struct {
	ItemID   int64
	Quantity int64
}

// OrderEngine owns every order status change and the stock adjustment each
// transition implies. All writes happen inside a single store transaction;
// the engine itself holds no locks beyond what the store provides.
type OrderEngine struct {
	store  Store
	cache  CatalogCache   // optional
	events EventPublisher // optional
}

func NewOrderEngine(store Store, cache CatalogCache, events EventPublisher) *OrderEngine {
	return &OrderEngine{store: store, cache: cache, events: events}
}

// Place converts a submitted cart into a durable order.
//
// Within one transaction it locks the live item rows, snapshots name/price
// and the requested quantity for every id that resolved (unresolved ids are
// skipped), inserts the order as Placed with the client-declared total, and
// decrements each snapshotted item's stock by the snapshot quantity.
//
// The requested quantity is NOT re-checked against live stock here; the
// client-side reducer is expected to have clamped already. A stale or
// concurrent submission can therefore drive stock negative. Known gap,
// kept as-is rather than silently tightened.
func (e *OrderEngine) Place(ctx context.Context, caller domain.Caller, total decimal.Decimal, lines []LineRequest) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one line", ErrValidation)
	}
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: total must be non-negative", ErrValidation)
	}
	for _, ln := range lines {
		if ln.ItemID <= 0 {
			return nil, fmt.Errorf("%w: item id must be positive", ErrValidation)
		}
		if ln.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must be non-negative", ErrValidation)
		}
	}

	quantities := make(map[int64]int64, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, ln := range lines {
		if _, seen := quantities[ln.ItemID]; !seen {
			ids = append(ids, ln.ItemID)
		}
		quantities[ln.ItemID] = ln.Quantity
	}

	var placed *domain.Order
	err := e.store.WithinTx(ctx, func(tx Tx) error {
		items, err := tx.ItemsForUpdate(ctx, ids)
		if err != nil {
			return err
		}

		order := &domain.Order{
			ID:        uuid.NewString(),
			UserID:    caller.ID,
			Status:    domain.StatusPlaced,
			Total:     total,
			CreatedAt: time.Now().UTC(),
		}
		for _, it := range items {
			order.Items = append(order.Items, domain.OrderItem{
				ItemID:   it.ID,
				Name:     it.Name,
				Price:    it.Price,
				Quantity: quantities[it.ID],
			})
		}

		if err := tx.InsertOrder(ctx, order); err != nil {
			return err
		}
		for i, it := range items {
			if err := tx.UpdateItemStock(ctx, it.ID, it.Stock-order.Items[i].Quantity); err != nil {
				return err
			}
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, storeFailure(err)
	}

	e.afterTransition(ctx, placed, ids)
	return placed, nil
}

// Cancel moves a Placed order to Cancelled and restores stock for each
// line whose item still exists; lines referencing a deleted item are
// skipped, not fatal. Allowed for the order's owner or an admin.
func (e *OrderEngine) Cancel(ctx context.Context, caller domain.Caller, orderID string) (*domain.Order, error) {
	var cancelled *domain.Order
	var touched []int64
	err := e.store.WithinTx(ctx, func(tx Tx) error {
		order, err := tx.OrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if !caller.CanCancel(order) {
			return fmt.Errorf("%w: cannot cancel an order that is not yours", ErrForbidden)
		}
		if order.Status != domain.StatusPlaced {
			return fmt.Errorf("%w: only Placed orders can be cancelled", ErrForbidden)
		}

		if err := tx.UpdateOrderStatus(ctx, order.ID, domain.StatusCancelled); err != nil {
			return err
		}

		ids := make([]int64, 0, len(order.Items))
		for _, line := range order.Items {
			ids = append(ids, line.ItemID)
		}
		items, err := tx.ItemsForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		stockByID := make(map[int64]int64, len(items))
		for _, it := range items {
			stockByID[it.ID] = it.Stock
		}
		for _, line := range order.Items {
			stock, ok := stockByID[line.ItemID]
			if !ok {
				continue // item deleted since the order was placed
			}
			if err := tx.UpdateItemStock(ctx, line.ItemID, stock+line.Quantity); err != nil {
				return err
			}
			touched = append(touched, line.ItemID)
		}

		order.Status = domain.StatusCancelled
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, storeFailure(err)
	}

	e.afterTransition(ctx, cancelled, touched)
	return cancelled, nil
}

// Complete moves a Placed order to Completed. Admin only. Stock was
// consumed at placement, so no adjustment happens here.
func (e *OrderEngine) Complete(ctx context.Context, caller domain.Caller, orderID string) (*domain.Order, error) {
	var completed *domain.Order
	err := e.store.WithinTx(ctx, func(tx Tx) error {
		order, err := tx.OrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if !caller.CanComplete() {
			return fmt.Errorf("%w: only admins can complete orders", ErrForbidden)
		}
		if order.Status != domain.StatusPlaced {
			return fmt.Errorf("%w: only Placed orders can be completed", ErrForbidden)
		}

		if err := tx.UpdateOrderStatus(ctx, order.ID, domain.StatusCompleted); err != nil {
			return err
		}
		order.Status = domain.StatusCompleted
		completed = order
		return nil
	})
	if err != nil {
		return nil, storeFailure(err)
	}

	e.afterTransition(ctx, completed, nil)
	return completed, nil
}

// ListMine returns the caller's orders, or every order when the caller is
// an admin, newest first.
func (e *OrderEngine) ListMine(ctx context.Context, caller domain.Caller) ([]domain.Order, error) {
	if caller.IsAdmin {
		orders, err := e.store.AllOrders(ctx)
		if err != nil {
			return nil, storeFailure(err)
		}
		return orders, nil
	}
	orders, err := e.store.OrdersByUser(ctx, caller.ID)
	if err != nil {
		return nil, storeFailure(err)
	}
	return orders, nil
}

// afterTransition does the best-effort post-commit work: lifecycle event,
// cache invalidation for items whose stock moved. Failures here never undo
// the committed transition.
func (e *OrderEngine) afterTransition(ctx context.Context, o *domain.Order, touchedItems []int64) {
	if e.events != nil {
		_ = e.events.PublishOrderEvent(ctx, OrderEventMsg{
			OrderID:    o.ID,
			UserID:     o.UserID,
			Status:     string(o.Status),
			Total:      o.Total.String(),
			OccurredAt: time.Now().UTC(),
		})
	}
	if e.cache != nil && len(touchedItems) > 0 {
		_ = e.cache.Invalidate(ctx, touchedItems...)
	}
}

// storeFailure keeps taxonomy errors intact and folds everything else into
// ErrConflict: the transaction rolled back fully, the caller may retry.
func storeFailure(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrConflict, err)
}
