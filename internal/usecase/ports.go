package usecase

import (
	"context"

	domain "github.com/FernandoNarvaez1904/ecommerce-expo/internal/entity"
)

// Store opens transactions against the item/order tables and serves
// consistent read-only queries.
type Store interface {
	// WithinTx runs fn inside one transaction: commit if fn returns nil,
	// full rollback otherwise. Item reads inside fn take row locks, so
	// read-then-write on stock is isolated from concurrent transactions.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error

	OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	AllOrders(ctx context.Context) ([]domain.Order, error)
}

// Tx is the per-transaction surface handed to WithinTx callbacks.
type Tx interface {
	// ItemsForUpdate reads and locks the item rows for ids. Ids without a
	// row are simply absent from the result, not an error.
	ItemsForUpdate(ctx context.Context, ids []int64) ([]domain.Item, error)
	UpdateItemStock(ctx context.Context, itemID, newStock int64) error

	InsertOrder(ctx context.Context, o *domain.Order) error
	// OrderForUpdate reads and locks one order with its lines.
	// Returns ErrNotFound when absent.
	OrderForUpdate(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, to domain.Status) error
}

// ItemRepo is the non-transactional catalog surface.
type ItemRepo interface {
	All(ctx context.Context) ([]domain.Item, error)
	ByID(ctx context.Context, id int64) (*domain.Item, error)
	Insert(ctx context.Context, it *domain.Item) error
	Update(ctx context.Context, it *domain.Item) error
	// AdjustStock applies a relative delta in its own transaction.
	// Used by the warehouse event feed, not by the order engine.
	AdjustStock(ctx context.Context, itemID, delta int64) (*domain.Item, error)
}

// CatalogCache fronts item reads. Get returns (nil, nil) on a miss.
type CatalogCache interface {
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	SetItem(ctx context.Context, it *domain.Item) error
	Invalidate(ctx context.Context, ids ...int64) error
}

// EventPublisher emits order lifecycle events after a commit. Best effort:
// a publish failure never rolls the transition back.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, msg OrderEventMsg) error
}
