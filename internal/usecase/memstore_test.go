package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	domain "github.com/FernandoNarvaez1904/ecommerce-expo/internal/entity"
)

// memStore is an in-memory Store for tests. WithinTx works on a deep copy
// of the state and swaps it in only when the callback succeeds, so rollback
// semantics match the real store: a failed transaction leaves nothing behind.
type memStore struct {
	mu     sync.Mutex
	items  map[int64]domain.Item
	orders map[string]memOrder
	seq    int

	failOp string // name of the Tx method that should fail, for rollback tests
}

type memOrder struct {
	order domain.Order
	seq   int
}

func newMemStore(items ...domain.Item) *memStore {
	s := &memStore{
		items:  map[int64]domain.Item{},
		orders: map[string]memOrder{},
	}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func (s *memStore) WithinTx(_ context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		items:  cloneItems(s.items),
		orders: cloneOrders(s.orders),
		seq:    s.seq,
		failOp: s.failOp,
	}
	if err := fn(tx); err != nil {
		return err // work copy discarded
	}
	s.items = tx.items
	s.orders = tx.orders
	s.seq = tx.seq
	return nil
}

func (s *memStore) OrdersByUser(_ context.Context, userID string) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []memOrder
	for _, mo := range s.orders {
		if mo.order.UserID == userID {
			out = append(out, mo)
		}
	}
	return sortNewestFirst(out), nil
}

func (s *memStore) AllOrders(_ context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []memOrder
	for _, mo := range s.orders {
		out = append(out, mo)
	}
	return sortNewestFirst(out), nil
}

// item reads state under the store lock for assertions after commits.
func (s *memStore) item(id int64) (domain.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	return it, ok
}

func (s *memStore) setItem(it domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID] = it
}

func (s *memStore) deleteItem(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type memTx struct {
	items  map[int64]domain.Item
	orders map[string]memOrder
	seq    int
	failOp string
}

var errInjected = errors.New("injected store failure")

func (t *memTx) ItemsForUpdate(_ context.Context, ids []int64) ([]domain.Item, error) {
	if t.failOp == "ItemsForUpdate" {
		return nil, errInjected
	}
	var out []domain.Item
	for _, id := range ids {
		if it, ok := t.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (t *memTx) UpdateItemStock(_ context.Context, itemID, newStock int64) error {
	if t.failOp == "UpdateItemStock" {
		return errInjected
	}
	it, ok := t.items[itemID]
	if !ok {
		return ErrNotFound
	}
	it.Stock = newStock
	t.items[itemID] = it
	return nil
}

func (t *memTx) InsertOrder(_ context.Context, o *domain.Order) error {
	if t.failOp == "InsertOrder" {
		return errInjected
	}
	t.seq++
	t.orders[o.ID] = memOrder{order: cloneOrder(*o), seq: t.seq}
	return nil
}

func (t *memTx) OrderForUpdate(_ context.Context, id string) (*domain.Order, error) {
	if t.failOp == "OrderForUpdate" {
		return nil, errInjected
	}
	mo, ok := t.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o := cloneOrder(mo.order)
	return &o, nil
}

func (t *memTx) UpdateOrderStatus(_ context.Context, id string, to domain.Status) error {
	if t.failOp == "UpdateOrderStatus" {
		return errInjected
	}
	mo, ok := t.orders[id]
	if !ok {
		return ErrNotFound
	}
	mo.order.Status = to
	t.orders[id] = mo
	return nil
}

var (
	_ Store = (*memStore)(nil)
	_ Tx    = (*memTx)(nil)
)

func cloneItems(in map[int64]domain.Item) map[int64]domain.Item {
	out := make(map[int64]domain.Item, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneOrder(o domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

func cloneOrders(in map[string]memOrder) map[string]memOrder {
	out := make(map[string]memOrder, len(in))
	for k, v := range in {
		v.order = cloneOrder(v.order)
		out[k] = v
	}
	return out
}

func sortNewestFirst(in []memOrder) []domain.Order {
	sort.Slice(in, func(i, j int) bool {
		if !in[i].order.CreatedAt.Equal(in[j].order.CreatedAt) {
			return in[i].order.CreatedAt.After(in[j].order.CreatedAt)
		}
		return in[i].seq > in[j].seq
	})
	out := make([]domain.Order, 0, len(in))
	for _, mo := range in {
		out = append(out, mo.order)
	}
	return out
}

// recordingPublisher captures lifecycle events.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs []OrderEventMsg
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, msg OrderEventMsg) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

// recordingCache captures invalidations; Get always misses.
type recordingCache struct {
	mu          sync.Mutex
	set         []int64
	invalidated []int64
}

func (c *recordingCache) GetItem(context.Context, int64) (*domain.Item, error) { return nil, nil }

func (c *recordingCache) SetItem(_ context.Context, it *domain.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set = append(c.set, it.ID)
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, ids ...int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, ids...)
	return nil
}
