package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	domain "github.com/FernandoNarvaez1904/ecommerce-expo/internal/entity"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/usecase"
)

// MySQLStore is the transactional store behind the order engine. Row
// isolation comes from SELECT ... FOR UPDATE inside WithinTx, so two
// concurrent placements against the same low-stock item serialize instead
// of both reading the pre-decrement value.
type MySQLStore struct{ db *sql.DB }

func NewMySQLStore(db *sql.DB) *MySQLStore { return &MySQLStore{db: db} }

func (s *MySQLStore) WithinTx(ctx context.Context, fn func(tx usecase.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&mysqlTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *MySQLStore) OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.queryOrders(ctx, `
SELECT id,user_id,status,total,created_at
FROM orders WHERE user_id=? ORDER BY created_at DESC`, userID)
}

func (s *MySQLStore) AllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.queryOrders(ctx, `
SELECT id,user_id,status,total,created_at
FROM orders ORDER BY created_at DESC`)
}

func (s *MySQLStore) queryOrders(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	index := map[string]int{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.CreatedAt); err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]any, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	lineRows, err := s.db.QueryContext(ctx, `
SELECT order_id,item_id,name,price,quantity
FROM order_items WHERE order_id IN (`+placeholders(len(ids))+`)`, ids...)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var orderID string
		var line domain.OrderItem
		if err := lineRows.Scan(&orderID, &line.ItemID, &line.Name, &line.Price, &line.Quantity); err != nil {
			return nil, err
		}
		i := index[orderID]
		orders[i].Items = append(orders[i].Items, line)
	}
	return orders, lineRows.Err()
}

var _ usecase.Store = (*MySQLStore)(nil)

type mysqlTx struct{ tx *sql.Tx }

func (t *mysqlTx) ItemsForUpdate(ctx context.Context, ids []int64) ([]domain.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	rows, err := t.tx.QueryContext(ctx, `
SELECT id,name,price,stock,description,category_id
FROM items WHERE id IN (`+placeholders(len(ids))+`) FOR UPDATE`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (t *mysqlTx) UpdateItemStock(ctx context.Context, itemID, newStock int64) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE items SET stock=? WHERE id=?`, newStock, itemID)
	return err
}

func (t *mysqlTx) InsertOrder(ctx context.Context, o *domain.Order) error {
	_, err := t.tx.ExecContext(ctx, `
INSERT INTO orders (id,user_id,status,total,created_at)
VALUES (?,?,?,?,?)`, o.ID, o.UserID, o.Status, o.Total, o.CreatedAt)
	if err != nil {
		return err
	}
	for _, line := range o.Items {
		if _, err := t.tx.ExecContext(ctx, `
INSERT INTO order_items (order_id,item_id,name,price,quantity)
VALUES (?,?,?,?,?)`, o.ID, line.ItemID, line.Name, line.Price, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (t *mysqlTx) OrderForUpdate(ctx context.Context, id string) (*domain.Order, error) {
	row := t.tx.QueryRowContext(ctx, `
SELECT id,user_id,status,total,created_at
FROM orders WHERE id=? FOR UPDATE`, id)
	var o domain.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}

	rows, err := t.tx.QueryContext(ctx, `
SELECT item_id,name,price,quantity
FROM order_items WHERE order_id=?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var line domain.OrderItem
		if err := rows.Scan(&line.ItemID, &line.Name, &line.Price, &line.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, line)
	}
	return &o, rows.Err()
}

func (t *mysqlTx) UpdateOrderStatus(ctx context.Context, id string, to domain.Status) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE orders SET status=? WHERE id=?`, to, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

var _ usecase.Tx = (*mysqlTx)(nil)

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
