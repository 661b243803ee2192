package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/FernandoNarvaez1904/ecommerce-expo/internal/entity"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/usecase"
)

type MySQLItemRepo struct{ db *sql.DB }

func NewMySQLItemRepo(db *sql.DB) *MySQLItemRepo { return &MySQLItemRepo{db: db} }

func (r *MySQLItemRepo) All(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,name,price,stock,description,category_id FROM items ORDER BY id`)
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

func (r *MySQLItemRepo) ByID(ctx context.Context, id int64) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,name,price,stock,description,category_id FROM items WHERE id=?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrNotFound
	}
	return it, err
}

func (r *MySQLItemRepo) Insert(ctx context.Context, it *domain.Item) error {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO items (name,price,stock,description,category_id)
VALUES (?,?,?,?,?)`, it.Name, it.Price, it.Stock, nullString(it.Description), it.CategoryID)
	if err != nil {
		return err
	}
	it.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLItemRepo) Update(ctx context.Context, it *domain.Item) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE items SET name=?, price=?, stock=?, description=?, category_id=?
WHERE id=?`, it.Name, it.Price, it.Stock, nullString(it.Description), it.CategoryID, it.ID)
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

// AdjustStock applies a relative delta in one statement; the row lock taken
// by the UPDATE is the only coordination needed with in-flight order
// transactions.
func (r *MySQLItemRepo) AdjustStock(ctx context.Context, itemID, delta int64) (*domain.Item, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE items SET stock=stock+? WHERE id=?`, delta, itemID)
	if err != nil {
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, usecase.ErrNotFound
	}
	return r.ByID(ctx, itemID)
}

var _ usecase.ItemRepo = (*MySQLItemRepo)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*domain.Item, error) {
	var it domain.Item
	var desc sql.NullString
	var cat sql.NullInt64
	if err := s.Scan(&it.ID, &it.Name, &it.Price, &it.Stock, &desc, &cat); err != nil {
		return nil, err
	}
	it.Description = desc.String
	if cat.Valid {
		it.CategoryID = &cat.Int64
	}
	return &it, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
