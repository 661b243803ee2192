package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("item name must not be empty")
	ErrNegativePrice = errors.New("item price must be non-negative")
)

type Item struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Stock       int64
	Description string
	CategoryID  *int64
}

func (i *Item) Validate() error {
	if i.Name == "" {
		return ErrEmptyName
	}
	if i.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
