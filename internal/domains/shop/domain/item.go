package domain

import "errors"

// ItemKind discriminates item variants; books are the only variant sold today.
type ItemKind string

const KindBook ItemKind = "BOOK"

var (
	ErrInsufficientStock = errors.New("not enough stock")
	ErrEmptyItemName     = errors.New("item name is required")
	ErrNegativePrice     = errors.New("item price must not be negative")
)

// Item is a sellable catalog entry. Price is in the minor currency unit.
// Author and ISBN are populated for the book variant only.
type Item struct {
	ID            int64
	Kind          ItemKind
	Name          string
	Price         int
	StockQuantity int
	Author        string
	ISBN          string
}

// NewBook constructs a book item.
func NewBook(name string, price, stockQuantity int, author, isbn string) (*Item, error) {
	if name == "" {
		return nil, ErrEmptyItemName
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}
	return &Item{
		Kind:          KindBook,
		Name:          name,
		Price:         price,
		StockQuantity: stockQuantity,
		Author:        author,
		ISBN:          isbn,
	}, nil
}

// AddStock restores quantity, e.g. when an order is cancelled. There is no
// upper bound.
func (i *Item) AddStock(quantity int) {
	i.StockQuantity += quantity
}

// RemoveStock decrements available stock. The quantity must never go
// negative; callers treat failure as fatal for the surrounding operation.
func (i *Item) RemoveStock(quantity int) error {
	rest := i.StockQuantity - quantity
	if rest < 0 {
		return ErrInsufficientStock
	}
	i.StockQuantity = rest
	return nil
}
