package domain

import (
	"context"
	"errors"
	"time"
)

// OrderStatus enumerates order states.
type OrderStatus string

const (
	StatusOrdered   OrderStatus = "ORDER"
	StatusCancelled OrderStatus = "CANCEL"
)

var (
	ErrNoOrderLines          = errors.New("order needs at least one line")
	ErrInvalidCount          = errors.New("line count must be at least one")
	ErrDeliveryCompleted     = errors.New("a completed delivery cannot be cancelled")
	ErrOrderAlreadyCancelled = errors.New("order is already cancelled")
)

// OrderItem is one line of an order. It references the catalog item and
// freezes the price agreed at order time. OrderID is navigational only.
type OrderItem struct {
	ID         int64
	OrderID    int64
	Item       *Ref[Item]
	OrderPrice int
	Count      int
}

// NewOrderItem is the only constructor path for a line. Taking the stock
// here keeps stock movement in one place: constructing a line is what
// reserves the goods.
func NewOrderItem(item *Item, orderPrice, count int) (*OrderItem, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
	if err := item.RemoveStock(count); err != nil {
		return nil, err
	}
	return &OrderItem{
		Item:       ResolvedRef(item.ID, item),
		OrderPrice: orderPrice,
		Count:      count,
	}, nil
}

// Subtotal is the line total.
func (oi *OrderItem) Subtotal() int {
	return oi.OrderPrice * oi.Count
}

// restock returns the line's count to the referenced item.
func (oi *OrderItem) restock(ctx context.Context) error {
	item, err := oi.Item.Get(ctx)
	if err != nil {
		return err
	}
	item.AddStock(oi.Count)
	return nil
}

// Order is the aggregate root. It exclusively owns its delivery and lines
// and cascades their lifecycle; the member is referenced, never owned.
type Order struct {
	ID        int64
	Member    *Ref[Member]
	Delivery  *Ref[Delivery]
	Items     *List[OrderItem]
	OrderDate time.Time
	Status    OrderStatus
}

// NewOrder wires a fresh aggregate: status ORDER, order date now. Stock has
// already been taken by the lines; creation itself touches no stock.
func NewOrder(member *Member, delivery *Delivery, items ...*OrderItem) (*Order, error) {
	if member == nil {
		return nil, errors.New("order needs a member")
	}
	if delivery == nil {
		return nil, errors.New("order needs a delivery")
	}
	if len(items) == 0 {
		return nil, ErrNoOrderLines
	}
	return &Order{
		Member:    ResolvedRef(member.ID, member),
		Delivery:  ResolvedRef(delivery.ID, delivery),
		Items:     ResolvedList(items),
		OrderDate: time.Now(),
		Status:    StatusOrdered,
	}, nil
}

// Cancel flips the order to CANCEL and restores every line's count to its
// item. Orders whose delivery already completed cannot be cancelled, and a
// second cancel fails rather than restoring stock twice.
func (o *Order) Cancel(ctx context.Context) error {
	delivery, err := o.Delivery.Get(ctx)
	if err != nil {
		return err
	}
	if delivery.Status == DeliveryCompleted {
		return ErrDeliveryCompleted
	}
	if o.Status == StatusCancelled {
		return ErrOrderAlreadyCancelled
	}
	items, err := o.Items.Get(ctx)
	if err != nil {
		return err
	}
	for _, line := range items {
		if err := line.restock(ctx); err != nil {
			return err
		}
	}
	o.Status = StatusCancelled
	return nil
}

// TotalPrice derives the order total from its lines. It is never stored.
func (o *Order) TotalPrice(ctx context.Context) (int, error) {
	items, err := o.Items.Get(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, line := range items {
		total += line.Subtotal()
	}
	return total, nil
}
