package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a row lookup resolves nothing.
var ErrNotFound = errors.New("record not found")

// OrderFilter narrows order searches. Status and MemberName are optional and
// AND-combined; a blank value drops the predicate entirely. MemberName is a
// case-sensitive substring match. Limit caps the result set and is always
// set by callers.
type OrderFilter struct {
	Status     string
	MemberName string
	Limit      int
}

// OrderMemberDeliveryRow is the join-fetch row: one order together with its
// member and delivery columns, one row per order.
type OrderMemberDeliveryRow struct {
	Order    OrderRecord
	Member   MemberRecord
	Delivery DeliveryRecord
}

// OrderDetailRow extends the join fetch to the to-many lines: the order rows
// repeat once per line (the one-to-many expansion the hydrator collapses),
// and each row carries the line plus its item.
type OrderDetailRow struct {
	Order    OrderRecord
	Member   MemberRecord
	Delivery DeliveryRecord
	Line     OrderItemRecord
	Item     ItemRecord
}

// OrderSummary is the direct projection: exactly the fields of the simple
// order view, shaped in the query itself. It bypasses entity
// materialization and is bound to that one consumer.
type OrderSummary struct {
	OrderID    int64
	MemberName string
	OrderDate  time.Time
	Status     string
	Address    Address
}

// Address mirrors the embedded value columns in projection results.
type Address struct {
	City    string
	Street  string
	Zipcode string
}

// Store opens storage sessions. One session backs exactly one unit of work.
type Store interface {
	Begin(ctx context.Context) (Session, error)
}

// Session is one logical transaction against storage. Every method is a
// single storage round trip; inserts assign the record's ID in place.
// Writes are not visible outside the session until Commit.
type Session interface {
	InsertMember(ctx context.Context, rec *MemberRecord) error
	UpdateMember(ctx context.Context, rec *MemberRecord) error
	GetMember(ctx context.Context, id int64) (*MemberRecord, error)
	ListMembers(ctx context.Context) ([]*MemberRecord, error)
	FindMembersByName(ctx context.Context, name string) ([]*MemberRecord, error)

	InsertItem(ctx context.Context, rec *ItemRecord) error
	UpdateItem(ctx context.Context, rec *ItemRecord) error
	GetItem(ctx context.Context, id int64) (*ItemRecord, error)
	ListItems(ctx context.Context) ([]*ItemRecord, error)

	InsertOrder(ctx context.Context, rec *OrderRecord) error
	UpdateOrder(ctx context.Context, rec *OrderRecord) error
	GetOrder(ctx context.Context, id int64) (*OrderRecord, error)

	InsertDelivery(ctx context.Context, rec *DeliveryRecord) error
	UpdateDelivery(ctx context.Context, rec *DeliveryRecord) error
	GetDelivery(ctx context.Context, id int64) (*DeliveryRecord, error)

	InsertOrderItem(ctx context.Context, rec *OrderItemRecord) error
	UpdateOrderItem(ctx context.Context, rec *OrderItemRecord) error
	ListOrderItemsByOrder(ctx context.Context, orderID int64) ([]*OrderItemRecord, error)

	// SearchOrders loads order rows only (the naive strategy's first and
	// single query).
	SearchOrders(ctx context.Context, filter OrderFilter) ([]*OrderRecord, error)
	// SearchOrdersWithMemberDelivery eagerly joins member and delivery.
	SearchOrdersWithMemberDelivery(ctx context.Context, filter OrderFilter) ([]*OrderMemberDeliveryRow, error)
	// SearchOrderDetails additionally joins the lines and their items;
	// order rows repeat per line.
	SearchOrderDetails(ctx context.Context, filter OrderFilter) ([]*OrderDetailRow, error)
	// SearchOrderSummaries selects the simple view directly.
	SearchOrderSummaries(ctx context.Context, filter OrderFilter) ([]*OrderSummary, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
