// Package storage defines the flat row shapes and the session contract the
// unit of work drives. Adapters (postgres, memory) implement Store/Session;
// everything above deals in records, never in adapter types.
package storage

import "time"

// MemberRecord is the members row.
type MemberRecord struct {
	ID      int64
	Name    string
	City    string
	Street  string
	Zipcode string
}

// ItemRecord is the items row. Kind discriminates variants ("BOOK"); the
// author/ISBN columns are only populated for books.
type ItemRecord struct {
	ID            int64
	Kind          string
	Name          string
	Price         int
	StockQuantity int
	Author        string
	ISBN          string
}

// OrderRecord is the orders row.
type OrderRecord struct {
	ID         int64
	MemberID   int64
	DeliveryID int64
	OrderDate  time.Time
	Status     string
}

// DeliveryRecord is the deliveries row. OrderID is the back-reference
// column.
type DeliveryRecord struct {
	ID      int64
	OrderID int64
	City    string
	Street  string
	Zipcode string
	Status  string
}

// OrderItemRecord is the order_items row.
type OrderItemRecord struct {
	ID         int64
	OrderID    int64
	ItemID     int64
	OrderPrice int
	Count      int
}
