// Package postgres persists the shop schema in PostgreSQL using GORM.
package postgres

import (
	"time"

	"gorm.io/gorm"
)

// memberRow maps members. The unique index on name backs the join-time
// duplicate check against concurrent registrations.
type memberRow struct {
	ID      int64  `gorm:"primaryKey;column:id"`
	Name    string `gorm:"column:name;uniqueIndex"`
	City    string `gorm:"column:city"`
	Street  string `gorm:"column:street"`
	Zipcode string `gorm:"column:zipcode"`
}

func (memberRow) TableName() string { return "members" }

// itemRow maps items; dtype discriminates variants (BOOK).
type itemRow struct {
	ID            int64  `gorm:"primaryKey;column:id"`
	Dtype         string `gorm:"column:dtype;type:varchar(32);index"`
	Name          string `gorm:"column:name"`
	Price         int    `gorm:"column:price"`
	StockQuantity int    `gorm:"column:stock_quantity"`
	Author        string `gorm:"column:author"`
	ISBN          string `gorm:"column:isbn"`
}

func (itemRow) TableName() string { return "items" }

// orderRow maps orders.
type orderRow struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	MemberID   int64     `gorm:"column:member_id;index"`
	DeliveryID int64     `gorm:"column:delivery_id"`
	OrderDate  time.Time `gorm:"column:order_date"`
	Status     string    `gorm:"column:status;type:varchar(32);index"`
}

func (orderRow) TableName() string { return "orders" }

// deliveryRow maps deliveries; order_id is the navigational back-reference.
type deliveryRow struct {
	ID      int64  `gorm:"primaryKey;column:id"`
	OrderID int64  `gorm:"column:order_id;index"`
	City    string `gorm:"column:city"`
	Street  string `gorm:"column:street"`
	Zipcode string `gorm:"column:zipcode"`
	Status  string `gorm:"column:status;type:varchar(32)"`
}

func (deliveryRow) TableName() string { return "deliveries" }

// orderItemRow maps order lines.
type orderItemRow struct {
	ID         int64 `gorm:"column:id;primaryKey"`
	OrderID    int64 `gorm:"column:order_id;index"`
	ItemID     int64 `gorm:"column:item_id;index"`
	OrderPrice int   `gorm:"column:order_price"`
	Count      int   `gorm:"column:count"`
}

func (orderItemRow) TableName() string { return "order_items" }

// Migrate applies the shop schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&memberRow{},
		&itemRow{},
		&orderRow{},
		&deliveryRow{},
		&orderItemRow{},
	)
}
