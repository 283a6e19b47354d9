package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
)

// applyFilter appends the optional predicates; blank filters contribute
// nothing to the WHERE clause.
func applyFilter(q *gorm.DB, filter storage.OrderFilter) *gorm.DB {
	if filter.Status != "" {
		q = q.Where("orders.status = ?", filter.Status)
	}
	if filter.MemberName != "" {
		q = q.Where("m.name LIKE ?", "%"+filter.MemberName+"%")
	}
	return q
}

func (t *session) SearchOrders(_ context.Context, filter storage.OrderFilter) ([]*storage.OrderRecord, error) {
	q := t.tx.Model(&orderRow{}).
		Joins("JOIN members m ON m.id = orders.member_id").
		Order("orders.id")
	q = applyFilter(q, filter)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var rows []orderRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*storage.OrderRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, orderRecord(row))
	}
	return out, nil
}

// joinedRow is the flat scan target of the member/delivery join fetch.
type joinedRow struct {
	OrderID         int64
	MemberID        int64
	DeliveryID      int64
	OrderDate       time.Time
	OrderStatus     string
	MemberName      string
	MemberCity      string
	MemberStreet    string
	MemberZipcode   string
	DeliveryOrderID int64
	DeliveryCity    string
	DeliveryStreet  string
	DeliveryZipcode string
	DeliveryStatus  string
}

const joinedSelect = `orders.id AS order_id, orders.member_id, orders.delivery_id,
orders.order_date, orders.status AS order_status,
m.name AS member_name, m.city AS member_city, m.street AS member_street, m.zipcode AS member_zipcode,
d.order_id AS delivery_order_id, d.city AS delivery_city, d.street AS delivery_street,
d.zipcode AS delivery_zipcode, d.status AS delivery_status`

func (t *session) SearchOrdersWithMemberDelivery(_ context.Context, filter storage.OrderFilter) ([]*storage.OrderMemberDeliveryRow, error) {
	q := t.tx.Table("orders").
		Select(joinedSelect).
		Joins("JOIN members m ON m.id = orders.member_id").
		Joins("JOIN deliveries d ON d.id = orders.delivery_id").
		Order("orders.id")
	q = applyFilter(q, filter)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var rows []joinedRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*storage.OrderMemberDeliveryRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, &storage.OrderMemberDeliveryRow{
			Order:    row.order(),
			Member:   row.member(),
			Delivery: row.delivery(),
		})
	}
	return out, nil
}

// detailRow extends joinedRow with the line and item columns.
type detailRow struct {
	joinedRow
	LineID            int64
	LineOrderID       int64
	ItemID            int64
	OrderPrice        int
	Count             int
	ItemDtype         string
	ItemName          string
	ItemPrice         int
	ItemStockQuantity int
	ItemAuthor        string
	ItemISBN          string
}

const detailSelect = joinedSelect + `,
oi.id AS line_id, oi.order_id AS line_order_id, oi.item_id, oi.order_price, oi.count,
i.dtype AS item_dtype, i.name AS item_name, i.price AS item_price,
i.stock_quantity AS item_stock_quantity, i.author AS item_author, i.isbn AS item_isbn`

func (t *session) SearchOrderDetails(_ context.Context, filter storage.OrderFilter) ([]*storage.OrderDetailRow, error) {
	// The to-many join repeats order rows per line, so the cap must bound
	// orders, not rows: restrict to the capped order id set first.
	ids := t.tx.Table("orders").
		Select("orders.id").
		Joins("JOIN members m ON m.id = orders.member_id").
		Order("orders.id")
	ids = applyFilter(ids, filter)
	if filter.Limit > 0 {
		ids = ids.Limit(filter.Limit)
	}
	q := t.tx.Table("orders").
		Select(detailSelect).
		Joins("JOIN members m ON m.id = orders.member_id").
		Joins("JOIN deliveries d ON d.id = orders.delivery_id").
		Joins("JOIN order_items oi ON oi.order_id = orders.id").
		Joins("JOIN items i ON i.id = oi.item_id").
		Where("orders.id IN (?)", ids).
		Order("orders.id, oi.id")
	var rows []detailRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*storage.OrderDetailRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, &storage.OrderDetailRow{
			Order:    row.order(),
			Member:   row.member(),
			Delivery: row.delivery(),
			Line: storage.OrderItemRecord{
				ID:         row.LineID,
				OrderID:    row.LineOrderID,
				ItemID:     row.ItemID,
				OrderPrice: row.OrderPrice,
				Count:      row.Count,
			},
			Item: storage.ItemRecord{
				ID:            row.ItemID,
				Kind:          row.ItemDtype,
				Name:          row.ItemName,
				Price:         row.ItemPrice,
				StockQuantity: row.ItemStockQuantity,
				Author:        row.ItemAuthor,
				ISBN:          row.ItemISBN,
			},
		})
	}
	return out, nil
}

// summaryRow is the direct projection scan target.
type summaryRow struct {
	OrderID    int64
	MemberName string
	OrderDate  time.Time
	Status     string
	City       string
	Street     string
	Zipcode    string
}

func (t *session) SearchOrderSummaries(_ context.Context, filter storage.OrderFilter) ([]*storage.OrderSummary, error) {
	q := t.tx.Table("orders").
		Select(`orders.id AS order_id, m.name AS member_name, orders.order_date,
orders.status, d.city, d.street, d.zipcode`).
		Joins("JOIN members m ON m.id = orders.member_id").
		Joins("JOIN deliveries d ON d.id = orders.delivery_id").
		Order("orders.id")
	q = applyFilter(q, filter)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var rows []summaryRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*storage.OrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, &storage.OrderSummary{
			OrderID:    row.OrderID,
			MemberName: row.MemberName,
			OrderDate:  row.OrderDate,
			Status:     row.Status,
			Address:    storage.Address{City: row.City, Street: row.Street, Zipcode: row.Zipcode},
		})
	}
	return out, nil
}

func (r joinedRow) order() storage.OrderRecord {
	return storage.OrderRecord{
		ID:         r.OrderID,
		MemberID:   r.MemberID,
		DeliveryID: r.DeliveryID,
		OrderDate:  r.OrderDate,
		Status:     r.OrderStatus,
	}
}

func (r joinedRow) member() storage.MemberRecord {
	return storage.MemberRecord{
		ID:      r.MemberID,
		Name:    r.MemberName,
		City:    r.MemberCity,
		Street:  r.MemberStreet,
		Zipcode: r.MemberZipcode,
	}
}

func (r joinedRow) delivery() storage.DeliveryRecord {
	return storage.DeliveryRecord{
		ID:      r.DeliveryID,
		OrderID: r.DeliveryOrderID,
		City:    r.DeliveryCity,
		Street:  r.DeliveryStreet,
		Zipcode: r.DeliveryZipcode,
		Status:  r.DeliveryStatus,
	}
}
