package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
)

var _ storage.Store = (*Store)(nil)

// Store opens database transactions as storage sessions. Caller manages the
// DB lifecycle.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Begin starts a database transaction.
func (s *Store) Begin(ctx context.Context) (storage.Session, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("postgres store not configured")
	}
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &session{tx: tx}, nil
}

type session struct {
	tx *gorm.DB
}

var _ storage.Session = (*session)(nil)

func (t *session) Commit(_ context.Context) error {
	return t.tx.Commit().Error
}

func (t *session) Rollback(_ context.Context) error {
	return t.tx.Rollback().Error
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	return err
}

func (t *session) InsertMember(_ context.Context, rec *storage.MemberRecord) error {
	row := memberRow{Name: rec.Name, City: rec.City, Street: rec.Street, Zipcode: rec.Zipcode}
	if err := t.tx.Create(&row).Error; err != nil {
		return err
	}
	rec.ID = row.ID
	return nil
}

func (t *session) UpdateMember(_ context.Context, rec *storage.MemberRecord) error {
	row := memberRow{ID: rec.ID, Name: rec.Name, City: rec.City, Street: rec.Street, Zipcode: rec.Zipcode}
	return t.tx.Save(&row).Error
}

func (t *session) GetMember(_ context.Context, id int64) (*storage.MemberRecord, error) {
	var row memberRow
	if err := t.tx.First(&row, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return memberRecord(row), nil
}

func (t *session) ListMembers(_ context.Context) ([]*storage.MemberRecord, error) {
	var rows []memberRow
	if err := t.tx.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*storage.MemberRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, memberRecord(row))
	}
	return out, nil
}

func (t *session) FindMembersByName(_ context.Context, name string) ([]*storage.MemberRecord, error) {
	var rows []memberRow
	if err := t.tx.Where("name = ?", name).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*storage.MemberRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, memberRecord(row))
	}
	return out, nil
}

func (t *session) InsertItem(_ context.Context, rec *storage.ItemRecord) error {
	row := itemRow{
		Dtype:         rec.Kind,
		Name:          rec.Name,
		Price:         rec.Price,
		StockQuantity: rec.StockQuantity,
		Author:        rec.Author,
		ISBN:          rec.ISBN,
	}
	if err := t.tx.Create(&row).Error; err != nil {
		return err
	}
	rec.ID = row.ID
	return nil
}

func (t *session) UpdateItem(_ context.Context, rec *storage.ItemRecord) error {
	row := itemRow{
		ID:            rec.ID,
		Dtype:         rec.Kind,
		Name:          rec.Name,
		Price:         rec.Price,
		StockQuantity: rec.StockQuantity,
		Author:        rec.Author,
		ISBN:          rec.ISBN,
	}
	return t.tx.Save(&row).Error
}

func (t *session) GetItem(_ context.Context, id int64) (*storage.ItemRecord, error) {
	var row itemRow
	if err := t.tx.First(&row, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return itemRecord(row), nil
}

func (t *session) ListItems(_ context.Context) ([]*storage.ItemRecord, error) {
	var rows []itemRow
	if err := t.tx.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*storage.ItemRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, itemRecord(row))
	}
	return out, nil
}

func (t *session) InsertOrder(_ context.Context, rec *storage.OrderRecord) error {
	row := orderRow{
		MemberID:   rec.MemberID,
		DeliveryID: rec.DeliveryID,
		OrderDate:  rec.OrderDate,
		Status:     rec.Status,
	}
	if err := t.tx.Create(&row).Error; err != nil {
		return err
	}
	rec.ID = row.ID
	return nil
}

func (t *session) UpdateOrder(_ context.Context, rec *storage.OrderRecord) error {
	row := orderRow{
		ID:         rec.ID,
		MemberID:   rec.MemberID,
		DeliveryID: rec.DeliveryID,
		OrderDate:  rec.OrderDate,
		Status:     rec.Status,
	}
	return t.tx.Save(&row).Error
}

func (t *session) GetOrder(_ context.Context, id int64) (*storage.OrderRecord, error) {
	var row orderRow
	if err := t.tx.First(&row, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return orderRecord(row), nil
}

func (t *session) InsertDelivery(_ context.Context, rec *storage.DeliveryRecord) error {
	row := deliveryRow{
		OrderID: rec.OrderID,
		City:    rec.City,
		Street:  rec.Street,
		Zipcode: rec.Zipcode,
		Status:  rec.Status,
	}
	if err := t.tx.Create(&row).Error; err != nil {
		return err
	}
	rec.ID = row.ID
	return nil
}

func (t *session) UpdateDelivery(_ context.Context, rec *storage.DeliveryRecord) error {
	row := deliveryRow{
		ID:      rec.ID,
		OrderID: rec.OrderID,
		City:    rec.City,
		Street:  rec.Street,
		Zipcode: rec.Zipcode,
		Status:  rec.Status,
	}
	return t.tx.Save(&row).Error
}

func (t *session) GetDelivery(_ context.Context, id int64) (*storage.DeliveryRecord, error) {
	var row deliveryRow
	if err := t.tx.First(&row, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return deliveryRecord(row), nil
}

func (t *session) InsertOrderItem(_ context.Context, rec *storage.OrderItemRecord) error {
	row := orderItemRow{
		OrderID:    rec.OrderID,
		ItemID:     rec.ItemID,
		OrderPrice: rec.OrderPrice,
		Count:      rec.Count,
	}
	if err := t.tx.Create(&row).Error; err != nil {
		return err
	}
	rec.ID = row.ID
	return nil
}

func (t *session) UpdateOrderItem(_ context.Context, rec *storage.OrderItemRecord) error {
	row := orderItemRow{
		ID:         rec.ID,
		OrderID:    rec.OrderID,
		ItemID:     rec.ItemID,
		OrderPrice: rec.OrderPrice,
		Count:      rec.Count,
	}
	return t.tx.Save(&row).Error
}

func (t *session) ListOrderItemsByOrder(_ context.Context, orderID int64) ([]*storage.OrderItemRecord, error) {
	var rows []orderItemRow
	if err := t.tx.Where("order_id = ?", orderID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*storage.OrderItemRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, orderItemRecord(row))
	}
	return out, nil
}

func memberRecord(row memberRow) *storage.MemberRecord {
	return &storage.MemberRecord{ID: row.ID, Name: row.Name, City: row.City, Street: row.Street, Zipcode: row.Zipcode}
}

func itemRecord(row itemRow) *storage.ItemRecord {
	return &storage.ItemRecord{
		ID:            row.ID,
		Kind:          row.Dtype,
		Name:          row.Name,
		Price:         row.Price,
		StockQuantity: row.StockQuantity,
		Author:        row.Author,
		ISBN:          row.ISBN,
	}
}

func orderRecord(row orderRow) *storage.OrderRecord {
	return &storage.OrderRecord{
		ID:         row.ID,
		MemberID:   row.MemberID,
		DeliveryID: row.DeliveryID,
		OrderDate:  row.OrderDate,
		Status:     row.Status,
	}
}

func deliveryRecord(row deliveryRow) *storage.DeliveryRecord {
	return &storage.DeliveryRecord{
		ID:      row.ID,
		OrderID: row.OrderID,
		City:    row.City,
		Street:  row.Street,
		Zipcode: row.Zipcode,
		Status:  row.Status,
	}
}

func orderItemRecord(row orderItemRow) *storage.OrderItemRecord {
	return &storage.OrderItemRecord{
		ID:         row.ID,
		OrderID:    row.OrderID,
		ItemID:     row.ItemID,
		OrderPrice: row.OrderPrice,
		Count:      row.Count,
	}
}
