package uow

import (
	"context"
	"fmt"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
)

// Member loads a member by identifier through the identity map: repeated
// loads of the same id inside one unit of work return the same instance.
func (c *Context) Member(ctx context.Context, id int64) (*domain.Member, error) {
	if !c.open {
		return nil, ErrStaleContext
	}
	if cached, ok := c.lookup(kindMember, id); ok {
		return cached.(*domain.Member), nil
	}
	rec, err := c.session.GetMember(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load member %d: %w", id, err)
	}
	return c.AttachMember(rec), nil
}

// Item loads an item by identifier through the identity map.
func (c *Context) Item(ctx context.Context, id int64) (*domain.Item, error) {
	if !c.open {
		return nil, ErrStaleContext
	}
	if cached, ok := c.lookup(kindItem, id); ok {
		return cached.(*domain.Item), nil
	}
	rec, err := c.session.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load item %d: %w", id, err)
	}
	return c.AttachItem(rec), nil
}

// Delivery loads a delivery by identifier through the identity map.
func (c *Context) Delivery(ctx context.Context, id int64) (*domain.Delivery, error) {
	if !c.open {
		return nil, ErrStaleContext
	}
	if cached, ok := c.lookup(kindDelivery, id); ok {
		return cached.(*domain.Delivery), nil
	}
	rec, err := c.session.GetDelivery(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load delivery %d: %w", id, err)
	}
	return c.AttachDelivery(rec), nil
}

// Order loads an order by identifier. Its member, delivery, and lines are
// represented by deferred references that resolve through this unit of work
// on first access.
func (c *Context) Order(ctx context.Context, id int64) (*domain.Order, error) {
	if !c.open {
		return nil, ErrStaleContext
	}
	if cached, ok := c.lookup(kindOrder, id); ok {
		return cached.(*domain.Order), nil
	}
	rec, err := c.session.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}
	return c.AttachOrder(rec), nil
}

// AttachMember materializes a member row, deduplicated by the identity map.
func (c *Context) AttachMember(rec *storage.MemberRecord) *domain.Member {
	if cached, ok := c.lookup(kindMember, rec.ID); ok {
		return cached.(*domain.Member)
	}
	member := &domain.Member{
		ID:      rec.ID,
		Name:    rec.Name,
		Address: domain.NewAddress(rec.City, rec.Street, rec.Zipcode),
	}
	c.track(kindMember, rec.ID, member, *rec)
	return member
}

// AttachItem materializes an item row, deduplicated by the identity map.
func (c *Context) AttachItem(rec *storage.ItemRecord) *domain.Item {
	if cached, ok := c.lookup(kindItem, rec.ID); ok {
		return cached.(*domain.Item)
	}
	item := &domain.Item{
		ID:            rec.ID,
		Kind:          domain.ItemKind(rec.Kind),
		Name:          rec.Name,
		Price:         rec.Price,
		StockQuantity: rec.StockQuantity,
		Author:        rec.Author,
		ISBN:          rec.ISBN,
	}
	c.track(kindItem, rec.ID, item, *rec)
	return item
}

// AttachDelivery materializes a delivery row, deduplicated by the identity
// map.
func (c *Context) AttachDelivery(rec *storage.DeliveryRecord) *domain.Delivery {
	if cached, ok := c.lookup(kindDelivery, rec.ID); ok {
		return cached.(*domain.Delivery)
	}
	delivery := &domain.Delivery{
		ID:      rec.ID,
		OrderID: rec.OrderID,
		Address: domain.NewAddress(rec.City, rec.Street, rec.Zipcode),
		Status:  domain.DeliveryStatus(rec.Status),
	}
	c.track(kindDelivery, rec.ID, delivery, *rec)
	return delivery
}

// AttachOrder materializes an order row with lazy associations. The naive
// fetch strategy hydrates exactly through here: traversing member, delivery,
// or lines afterwards costs one session round trip each.
func (c *Context) AttachOrder(rec *storage.OrderRecord) *domain.Order {
	if cached, ok := c.lookup(kindOrder, rec.ID); ok {
		return cached.(*domain.Order)
	}
	order := &domain.Order{
		ID:        rec.ID,
		OrderDate: rec.OrderDate,
		Status:    domain.OrderStatus(rec.Status),
		Member:    domain.NewRef(rec.MemberID, c.memberLoader(rec.MemberID)),
		Delivery:  domain.NewRef(rec.DeliveryID, c.deliveryLoader(rec.DeliveryID)),
		Items:     domain.NewList(c.orderLinesLoader(rec.ID)),
	}
	c.track(kindOrder, rec.ID, order, *rec)
	return order
}

// AttachOrderJoined materializes a join-fetched row: the order arrives with
// its member and delivery already resolved. Lines stay lazy.
func (c *Context) AttachOrderJoined(row *storage.OrderMemberDeliveryRow) *domain.Order {
	member := c.AttachMember(&row.Member)
	delivery := c.AttachDelivery(&row.Delivery)
	order := c.AttachOrder(&row.Order)
	order.Member = domain.ResolvedRef(member.ID, member)
	order.Delivery = domain.ResolvedRef(delivery.ID, delivery)
	return order
}

// AttachOrderLine materializes one order line with its item resolved.
func (c *Context) AttachOrderLine(rec *storage.OrderItemRecord, item *domain.Item) *domain.OrderItem {
	if cached, ok := c.lookup(kindOrderItem, rec.ID); ok {
		return cached.(*domain.OrderItem)
	}
	line := &domain.OrderItem{
		ID:         rec.ID,
		OrderID:    rec.OrderID,
		Item:       domain.ResolvedRef(item.ID, item),
		OrderPrice: rec.OrderPrice,
		Count:      rec.Count,
	}
	c.track(kindOrderItem, rec.ID, line, *rec)
	return line
}

func (c *Context) memberLoader(id int64) func(ctx context.Context) (*domain.Member, error) {
	return func(ctx context.Context) (*domain.Member, error) {
		return c.Member(ctx, id)
	}
}

func (c *Context) deliveryLoader(id int64) func(ctx context.Context) (*domain.Delivery, error) {
	return func(ctx context.Context) (*domain.Delivery, error) {
		return c.Delivery(ctx, id)
	}
}

// orderLinesLoader defers the line collection; resolving it loads the rows
// and leaves each line's item lazy in turn.
func (c *Context) orderLinesLoader(orderID int64) func(ctx context.Context) ([]*domain.OrderItem, error) {
	return func(ctx context.Context) ([]*domain.OrderItem, error) {
		if !c.open {
			return nil, ErrStaleContext
		}
		recs, err := c.session.ListOrderItemsByOrder(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("load lines of order %d: %w", orderID, err)
		}
		lines := make([]*domain.OrderItem, 0, len(recs))
		for _, rec := range recs {
			lines = append(lines, c.attachLazyLine(rec))
		}
		return lines, nil
	}
}

func (c *Context) attachLazyLine(rec *storage.OrderItemRecord) *domain.OrderItem {
	if cached, ok := c.lookup(kindOrderItem, rec.ID); ok {
		return cached.(*domain.OrderItem)
	}
	line := &domain.OrderItem{
		ID:         rec.ID,
		OrderID:    rec.OrderID,
		Item:       domain.NewRef(rec.ItemID, c.itemLoader(rec.ItemID)),
		OrderPrice: rec.OrderPrice,
		Count:      rec.Count,
	}
	c.track(kindOrderItem, rec.ID, line, *rec)
	return line
}

func (c *Context) itemLoader(id int64) func(ctx context.Context) (*domain.Item, error) {
	return func(ctx context.Context) (*domain.Item, error) {
		return c.Item(ctx, id)
	}
}

// Record derivation. The dirty pass re-derives these from the entities at
// commit and diffs against the load-time snapshots.

func memberRecord(m *domain.Member) storage.MemberRecord {
	return storage.MemberRecord{
		ID:      m.ID,
		Name:    m.Name,
		City:    m.Address.City,
		Street:  m.Address.Street,
		Zipcode: m.Address.Zipcode,
	}
}

func itemRecord(i *domain.Item) storage.ItemRecord {
	return storage.ItemRecord{
		ID:            i.ID,
		Kind:          string(i.Kind),
		Name:          i.Name,
		Price:         i.Price,
		StockQuantity: i.StockQuantity,
		Author:        i.Author,
		ISBN:          i.ISBN,
	}
}

func orderRecord(o *domain.Order) storage.OrderRecord {
	return storage.OrderRecord{
		ID:         o.ID,
		MemberID:   o.Member.ID(),
		DeliveryID: o.Delivery.ID(),
		OrderDate:  o.OrderDate,
		Status:     string(o.Status),
	}
}

func deliveryRecord(d *domain.Delivery) storage.DeliveryRecord {
	return storage.DeliveryRecord{
		ID:      d.ID,
		OrderID: d.OrderID,
		City:    d.Address.City,
		Street:  d.Address.Street,
		Zipcode: d.Address.Zipcode,
		Status:  string(d.Status),
	}
}

func orderItemRecord(oi *domain.OrderItem) storage.OrderItemRecord {
	return storage.OrderItemRecord{
		ID:         oi.ID,
		OrderID:    oi.OrderID,
		ItemID:     oi.Item.ID(),
		OrderPrice: oi.OrderPrice,
		Count:      oi.Count,
	}
}
