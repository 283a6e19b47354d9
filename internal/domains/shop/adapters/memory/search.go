package memory

import (
	"context"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
)

// Order searches. Each counts as one round trip regardless of how many rows
// it yields, mirroring a single SQL statement.

func (t *session) SearchOrders(_ context.Context, filter storage.OrderFilter) ([]*storage.OrderRecord, error) {
	t.roundTrip()
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	var out []*storage.OrderRecord
	for _, id := range sortedKeys(t.store.orders) {
		rec := t.store.orders[id]
		if !matches(rec, t.store.members[rec.MemberID].Name, filter) {
			continue
		}
		out = append(out, &rec)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (t *session) SearchOrdersWithMemberDelivery(_ context.Context, filter storage.OrderFilter) ([]*storage.OrderMemberDeliveryRow, error) {
	t.roundTrip()
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	var out []*storage.OrderMemberDeliveryRow
	for _, id := range sortedKeys(t.store.orders) {
		rec := t.store.orders[id]
		member := t.store.members[rec.MemberID]
		if !matches(rec, member.Name, filter) {
			continue
		}
		out = append(out, &storage.OrderMemberDeliveryRow{
			Order:    rec,
			Member:   member,
			Delivery: t.store.deliveries[rec.DeliveryID],
		})
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (t *session) SearchOrderDetails(_ context.Context, filter storage.OrderFilter) ([]*storage.OrderDetailRow, error) {
	t.roundTrip()
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	var out []*storage.OrderDetailRow
	seen := 0
	for _, id := range sortedKeys(t.store.orders) {
		rec := t.store.orders[id]
		member := t.store.members[rec.MemberID]
		if !matches(rec, member.Name, filter) {
			continue
		}
		// One row per line: the one-to-many expansion a SQL join produces.
		for _, lineID := range sortedKeys(t.store.orderItems) {
			line := t.store.orderItems[lineID]
			if line.OrderID != rec.ID {
				continue
			}
			out = append(out, &storage.OrderDetailRow{
				Order:    rec,
				Member:   member,
				Delivery: t.store.deliveries[rec.DeliveryID],
				Line:     line,
				Item:     t.store.items[line.ItemID],
			})
		}
		seen++
		if filter.Limit > 0 && seen == filter.Limit {
			break
		}
	}
	return out, nil
}

func (t *session) SearchOrderSummaries(_ context.Context, filter storage.OrderFilter) ([]*storage.OrderSummary, error) {
	t.roundTrip()
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	var out []*storage.OrderSummary
	for _, id := range sortedKeys(t.store.orders) {
		rec := t.store.orders[id]
		member := t.store.members[rec.MemberID]
		if !matches(rec, member.Name, filter) {
			continue
		}
		delivery := t.store.deliveries[rec.DeliveryID]
		out = append(out, &storage.OrderSummary{
			OrderID:    rec.ID,
			MemberName: member.Name,
			OrderDate:  rec.OrderDate,
			Status:     rec.Status,
			Address: storage.Address{
				City:    delivery.City,
				Street:  delivery.Street,
				Zipcode: delivery.Zipcode,
			},
		})
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
