// Package mapper converts domain entities into transport payloads. The DTOs
// break the order/member/delivery reference cycles and hide internal fields;
// entities never cross the HTTP boundary unshaped except through the
// deliberately raw v1 views.
package mapper

import (
	"context"
	"time"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
)

// Result is the plain data envelope.
type Result struct {
	Data any `json:"data"`
}

// CountedResult adds the element count the member list view carries.
type CountedResult struct {
	Count int `json:"count"`
	Data  any `json:"data"`
}

// MemberDto is the name-only member projection.
type MemberDto struct {
	Name string `json:"name"`
}

// MemberView is the raw member shape of the v1 endpoint.
type MemberView struct {
	ID      int64          `json:"id"`
	Name    string         `json:"name"`
	Address domain.Address `json:"address"`
}

// OrderItemDto is one line of an order view.
type OrderItemDto struct {
	ItemName   string `json:"itemName"`
	OrderPrice int    `json:"orderPrice"`
	Count      int    `json:"count"`
}

// OrderDto is the full order view including lines.
type OrderDto struct {
	OrderID     int64          `json:"orderId"`
	Name        string         `json:"name"`
	OrderDate   time.Time      `json:"orderDate"`
	OrderStatus string         `json:"orderStatus"`
	Address     domain.Address `json:"address"`
	OrderItems  []OrderItemDto `json:"orderItems"`
}

// SimpleOrderDto is the order view without lines.
type SimpleOrderDto struct {
	OrderID     int64          `json:"orderId"`
	Name        string         `json:"name"`
	OrderDate   time.Time      `json:"orderDate"`
	OrderStatus string         `json:"orderStatus"`
	Address     domain.Address `json:"address"`
}

// FromMember maps a member to its raw view.
func FromMember(member *domain.Member) MemberView {
	return MemberView{ID: member.ID, Name: member.Name, Address: member.Address}
}

// FromMembers maps members to raw views.
func FromMembers(members []*domain.Member) []MemberView {
	out := make([]MemberView, 0, len(members))
	for _, member := range members {
		out = append(out, FromMember(member))
	}
	return out
}

// FromMembersDto maps members to the name-only projection.
func FromMembersDto(members []*domain.Member) []MemberDto {
	out := make([]MemberDto, 0, len(members))
	for _, member := range members {
		out = append(out, MemberDto{Name: member.Name})
	}
	return out
}

// FromOrder maps an order whose member, delivery, lines, and line items have
// been resolved inside the producing transaction. The Get calls below only
// read the cached associations; an unresolved one surfaces the stale-access
// error instead of silently emitting an empty view.
func FromOrder(ctx context.Context, order *domain.Order) (OrderDto, error) {
	member, err := order.Member.Get(ctx)
	if err != nil {
		return OrderDto{}, err
	}
	delivery, err := order.Delivery.Get(ctx)
	if err != nil {
		return OrderDto{}, err
	}
	lines, err := order.Items.Get(ctx)
	if err != nil {
		return OrderDto{}, err
	}
	dto := OrderDto{
		OrderID:     order.ID,
		Name:        member.Name,
		OrderDate:   order.OrderDate,
		OrderStatus: string(order.Status),
		Address:     delivery.Address,
		OrderItems:  make([]OrderItemDto, 0, len(lines)),
	}
	for _, line := range lines {
		item, err := line.Item.Get(ctx)
		if err != nil {
			return OrderDto{}, err
		}
		dto.OrderItems = append(dto.OrderItems, OrderItemDto{
			ItemName:   item.Name,
			OrderPrice: line.OrderPrice,
			Count:      line.Count,
		})
	}
	return dto, nil
}

// FromOrders maps resolved orders to full views.
func FromOrders(ctx context.Context, orders []*domain.Order) ([]OrderDto, error) {
	out := make([]OrderDto, 0, len(orders))
	for _, order := range orders {
		dto, err := FromOrder(ctx, order)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

// FromSimpleOrder maps an order with resolved member and delivery to the
// line-less view.
func FromSimpleOrder(ctx context.Context, order *domain.Order) (SimpleOrderDto, error) {
	member, err := order.Member.Get(ctx)
	if err != nil {
		return SimpleOrderDto{}, err
	}
	delivery, err := order.Delivery.Get(ctx)
	if err != nil {
		return SimpleOrderDto{}, err
	}
	return SimpleOrderDto{
		OrderID:     order.ID,
		Name:        member.Name,
		OrderDate:   order.OrderDate,
		OrderStatus: string(order.Status),
		Address:     delivery.Address,
	}, nil
}

// FromSimpleOrders maps resolved orders to line-less views.
func FromSimpleOrders(ctx context.Context, orders []*domain.Order) ([]SimpleOrderDto, error) {
	out := make([]SimpleOrderDto, 0, len(orders))
	for _, order := range orders {
		dto, err := FromSimpleOrder(ctx, order)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

// FromSummaries maps projection rows; no entity was ever materialized.
func FromSummaries(summaries []*storage.OrderSummary) []SimpleOrderDto {
	out := make([]SimpleOrderDto, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, SimpleOrderDto{
			OrderID:     s.OrderID,
			Name:        s.MemberName,
			OrderDate:   s.OrderDate,
			OrderStatus: s.Status,
			Address:     domain.NewAddress(s.Address.City, s.Address.Street, s.Address.Zipcode),
		})
	}
	return out
}

// OrderView is the raw order shape of the v1 endpoints. Unresolved
// associations stay nil, mirroring what was actually loaded.
type OrderView struct {
	ID         int64           `json:"id"`
	Member     *MemberView     `json:"member"`
	Delivery   *DeliveryView   `json:"delivery"`
	OrderItems []OrderItemView `json:"orderItems"`
	OrderDate  time.Time       `json:"orderDate"`
	Status     string          `json:"status"`
}

// DeliveryView is the raw delivery shape.
type DeliveryView struct {
	ID      int64          `json:"id"`
	Address domain.Address `json:"address"`
	Status  string         `json:"status"`
}

// OrderItemView is the raw line shape.
type OrderItemView struct {
	ID         int64  `json:"id"`
	ItemName   string `json:"itemName,omitempty"`
	OrderPrice int    `json:"orderPrice"`
	Count      int    `json:"count"`
}

// FromRawOrder maps whatever parts of the aggregate were materialized.
func FromRawOrder(ctx context.Context, order *domain.Order) (OrderView, error) {
	view := OrderView{
		ID:        order.ID,
		OrderDate: order.OrderDate,
		Status:    string(order.Status),
	}
	if order.Member.Resolved() {
		member, err := order.Member.Get(ctx)
		if err != nil {
			return OrderView{}, err
		}
		mv := FromMember(member)
		view.Member = &mv
	}
	if order.Delivery.Resolved() {
		delivery, err := order.Delivery.Get(ctx)
		if err != nil {
			return OrderView{}, err
		}
		view.Delivery = &DeliveryView{
			ID:      delivery.ID,
			Address: delivery.Address,
			Status:  string(delivery.Status),
		}
	}
	if order.Items.Resolved() {
		lines, err := order.Items.Get(ctx)
		if err != nil {
			return OrderView{}, err
		}
		for _, line := range lines {
			lv := OrderItemView{ID: line.ID, OrderPrice: line.OrderPrice, Count: line.Count}
			if line.Item.Resolved() {
				item, err := line.Item.Get(ctx)
				if err != nil {
					return OrderView{}, err
				}
				lv.ItemName = item.Name
			}
			view.OrderItems = append(view.OrderItems, lv)
		}
	}
	return view, nil
}

// FromRawOrders maps orders to raw views.
func FromRawOrders(ctx context.Context, orders []*domain.Order) ([]OrderView, error) {
	out := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		view, err := FromRawOrder(ctx, order)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}
