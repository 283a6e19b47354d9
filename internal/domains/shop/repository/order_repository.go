package repository

import (
	"context"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/uow"
)

// maxResults caps every order search regardless of filters.
const maxResults = 1000

// Orders persists order aggregates and offers three fetch strategies over
// the same graph, trading round-trip count against reusability:
// FindAll loads bare order rows and leaves every association lazy (N+1 when
// traversed), FindAllWithMemberDelivery/FindAllWithItems join-fetch in one
// query and return full entities, FindSummaries projects straight into the
// simple view and never materializes entities.
type Orders struct {
	c *uow.Context
}

func NewOrders(c *uow.Context) *Orders {
	return &Orders{c: c}
}

// Save schedules the cascading insert of a new aggregate: the order, its
// delivery, and its lines persist together at commit.
func (r *Orders) Save(order *domain.Order) {
	r.c.RegisterOrder(order)
}

// FindOne loads an order by identifier with lazy associations.
func (r *Orders) FindOne(ctx context.Context, id int64) (*domain.Order, error) {
	return r.c.Order(ctx, id)
}

// FindAll is the naive strategy: one query for the order rows. Member,
// delivery, and lines each cost a further round trip per order when
// accessed.
func (r *Orders) FindAll(ctx context.Context, filter storage.OrderFilter) ([]*domain.Order, error) {
	session, err := r.c.Session()
	if err != nil {
		return nil, err
	}
	recs, err := session.SearchOrders(ctx, capped(filter))
	if err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(recs))
	for _, rec := range recs {
		orders = append(orders, r.c.AttachOrder(rec))
	}
	return orders, nil
}

// FindAllWithMemberDelivery join-fetches member and delivery in a single
// query. The entities are fully reusable; lines stay lazy.
func (r *Orders) FindAllWithMemberDelivery(ctx context.Context, filter storage.OrderFilter) ([]*domain.Order, error) {
	session, err := r.c.Session()
	if err != nil {
		return nil, err
	}
	rows, err := session.SearchOrdersWithMemberDelivery(ctx, capped(filter))
	if err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, r.c.AttachOrderJoined(row))
	}
	return orders, nil
}

// FindAllWithItems extends the join fetch to the lines and their items. The
// to-many join repeats each order row once per line; the identity map
// collapses the duplicates while the lines are collected.
func (r *Orders) FindAllWithItems(ctx context.Context, filter storage.OrderFilter) ([]*domain.Order, error) {
	session, err := r.c.Session()
	if err != nil {
		return nil, err
	}
	rows, err := session.SearchOrderDetails(ctx, capped(filter))
	if err != nil {
		return nil, err
	}
	var orders []*domain.Order
	seen := map[int64]bool{}
	lines := map[int64][]*domain.OrderItem{}
	for _, row := range rows {
		order := r.c.AttachOrderJoined(&storage.OrderMemberDeliveryRow{
			Order:    row.Order,
			Member:   row.Member,
			Delivery: row.Delivery,
		})
		if !seen[order.ID] {
			seen[order.ID] = true
			orders = append(orders, order)
		}
		item := r.c.AttachItem(&row.Item)
		lines[order.ID] = append(lines[order.ID], r.c.AttachOrderLine(&row.Line, item))
	}
	for _, order := range orders {
		order.Items = domain.ResolvedList(lines[order.ID])
	}
	return orders, nil
}

// FindSummaries is the direct projection strategy: the query itself shapes
// the simple order view. Fastest and narrowest: the result is bound to that
// one consumer and reusable nowhere else.
func (r *Orders) FindSummaries(ctx context.Context, filter storage.OrderFilter) ([]*storage.OrderSummary, error) {
	session, err := r.c.Session()
	if err != nil {
		return nil, err
	}
	return session.SearchOrderSummaries(ctx, capped(filter))
}

func capped(filter storage.OrderFilter) storage.OrderFilter {
	filter.Limit = maxResults
	return filter
}
