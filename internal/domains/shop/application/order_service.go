package application

import (
	"context"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/repository"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/uow"
)

// OrderService covers placing, cancelling, and listing orders.
type OrderService struct {
	store storage.Store
}

func NewOrderService(store storage.Store) *OrderService {
	return &OrderService{store: store}
}

// OrderLine is one requested line of a new order.
type OrderLine struct {
	ItemID int64
	Count  int
}

// PlaceOrder orders a single item for a member and returns the new order's
// identifier.
func (s *OrderService) PlaceOrder(ctx context.Context, memberID, itemID int64, count int) (int64, error) {
	return s.PlaceOrderLines(ctx, memberID, OrderLine{ItemID: itemID, Count: count})
}

// PlaceOrderLines places an order with one line per requested item. Stock is
// taken as the lines are constructed; the aggregate persists as one
// cascading write at commit, so a failure on any line leaves no trace.
func (s *OrderService) PlaceOrderLines(ctx context.Context, memberID int64, lines ...OrderLine) (int64, error) {
	c, err := uow.Begin(ctx, s.store)
	if err != nil {
		return 0, err
	}
	defer c.Rollback(ctx)

	member, err := repository.NewMembers(c).FindOne(ctx, memberID)
	if err != nil {
		return 0, notFound(err, ErrMemberNotFound)
	}
	items := repository.NewItems(c)
	orderItems := make([]*domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		item, err := items.FindOne(ctx, line.ItemID)
		if err != nil {
			return 0, notFound(err, ErrItemNotFound)
		}
		orderItem, err := domain.NewOrderItem(item, item.Price, line.Count)
		if err != nil {
			return 0, err
		}
		orderItems = append(orderItems, orderItem)
	}

	delivery := domain.NewDelivery(member.Address)
	order, err := domain.NewOrder(member, delivery, orderItems...)
	if err != nil {
		return 0, err
	}
	repository.NewOrders(c).Save(order)
	if err := c.Commit(ctx); err != nil {
		return 0, err
	}
	return order.ID, nil
}

// CancelOrder cancels an order. The status flip and the stock restores are
// plain entity mutations; the unit of work flushes them at commit.
func (s *OrderService) CancelOrder(ctx context.Context, orderID int64) error {
	c, err := uow.Begin(ctx, s.store)
	if err != nil {
		return err
	}
	defer c.Rollback(ctx)

	order, err := repository.NewOrders(c).FindOne(ctx, orderID)
	if err != nil {
		return notFound(err, ErrOrderNotFound)
	}
	if err := order.Cancel(ctx); err != nil {
		return err
	}
	return c.Commit(ctx)
}

// ListOrders lists via the naive strategy and forces lazy resolution of
// member and delivery (and, when asked, the lines and their items) before
// the transaction ends. The resolutions are the per-row follow-up queries
// of the N+1 pattern.
func (s *OrderService) ListOrders(ctx context.Context, filter storage.OrderFilter, withItems bool) ([]*domain.Order, error) {
	c, err := uow.Begin(ctx, s.store)
	if err != nil {
		return nil, err
	}
	defer c.Rollback(ctx)

	orders, err := repository.NewOrders(c).FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		if _, err := order.Member.Get(ctx); err != nil {
			return nil, err
		}
		if _, err := order.Delivery.Get(ctx); err != nil {
			return nil, err
		}
		if !withItems {
			continue
		}
		lines, err := order.Items.Get(ctx)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			if _, err := line.Item.Get(ctx); err != nil {
				return nil, err
			}
		}
	}
	if err := c.Commit(ctx); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrdersWithMemberDelivery lists via the join-fetch strategy: one query
// materializes orders with member and delivery.
func (s *OrderService) ListOrdersWithMemberDelivery(ctx context.Context, filter storage.OrderFilter) ([]*domain.Order, error) {
	c, err := uow.Begin(ctx, s.store)
	if err != nil {
		return nil, err
	}
	defer c.Rollback(ctx)

	orders, err := repository.NewOrders(c).FindAllWithMemberDelivery(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := c.Commit(ctx); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrdersWithItems lists via the extended join fetch including the lines
// and their items.
func (s *OrderService) ListOrdersWithItems(ctx context.Context, filter storage.OrderFilter) ([]*domain.Order, error) {
	c, err := uow.Begin(ctx, s.store)
	if err != nil {
		return nil, err
	}
	defer c.Rollback(ctx)

	orders, err := repository.NewOrders(c).FindAllWithItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := c.Commit(ctx); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrderSummaries lists via the direct projection strategy.
func (s *OrderService) ListOrderSummaries(ctx context.Context, filter storage.OrderFilter) ([]*storage.OrderSummary, error) {
	c, err := uow.Begin(ctx, s.store)
	if err != nil {
		return nil, err
	}
	defer c.Rollback(ctx)

	summaries, err := repository.NewOrders(c).FindSummaries(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := c.Commit(ctx); err != nil {
		return nil, err
	}
	return summaries, nil
}
