package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/adapters/memory"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/repository"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/uow"
)

// fixtures seeds two members, two books each, one two-line order per member.
type fixtures struct {
	store    *memory.Store
	orderIDs []int64
}

// bookSpec describes one seeded book and the count ordered from it.
type bookSpec struct {
	name         string
	price, stock int
	count        int
}

func seedFixtures(t *testing.T) *fixtures {
	t.Helper()
	store := memory.NewStore()
	return &fixtures{
		store: store,
		orderIDs: []int64{
			seedMemberWithOrder(t, store, "userA", domain.NewAddress("Seoul", "Gangnam", "15640"),
				bookSpec{"JPA1 BOOK", 10000, 100, 1}, bookSpec{"JPA2 BOOK", 20000, 100, 2}),
			seedMemberWithOrder(t, store, "userB", domain.NewAddress("Suwon", "Yeongtong", "53134"),
				bookSpec{"SPRING1 BOOK", 20000, 200, 3}, bookSpec{"SPRING2 BOOK", 40000, 300, 4}),
		},
	}
}

func seedMemberWithOrder(t *testing.T, store *memory.Store, name string, address domain.Address, specs ...bookSpec) int64 {
	t.Helper()
	ctx := context.Background()

	c, err := uow.Begin(ctx, store)
	require.NoError(t, err)
	member, err := domain.NewMember(name, address)
	require.NoError(t, err)
	repository.NewMembers(c).Save(member)

	items := repository.NewItems(c)
	books := make([]*domain.Item, 0, len(specs))
	for _, spec := range specs {
		book, err := domain.NewBook(spec.name, spec.price, spec.stock, "", "")
		require.NoError(t, err)
		items.Save(book)
		books = append(books, book)
	}
	require.NoError(t, c.Commit(ctx))

	c, err = uow.Begin(ctx, store)
	require.NoError(t, err)
	lines := make([]*domain.OrderItem, 0, len(specs))
	for i, spec := range specs {
		line, err := domain.NewOrderItem(mustItem(t, c, books[i].ID), spec.price, spec.count)
		require.NoError(t, err)
		lines = append(lines, line)
	}
	m := mustMember(t, c, member.ID)
	order, err := domain.NewOrder(m, domain.NewDelivery(m.Address), lines...)
	require.NoError(t, err)
	repository.NewOrders(c).Save(order)
	require.NoError(t, c.Commit(ctx))
	return order.ID
}

func mustItem(t *testing.T, c *uow.Context, id int64) *domain.Item {
	t.Helper()
	item, err := c.Item(context.Background(), id)
	require.NoError(t, err)
	return item
}

func mustMember(t *testing.T, c *uow.Context, id int64) *domain.Member {
	t.Helper()
	member, err := c.Member(context.Background(), id)
	require.NoError(t, err)
	return member
}

// orderFacts is the strategy-independent shape the equivalence test compares.
type orderFacts struct {
	OrderID    int64
	MemberName string
	Status     domain.OrderStatus
	Total      int
	LineCount  int
}

func factsOf(t *testing.T, ctx context.Context, orders []*domain.Order) []orderFacts {
	t.Helper()
	out := make([]orderFacts, 0, len(orders))
	for _, order := range orders {
		member, err := order.Member.Get(ctx)
		require.NoError(t, err)
		lines, err := order.Items.Get(ctx)
		require.NoError(t, err)
		total, err := order.TotalPrice(ctx)
		require.NoError(t, err)
		out = append(out, orderFacts{
			OrderID:    order.ID,
			MemberName: member.Name,
			Status:     order.Status,
			Total:      total,
			LineCount:  len(lines),
		})
	}
	return out
}

func TestOrderStrategies_AgreeOnResults(t *testing.T) {
	ctx := context.Background()
	f := seedFixtures(t)

	naive := func() []orderFacts {
		c, err := uow.Begin(ctx, f.store)
		require.NoError(t, err)
		defer c.Rollback(ctx)
		orders, err := repository.NewOrders(c).FindAll(ctx, storage.OrderFilter{})
		require.NoError(t, err)
		return factsOf(t, ctx, orders)
	}()

	joined := func() []orderFacts {
		c, err := uow.Begin(ctx, f.store)
		require.NoError(t, err)
		defer c.Rollback(ctx)
		orders, err := repository.NewOrders(c).FindAllWithItems(ctx, storage.OrderFilter{})
		require.NoError(t, err)
		return factsOf(t, ctx, orders)
	}()

	require.Equal(t, naive, joined)
	require.Len(t, naive, 2)
	require.Equal(t, "userA", naive[0].MemberName)
	require.Equal(t, 10000*1+20000*2, naive[0].Total)
	require.Equal(t, "userB", naive[1].MemberName)
	require.Equal(t, 20000*3+40000*4, naive[1].Total)

	c, err := uow.Begin(ctx, f.store)
	require.NoError(t, err)
	defer c.Rollback(ctx)
	summaries, err := repository.NewOrders(c).FindSummaries(ctx, storage.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	for i, summary := range summaries {
		require.Equal(t, naive[i].OrderID, summary.OrderID)
		require.Equal(t, naive[i].MemberName, summary.MemberName)
		require.Equal(t, string(naive[i].Status), summary.Status)
	}
}

func TestOrderStrategies_RoundTripCounts(t *testing.T) {
	ctx := context.Background()
	f := seedFixtures(t)

	// Naive: one search, then one trip per association per order.
	c, err := uow.Begin(ctx, f.store)
	require.NoError(t, err)
	f.store.ResetQueryCount()
	orders, err := repository.NewOrders(c).FindAll(ctx, storage.OrderFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), f.store.QueryCount())
	for _, order := range orders {
		_, err = order.Member.Get(ctx)
		require.NoError(t, err)
		_, err = order.Delivery.Get(ctx)
		require.NoError(t, err)
	}
	// 1 search + 2 members + 2 deliveries.
	require.Equal(t, int64(5), f.store.QueryCount())
	require.NoError(t, c.Rollback(ctx))

	// Member/delivery join fetch: a single trip.
	c, err = uow.Begin(ctx, f.store)
	require.NoError(t, err)
	f.store.ResetQueryCount()
	_, err = repository.NewOrders(c).FindAllWithMemberDelivery(ctx, storage.OrderFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), f.store.QueryCount())
	require.NoError(t, c.Rollback(ctx))

	// Extended join fetch: still a single trip, lines included.
	c, err = uow.Begin(ctx, f.store)
	require.NoError(t, err)
	f.store.ResetQueryCount()
	joined, err := repository.NewOrders(c).FindAllWithItems(ctx, storage.OrderFilter{})
	require.NoError(t, err)
	for _, order := range joined {
		_, err = order.Items.Get(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, int64(1), f.store.QueryCount())
	require.NoError(t, c.Rollback(ctx))

	// Direct projection: a single trip.
	c, err = uow.Begin(ctx, f.store)
	require.NoError(t, err)
	f.store.ResetQueryCount()
	_, err = repository.NewOrders(c).FindSummaries(ctx, storage.OrderFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), f.store.QueryCount())
	require.NoError(t, c.Rollback(ctx))
}

func TestOrderSearch_FilterSemantics(t *testing.T) {
	ctx := context.Background()
	f := seedFixtures(t)

	// Cancel userB's order so the status predicate has something to split on.
	c, err := uow.Begin(ctx, f.store)
	require.NoError(t, err)
	order, err := repository.NewOrders(c).FindOne(ctx, f.orderIDs[1])
	require.NoError(t, err)
	require.NoError(t, order.Cancel(ctx))
	require.NoError(t, c.Commit(ctx))

	find := func(filter storage.OrderFilter) []int64 {
		c, err := uow.Begin(ctx, f.store)
		require.NoError(t, err)
		defer c.Rollback(ctx)
		orders, err := repository.NewOrders(c).FindAll(ctx, filter)
		require.NoError(t, err)
		ids := make([]int64, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID)
		}
		return ids
	}

	// Blank predicates match everything.
	require.Equal(t, f.orderIDs, find(storage.OrderFilter{}))

	// Status is an exact match.
	require.Equal(t, f.orderIDs[:1], find(storage.OrderFilter{Status: "ORDER"}))
	require.Equal(t, f.orderIDs[1:], find(storage.OrderFilter{Status: "CANCEL"}))

	// Member name matches substrings.
	require.Equal(t, f.orderIDs[:1], find(storage.OrderFilter{MemberName: "serA"}))
	require.Equal(t, f.orderIDs, find(storage.OrderFilter{MemberName: "user"}))

	// Predicates combine conjunctively.
	require.Empty(t, find(storage.OrderFilter{Status: "ORDER", MemberName: "userB"}))
	require.Equal(t, f.orderIDs[1:], find(storage.OrderFilter{Status: "CANCEL", MemberName: "userB"}))
}
