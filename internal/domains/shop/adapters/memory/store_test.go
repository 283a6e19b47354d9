package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
)

func TestSession_StagesUntilCommit(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	s1, err := store.Begin(ctx)
	require.NoError(t, err)
	rec := storage.MemberRecord{Name: "userA", City: "Seoul"}
	require.NoError(t, s1.InsertMember(ctx, &rec))
	require.NotZero(t, rec.ID)

	// Uncommitted writes are invisible to other sessions.
	s2, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = s2.GetMember(ctx, rec.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s1.Commit(ctx))
	got, err := s2.GetMember(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "userA", got.Name)
}

func TestSession_RollbackDropsWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	s, err := store.Begin(ctx)
	require.NoError(t, err)
	rec := storage.MemberRecord{Name: "userA"}
	require.NoError(t, s.InsertMember(ctx, &rec))
	require.NoError(t, s.Rollback(ctx))

	check, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = check.GetMember(ctx, rec.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSearchOrders_LimitBoundsOrders(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	s, err := store.Begin(ctx)
	require.NoError(t, err)
	member := storage.MemberRecord{Name: "userA"}
	require.NoError(t, s.InsertMember(ctx, &member))
	for i := 0; i < 3; i++ {
		delivery := storage.DeliveryRecord{Status: "READY"}
		require.NoError(t, s.InsertDelivery(ctx, &delivery))
		order := storage.OrderRecord{MemberID: member.ID, DeliveryID: delivery.ID, Status: "ORDER"}
		require.NoError(t, s.InsertOrder(ctx, &order))
		item := storage.ItemRecord{Kind: "BOOK", Name: "JPA1 BOOK", Price: 10000}
		require.NoError(t, s.InsertItem(ctx, &item))
		for j := 0; j < 2; j++ {
			line := storage.OrderItemRecord{OrderID: order.ID, ItemID: item.ID, OrderPrice: 10000, Count: 1}
			require.NoError(t, s.InsertOrderItem(ctx, &line))
		}
	}
	require.NoError(t, s.Commit(ctx))

	q, err := store.Begin(ctx)
	require.NoError(t, err)

	orders, err := q.SearchOrders(ctx, storage.OrderFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// The detail expansion repeats rows per line; the cap still counts orders.
	details, err := q.SearchOrderDetails(ctx, storage.OrderFilter{Limit: 2})
	require.NoError(t, err)
	distinct := map[int64]bool{}
	for _, row := range details {
		distinct[row.Order.ID] = true
	}
	require.Len(t, distinct, 2)
	require.Len(t, details, 4)
}

func TestSearchOrderSummaries_ShapesProjection(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	s, err := store.Begin(ctx)
	require.NoError(t, err)
	member := storage.MemberRecord{Name: "userA", City: "Seoul", Street: "Gangnam", Zipcode: "15640"}
	require.NoError(t, s.InsertMember(ctx, &member))
	delivery := storage.DeliveryRecord{City: "Seoul", Street: "Gangnam", Zipcode: "15640", Status: "READY"}
	require.NoError(t, s.InsertDelivery(ctx, &delivery))
	order := storage.OrderRecord{MemberID: member.ID, DeliveryID: delivery.ID, Status: "ORDER"}
	require.NoError(t, s.InsertOrder(ctx, &order))
	require.NoError(t, s.Commit(ctx))

	q, err := store.Begin(ctx)
	require.NoError(t, err)
	summaries, err := q.SearchOrderSummaries(ctx, storage.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, "userA", summaries[0].MemberName)
	require.Equal(t, "Seoul", summaries[0].Address.City)
	require.Equal(t, "ORDER", summaries[0].Status)
}
