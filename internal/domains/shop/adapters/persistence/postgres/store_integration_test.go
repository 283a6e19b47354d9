//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	shoppostgres "github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/adapters/persistence/postgres"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/application"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/seed"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("bookshop_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, shoppostgres.Migrate(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestPostgresStore_SeededScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := shoppostgres.NewStore(db)
	members := application.NewMemberService(store)
	items := application.NewItemService(store)
	orders := application.NewOrderService(store)
	ctx := context.Background()

	require.NoError(t, seed.Run(ctx, seed.Services{
		Members: members,
		Items:   items,
		Orders:  orders,
	}))

	// Naive listing with full traversal.
	naive, err := orders.ListOrders(ctx, storage.OrderFilter{}, true)
	require.NoError(t, err)
	require.Len(t, naive, 2)
	total, err := naive[0].TotalPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10000*1+20000*2, total)

	// Extended join fetch agrees with the naive result.
	joined, err := orders.ListOrdersWithItems(ctx, storage.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, joined, 2)
	joinedTotal, err := joined[0].TotalPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, total, joinedTotal)
	lines, err := joined[1].Items.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	// Direct projection carries the delivery address.
	summaries, err := orders.ListOrderSummaries(ctx, storage.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "userA", summaries[0].MemberName)
	assert.Equal(t, "Seoul", summaries[0].Address.City)
	assert.Equal(t, "userB", summaries[1].MemberName)

	// Filters run in SQL.
	filtered, err := orders.ListOrderSummaries(ctx, storage.OrderFilter{MemberName: "serB"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "userB", filtered[0].MemberName)
}

func TestPostgresStore_DirtyCheckAndCancel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := shoppostgres.NewStore(db)
	members := application.NewMemberService(store)
	items := application.NewItemService(store)
	orders := application.NewOrderService(store)
	ctx := context.Background()

	member, err := domain.NewMember("userA", domain.NewAddress("Seoul", "Gangnam", "15640"))
	require.NoError(t, err)
	memberID, err := members.Join(ctx, member)
	require.NoError(t, err)

	book, err := domain.NewBook("JPA1 BOOK", 10000, 10, "kim", "1234")
	require.NoError(t, err)
	bookID, err := items.SaveItem(ctx, book)
	require.NoError(t, err)

	// Rename flushes through dirty checking.
	_, err = members.UpdateName(ctx, memberID, "userA2")
	require.NoError(t, err)
	renamed, err := members.FindOne(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, "userA2", renamed.Name)

	orderID, err := orders.PlaceOrder(ctx, memberID, bookID, 4)
	require.NoError(t, err)

	after, err := items.FindOne(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 6, after.StockQuantity)

	require.NoError(t, orders.CancelOrder(ctx, orderID))
	restored, err := items.FindOne(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 10, restored.StockQuantity)

	err = orders.CancelOrder(ctx, orderID)
	assert.ErrorIs(t, err, domain.ErrOrderAlreadyCancelled)
}

func TestPostgresStore_DuplicateMemberIndex(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := shoppostgres.NewStore(db)
	members := application.NewMemberService(store)
	ctx := context.Background()

	first, err := domain.NewMember("userA", domain.NewAddress("Seoul", "Gangnam", "15640"))
	require.NoError(t, err)
	_, err = members.Join(ctx, first)
	require.NoError(t, err)

	second, err := domain.NewMember("userA", domain.NewAddress("Suwon", "Yeongtong", "53134"))
	require.NoError(t, err)
	_, err = members.Join(ctx, second)
	assert.ErrorIs(t, err, application.ErrDuplicateMember)
}
