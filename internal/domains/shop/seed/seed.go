// Package seed loads the demo fixtures: two members, four books, and one
// two-line order per member. Everything runs through the services, so the
// seeded stock reflects the placed orders exactly as it would in production.
package seed

import (
	"context"
	"fmt"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/application"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
)

// Services are the use cases the fixtures run through.
type Services struct {
	Members *application.MemberService
	Items   *application.ItemService
	Orders  *application.OrderService
}

// Run seeds both demo members with their books and orders.
func Run(ctx context.Context, s Services) error {
	if err := seedUserA(ctx, s); err != nil {
		return fmt.Errorf("seed userA: %w", err)
	}
	if err := seedUserB(ctx, s); err != nil {
		return fmt.Errorf("seed userB: %w", err)
	}
	return nil
}

func seedUserA(ctx context.Context, s Services) error {
	memberID, err := createMember(ctx, s, "userA", "Seoul", "Gangnam", "15640")
	if err != nil {
		return err
	}
	book1, err := createBook(ctx, s, "JPA1 BOOK", 10000, 100)
	if err != nil {
		return err
	}
	book2, err := createBook(ctx, s, "JPA2 BOOK", 20000, 100)
	if err != nil {
		return err
	}
	_, err = s.Orders.PlaceOrderLines(ctx, memberID,
		application.OrderLine{ItemID: book1, Count: 1},
		application.OrderLine{ItemID: book2, Count: 2},
	)
	return err
}

func seedUserB(ctx context.Context, s Services) error {
	memberID, err := createMember(ctx, s, "userB", "Suwon", "Yeongtong", "53134")
	if err != nil {
		return err
	}
	book1, err := createBook(ctx, s, "SPRING1 BOOK", 20000, 200)
	if err != nil {
		return err
	}
	book2, err := createBook(ctx, s, "SPRING2 BOOK", 40000, 300)
	if err != nil {
		return err
	}
	_, err = s.Orders.PlaceOrderLines(ctx, memberID,
		application.OrderLine{ItemID: book1, Count: 3},
		application.OrderLine{ItemID: book2, Count: 4},
	)
	return err
}

func createMember(ctx context.Context, s Services, name, city, street, zipcode string) (int64, error) {
	member, err := domain.NewMember(name, domain.NewAddress(city, street, zipcode))
	if err != nil {
		return 0, err
	}
	return s.Members.Join(ctx, member)
}

func createBook(ctx context.Context, s Services, name string, price, stock int) (int64, error) {
	book, err := domain.NewBook(name, price, stock, "", "")
	if err != nil {
		return 0, err
	}
	return s.Items.SaveItem(ctx, book)
}
