package application

import (
	"context"
	"errors"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/repository"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/uow"
)

// ItemService covers catalog maintenance.
type ItemService struct {
	store storage.Store
}

func NewItemService(store storage.Store) *ItemService {
	return &ItemService{store: store}
}

// SaveItem persists a new catalog item and returns its identifier.
func (s *ItemService) SaveItem(ctx context.Context, item *domain.Item) (int64, error) {
	if item == nil {
		return 0, errors.New("item is nil")
	}
	c, err := uow.Begin(ctx, s.store)
	if err != nil {
		return 0, err
	}
	defer c.Rollback(ctx)

	repository.NewItems(c).Save(item)
	if err := c.Commit(ctx); err != nil {
		return 0, err
	}
	return item.ID, nil
}

// UpdateItem loads the item and mutates its fields directly. The flush at
// commit comes from dirty checking, not from an explicit update.
func (s *ItemService) UpdateItem(ctx context.Context, id int64, name string, price, stockQuantity int) error {
	if name == "" {
		return domain.ErrEmptyItemName
	}
	if price < 0 {
		return domain.ErrNegativePrice
	}
	c, err := uow.Begin(ctx, s.store)
	if err != nil {
		return err
	}
	defer c.Rollback(ctx)

	item, err := repository.NewItems(c).FindOne(ctx, id)
	if err != nil {
		return notFound(err, ErrItemNotFound)
	}
	item.Name = name
	item.Price = price
	item.StockQuantity = stockQuantity
	return c.Commit(ctx)
}

// FindItems lists the catalog.
func (s *ItemService) FindItems(ctx context.Context) ([]*domain.Item, error) {
	c, err := uow.Begin(ctx, s.store)
	if err != nil {
		return nil, err
	}
	defer c.Rollback(ctx)

	items, err := repository.NewItems(c).FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Commit(ctx); err != nil {
		return nil, err
	}
	return items, nil
}

// FindOne loads a single item; absence is fatal for the caller.
func (s *ItemService) FindOne(ctx context.Context, id int64) (*domain.Item, error) {
	c, err := uow.Begin(ctx, s.store)
	if err != nil {
		return nil, err
	}
	defer c.Rollback(ctx)

	item, err := repository.NewItems(c).FindOne(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrItemNotFound)
	}
	if err := c.Commit(ctx); err != nil {
		return nil, err
	}
	return item, nil
}
