package repository

import (
	"context"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/uow"
)

// Items persists and loads catalog items.
type Items struct {
	c *uow.Context
}

func NewItems(c *uow.Context) *Items {
	return &Items{c: c}
}

// Save schedules the insert of a never-persisted item. Items that already
// have an identifier are tracked by the unit of work and flush through
// dirty checking instead.
func (r *Items) Save(item *domain.Item) {
	if item.ID == 0 {
		r.c.RegisterItem(item)
	}
}

// FindOne loads an item by identifier.
func (r *Items) FindOne(ctx context.Context, id int64) (*domain.Item, error) {
	return r.c.Item(ctx, id)
}

// FindAll lists the catalog.
func (r *Items) FindAll(ctx context.Context) ([]*domain.Item, error) {
	session, err := r.c.Session()
	if err != nil {
		return nil, err
	}
	recs, err := session.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(recs))
	for _, rec := range recs {
		items = append(items, r.c.AttachItem(rec))
	}
	return items, nil
}
