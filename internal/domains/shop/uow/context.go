// Package uow implements the transaction-scoped unit of work: an identity
// map over loaded entities, snapshot-based dirty checking at commit, and
// deferred cascading inserts for the order aggregate. A Context is bound to
// exactly one storage session and must not outlive or be shared across
// transactions.
package uow

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
)

// ErrStaleContext is returned when a lazy association is resolved, or a
// session operation attempted, after the owning unit of work ended.
var ErrStaleContext = errors.New("unit of work has ended")

type kind string

const (
	kindMember    kind = "member"
	kindItem      kind = "item"
	kindOrder     kind = "order"
	kindDelivery  kind = "delivery"
	kindOrderItem kind = "order_item"
)

type key struct {
	kind kind
	id   int64
}

// Context is one unit of work. All entity loads and mutations for a logical
// transaction happen through a single Context between Begin and Commit.
type Context struct {
	session storage.Session
	open    bool

	identity  map[key]any
	snapshots map[key]any

	newMembers []*domain.Member
	newItems   []*domain.Item
	newOrders  []*domain.Order
}

// Begin opens a storage session and a fresh unit of work on top of it.
func Begin(ctx context.Context, store storage.Store) (*Context, error) {
	session, err := store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin unit of work: %w", err)
	}
	return &Context{
		session:   session,
		open:      true,
		identity:  map[key]any{},
		snapshots: map[key]any{},
	}, nil
}

// Open reports whether the unit of work is still active.
func (c *Context) Open() bool { return c.open }

// Session exposes the underlying storage session for query execution. It
// must only be used while the unit of work is open.
func (c *Context) Session() (storage.Session, error) {
	if !c.open {
		return nil, ErrStaleContext
	}
	return c.session, nil
}

// RegisterMember defers the insert of a never-persisted member to commit.
func (c *Context) RegisterMember(member *domain.Member) {
	c.newMembers = append(c.newMembers, member)
}

// RegisterItem defers the insert of a never-persisted item to commit.
func (c *Context) RegisterItem(item *domain.Item) {
	c.newItems = append(c.newItems, item)
}

// RegisterOrder defers the cascading insert of a new order aggregate to
// commit: the order, its delivery, and its lines are persisted together
// without separate calls.
func (c *Context) RegisterOrder(order *domain.Order) {
	c.newOrders = append(c.newOrders, order)
}

// Commit flushes the unit of work: pending inserts in dependency order,
// then one update per tracked entity whose current state differs from its
// loaded snapshot, then the storage commit. Any failure rolls the whole
// session back; no partial write becomes visible.
func (c *Context) Commit(ctx context.Context) error {
	if !c.open {
		return ErrStaleContext
	}
	if err := c.flushInserts(ctx); err != nil {
		return c.abort(ctx, err)
	}
	if err := c.flushDirty(ctx); err != nil {
		return c.abort(ctx, err)
	}
	c.open = false
	if err := c.session.Commit(ctx); err != nil {
		return fmt.Errorf("commit unit of work: %w", err)
	}
	return nil
}

// Rollback discards every tracked change and ends the unit of work. No
// writes are emitted.
func (c *Context) Rollback(ctx context.Context) error {
	if !c.open {
		return nil
	}
	c.open = false
	return c.session.Rollback(ctx)
}

func (c *Context) abort(ctx context.Context, err error) error {
	c.open = false
	_ = c.session.Rollback(ctx)
	return err
}

func (c *Context) flushInserts(ctx context.Context) error {
	for _, member := range c.newMembers {
		rec := memberRecord(member)
		if err := c.session.InsertMember(ctx, &rec); err != nil {
			return err
		}
		member.ID = rec.ID
		c.track(kindMember, rec.ID, member, rec)
	}
	for _, item := range c.newItems {
		rec := itemRecord(item)
		if err := c.session.InsertItem(ctx, &rec); err != nil {
			return err
		}
		item.ID = rec.ID
		c.track(kindItem, rec.ID, item, rec)
	}
	for _, order := range c.newOrders {
		if err := c.insertOrderGraph(ctx, order); err != nil {
			return err
		}
	}
	c.newMembers, c.newItems, c.newOrders = nil, nil, nil
	return nil
}

// insertOrderGraph persists one aggregate: delivery first, then the order
// row pointing at it, then the lines. The delivery's back-reference to the
// order is not known until the order row exists; the dirty pass that
// follows the inserts emits that one fix-up update.
func (c *Context) insertOrderGraph(ctx context.Context, order *domain.Order) error {
	delivery, err := order.Delivery.Get(ctx)
	if err != nil {
		return err
	}
	lines, err := order.Items.Get(ctx)
	if err != nil {
		return err
	}

	deliveryRec := deliveryRecord(delivery)
	if err := c.session.InsertDelivery(ctx, &deliveryRec); err != nil {
		return err
	}
	delivery.ID = deliveryRec.ID
	order.Delivery.BindID(delivery.ID)
	c.track(kindDelivery, delivery.ID, delivery, deliveryRec)

	orderRec := orderRecord(order)
	if err := c.session.InsertOrder(ctx, &orderRec); err != nil {
		return err
	}
	order.ID = orderRec.ID
	c.track(kindOrder, order.ID, order, orderRec)

	delivery.OrderID = order.ID

	for _, line := range lines {
		line.OrderID = order.ID
		lineRec := orderItemRecord(line)
		if err := c.session.InsertOrderItem(ctx, &lineRec); err != nil {
			return err
		}
		line.ID = lineRec.ID
		c.track(kindOrderItem, line.ID, line, lineRec)
	}
	return nil
}

// flushDirty diffs every tracked entity against its snapshot and emits one
// update per changed row. Callers never issue explicit updates for loaded
// entities; this is the only update path.
func (c *Context) flushDirty(ctx context.Context) error {
	for k, snapshot := range c.snapshots {
		entity := c.identity[k]
		switch k.kind {
		case kindMember:
			rec := memberRecord(entity.(*domain.Member))
			if rec != snapshot.(storage.MemberRecord) {
				if err := c.session.UpdateMember(ctx, &rec); err != nil {
					return err
				}
			}
		case kindItem:
			rec := itemRecord(entity.(*domain.Item))
			if rec != snapshot.(storage.ItemRecord) {
				if err := c.session.UpdateItem(ctx, &rec); err != nil {
					return err
				}
			}
		case kindOrder:
			rec := orderRecord(entity.(*domain.Order))
			if rec != snapshot.(storage.OrderRecord) {
				if err := c.session.UpdateOrder(ctx, &rec); err != nil {
					return err
				}
			}
		case kindDelivery:
			rec := deliveryRecord(entity.(*domain.Delivery))
			if rec != snapshot.(storage.DeliveryRecord) {
				if err := c.session.UpdateDelivery(ctx, &rec); err != nil {
					return err
				}
			}
		case kindOrderItem:
			rec := orderItemRecord(entity.(*domain.OrderItem))
			if rec != snapshot.(storage.OrderItemRecord) {
				if err := c.session.UpdateOrderItem(ctx, &rec); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// track records an entity in the identity map together with the snapshot
// the dirty pass will diff against.
func (c *Context) track(knd kind, id int64, entity any, snapshot any) {
	k := key{kind: knd, id: id}
	c.identity[k] = entity
	c.snapshots[k] = snapshot
}

// lookup returns the already-tracked instance for an identifier, if any.
func (c *Context) lookup(knd kind, id int64) (any, bool) {
	entity, ok := c.identity[key{kind: knd, id: id}]
	return entity, ok
}
