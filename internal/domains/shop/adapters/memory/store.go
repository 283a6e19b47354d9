// Package memory is an in-memory storage.Store. It backs the unit-of-work
// and strategy tests (its query counter makes round trips observable) and
// serves as the fallback when no postgres DSN is configured.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
)

var _ storage.Store = (*Store)(nil)

// Store holds the committed state. Sessions stage their writes and apply
// them atomically on commit.
type Store struct {
	mu         sync.Mutex
	members    map[int64]storage.MemberRecord
	items      map[int64]storage.ItemRecord
	orders     map[int64]storage.OrderRecord
	deliveries map[int64]storage.DeliveryRecord
	orderItems map[int64]storage.OrderItemRecord

	nextMember    int64
	nextItem      int64
	nextOrder     int64
	nextDelivery  int64
	nextOrderItem int64

	queries atomic.Int64
}

func NewStore() *Store {
	return &Store{
		members:    map[int64]storage.MemberRecord{},
		items:      map[int64]storage.ItemRecord{},
		orders:     map[int64]storage.OrderRecord{},
		deliveries: map[int64]storage.DeliveryRecord{},
		orderItems: map[int64]storage.OrderItemRecord{},
	}
}

// Begin opens a staged session.
func (s *Store) Begin(_ context.Context) (storage.Session, error) {
	return &session{store: s}, nil
}

// QueryCount reports the number of storage round trips so far.
func (s *Store) QueryCount() int64 { return s.queries.Load() }

// ResetQueryCount zeroes the round-trip counter.
func (s *Store) ResetQueryCount() { s.queries.Store(0) }

type session struct {
	store  *Store
	staged []func(s *Store)
	done   bool
}

var _ storage.Session = (*session)(nil)

func (t *session) roundTrip() {
	t.store.queries.Add(1)
}

func (t *session) Commit(_ context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, apply := range t.staged {
		apply(t.store)
	}
	t.staged = nil
	t.done = true
	return nil
}

func (t *session) Rollback(_ context.Context) error {
	t.staged = nil
	t.done = true
	return nil
}

func (t *session) InsertMember(_ context.Context, rec *storage.MemberRecord) error {
	t.roundTrip()
	t.store.mu.Lock()
	t.store.nextMember++
	rec.ID = t.store.nextMember
	t.store.mu.Unlock()
	clone := *rec
	t.staged = append(t.staged, func(s *Store) { s.members[clone.ID] = clone })
	return nil
}

func (t *session) UpdateMember(_ context.Context, rec *storage.MemberRecord) error {
	t.roundTrip()
	clone := *rec
	t.staged = append(t.staged, func(s *Store) { s.members[clone.ID] = clone })
	return nil
}

func (t *session) GetMember(_ context.Context, id int64) (*storage.MemberRecord, error) {
	t.roundTrip()
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	rec, ok := t.store.members[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &rec, nil
}

func (t *session) ListMembers(_ context.Context) ([]*storage.MemberRecord, error) {
	t.roundTrip()
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	out := make([]*storage.MemberRecord, 0, len(t.store.members))
	for _, id := range sortedKeys(t.store.members) {
		rec := t.store.members[id]
		out = append(out, &rec)
	}
	return out, nil
}

func (t *session) FindMembersByName(_ context.Context, name string) ([]*storage.MemberRecord, error) {
	t.roundTrip()
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	var out []*storage.MemberRecord
	for _, id := range sortedKeys(t.store.members) {
		rec := t.store.members[id]
		if rec.Name == name {
			out = append(out, &rec)
		}
	}
	return out, nil
}

func (t *session) InsertItem(_ context.Context, rec *storage.ItemRecord) error {
	t.roundTrip()
	t.store.mu.Lock()
	t.store.nextItem++
	rec.ID = t.store.nextItem
	t.store.mu.Unlock()
	clone := *rec
	t.staged = append(t.staged, func(s *Store) { s.items[clone.ID] = clone })
	return nil
}

func (t *session) UpdateItem(_ context.Context, rec *storage.ItemRecord) error {
	t.roundTrip()
	clone := *rec
	t.staged = append(t.staged, func(s *Store) { s.items[clone.ID] = clone })
	return nil
}

func (t *session) GetItem(_ context.Context, id int64) (*storage.ItemRecord, error) {
	t.roundTrip()
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	rec, ok := t.store.items[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &rec, nil
}

func (t *session) ListItems(_ context.Context) ([]*storage.ItemRecord, error) {
	t.roundTrip()
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	out := make([]*storage.ItemRecord, 0, len(t.store.items))
	for _, id := range sortedKeys(t.store.items) {
		rec := t.store.items[id]
		out = append(out, &rec)
	}
	return out, nil
}

func (t *session) InsertOrder(_ context.Context, rec *storage.OrderRecord) error {
	t.roundTrip()
	t.store.mu.Lock()
	t.store.nextOrder++
	rec.ID = t.store.nextOrder
	t.store.mu.Unlock()
	clone := *rec
	t.staged = append(t.staged, func(s *Store) { s.orders[clone.ID] = clone })
	return nil
}

func (t *session) UpdateOrder(_ context.Context, rec *storage.OrderRecord) error {
	t.roundTrip()
	clone := *rec
	t.staged = append(t.staged, func(s *Store) { s.orders[clone.ID] = clone })
	return nil
}

func (t *session) GetOrder(_ context.Context, id int64) (*storage.OrderRecord, error) {
	t.roundTrip()
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	rec, ok := t.store.orders[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &rec, nil
}

func (t *session) InsertDelivery(_ context.Context, rec *storage.DeliveryRecord) error {
	t.roundTrip()
	t.store.mu.Lock()
	t.store.nextDelivery++
	rec.ID = t.store.nextDelivery
	t.store.mu.Unlock()
	clone := *rec
	t.staged = append(t.staged, func(s *Store) { s.deliveries[clone.ID] = clone })
	return nil
}

func (t *session) UpdateDelivery(_ context.Context, rec *storage.DeliveryRecord) error {
	t.roundTrip()
	clone := *rec
	t.staged = append(t.staged, func(s *Store) { s.deliveries[clone.ID] = clone })
	return nil
}

func (t *session) GetDelivery(_ context.Context, id int64) (*storage.DeliveryRecord, error) {
	t.roundTrip()
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	rec, ok := t.store.deliveries[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &rec, nil
}

func (t *session) InsertOrderItem(_ context.Context, rec *storage.OrderItemRecord) error {
	t.roundTrip()
	t.store.mu.Lock()
	t.store.nextOrderItem++
	rec.ID = t.store.nextOrderItem
	t.store.mu.Unlock()
	clone := *rec
	t.staged = append(t.staged, func(s *Store) { s.orderItems[clone.ID] = clone })
	return nil
}

func (t *session) UpdateOrderItem(_ context.Context, rec *storage.OrderItemRecord) error {
	t.roundTrip()
	clone := *rec
	t.staged = append(t.staged, func(s *Store) { s.orderItems[clone.ID] = clone })
	return nil
}

func (t *session) ListOrderItemsByOrder(_ context.Context, orderID int64) ([]*storage.OrderItemRecord, error) {
	t.roundTrip()
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	var out []*storage.OrderItemRecord
	for _, id := range sortedKeys(t.store.orderItems) {
		rec := t.store.orderItems[id]
		if rec.OrderID == orderID {
			out = append(out, &rec)
		}
	}
	return out, nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func matches(order storage.OrderRecord, memberName string, filter storage.OrderFilter) bool {
	if filter.Status != "" && order.Status != filter.Status {
		return false
	}
	if filter.MemberName != "" && !strings.Contains(memberName, filter.MemberName) {
		return false
	}
	return true
}
