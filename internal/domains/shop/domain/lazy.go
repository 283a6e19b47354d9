package domain

import "context"

// Ref is a deferred reference to a single associated entity. It carries the
// referenced identifier and a loader supplied by the persistence layer; the
// target is fetched on first Get and cached. Loaders are bound to the unit of
// work that produced the reference and fail once it has ended.
type Ref[T any] struct {
	id    int64
	value *T
	load  func(ctx context.Context) (*T, error)
}

// NewRef builds an unresolved reference around a loader.
func NewRef[T any](id int64, load func(ctx context.Context) (*T, error)) *Ref[T] {
	return &Ref[T]{id: id, load: load}
}

// ResolvedRef builds a reference that is already materialized.
func ResolvedRef[T any](id int64, value *T) *Ref[T] {
	return &Ref[T]{id: id, value: value}
}

// ID returns the referenced identifier without triggering a load.
func (r *Ref[T]) ID() int64 { return r.id }

// Resolved reports whether the target has been materialized.
func (r *Ref[T]) Resolved() bool { return r != nil && r.value != nil }

// Get resolves the reference, loading the target on first access.
func (r *Ref[T]) Get(ctx context.Context) (*T, error) {
	if r.value != nil {
		return r.value, nil
	}
	value, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	r.value = value
	return r.value, nil
}

// bind is used by the persistence layer when an identifier is assigned after
// the reference was created (cascade inserts).
func (r *Ref[T]) bind(id int64) { r.id = id }

// BindID records the identifier of an already-materialized target.
func (r *Ref[T]) BindID(id int64) { r.bind(id) }

// List is the collection counterpart of Ref: an order's owned lines are
// loaded on first access when the order row was fetched alone.
type List[T any] struct {
	items  []*T
	loaded bool
	load   func(ctx context.Context) ([]*T, error)
}

// NewList builds an unresolved collection around a loader.
func NewList[T any](load func(ctx context.Context) ([]*T, error)) *List[T] {
	return &List[T]{load: load}
}

// ResolvedList builds a collection that is already materialized.
func ResolvedList[T any](items []*T) *List[T] {
	return &List[T]{items: items, loaded: true}
}

// Resolved reports whether the collection has been materialized.
func (l *List[T]) Resolved() bool { return l != nil && l.loaded }

// Get resolves the collection, loading it on first access.
func (l *List[T]) Get(ctx context.Context) ([]*T, error) {
	if l.loaded {
		return l.items, nil
	}
	items, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	l.items = items
	l.loaded = true
	return l.items, nil
}
