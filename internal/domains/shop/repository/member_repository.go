// Package repository provides the entity repositories over an open unit of
// work. A repository value is cheap and bound to one uow.Context; services
// construct them per transaction.
package repository

import (
	"context"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/uow"
)

// Members persists and loads members.
type Members struct {
	c *uow.Context
}

func NewMembers(c *uow.Context) *Members {
	return &Members{c: c}
}

// Save schedules the insert of a new member; the identifier is assigned at
// commit. Loaded members are never saved explicitly; mutation flushes via
// dirty checking.
func (r *Members) Save(member *domain.Member) {
	r.c.RegisterMember(member)
}

// FindOne loads a member by identifier.
func (r *Members) FindOne(ctx context.Context, id int64) (*domain.Member, error) {
	return r.c.Member(ctx, id)
}

// FindAll lists every member.
func (r *Members) FindAll(ctx context.Context) ([]*domain.Member, error) {
	session, err := r.c.Session()
	if err != nil {
		return nil, err
	}
	recs, err := session.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	members := make([]*domain.Member, 0, len(recs))
	for _, rec := range recs {
		members = append(members, r.c.AttachMember(rec))
	}
	return members, nil
}

// FindByName loads members by exact name; used by the duplicate check.
func (r *Members) FindByName(ctx context.Context, name string) ([]*domain.Member, error) {
	session, err := r.c.Session()
	if err != nil {
		return nil, err
	}
	recs, err := session.FindMembersByName(ctx, name)
	if err != nil {
		return nil, err
	}
	members := make([]*domain.Member, 0, len(recs))
	for _, rec := range recs {
		members = append(members, r.c.AttachMember(rec))
	}
	return members, nil
}
