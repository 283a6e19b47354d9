// Package application hosts the shop use cases. Every service method is one
// transaction: it opens a unit of work, mutates the domain through it, and
// commits. Loaded-entity changes flush via dirty checking, never via
// explicit saves.
package application

import (
	"context"
	"errors"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/repository"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/uow"
)

// MemberService covers member registration and lookup.
type MemberService struct {
	store storage.Store
}

func NewMemberService(store storage.Store) *MemberService {
	return &MemberService{store: store}
}

// Join registers a member. The name must not be in use; the check reads
// before the insert, so the postgres schema backs it with a unique index to
// close the race between concurrent joins.
func (s *MemberService) Join(ctx context.Context, member *domain.Member) (int64, error) {
	if member == nil {
		return 0, errors.New("member is nil")
	}
	c, err := uow.Begin(ctx, s.store)
	if err != nil {
		return 0, err
	}
	defer c.Rollback(ctx)

	members := repository.NewMembers(c)
	existing, err := members.FindByName(ctx, member.Name)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, ErrDuplicateMember
	}
	members.Save(member)
	if err := c.Commit(ctx); err != nil {
		return 0, err
	}
	return member.ID, nil
}

// FindMembers lists every member.
func (s *MemberService) FindMembers(ctx context.Context) ([]*domain.Member, error) {
	c, err := uow.Begin(ctx, s.store)
	if err != nil {
		return nil, err
	}
	defer c.Rollback(ctx)

	members, err := repository.NewMembers(c).FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Commit(ctx); err != nil {
		return nil, err
	}
	return members, nil
}

// FindOne loads a single member; absence is fatal for the caller.
func (s *MemberService) FindOne(ctx context.Context, id int64) (*domain.Member, error) {
	c, err := uow.Begin(ctx, s.store)
	if err != nil {
		return nil, err
	}
	defer c.Rollback(ctx)

	member, err := repository.NewMembers(c).FindOne(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrMemberNotFound)
	}
	if err := c.Commit(ctx); err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateName renames a member. The loaded entity is mutated in place; the
// unit of work detects the change at commit and writes it without a save
// call.
func (s *MemberService) UpdateName(ctx context.Context, id int64, name string) (*domain.Member, error) {
	c, err := uow.Begin(ctx, s.store)
	if err != nil {
		return nil, err
	}
	defer c.Rollback(ctx)

	member, err := repository.NewMembers(c).FindOne(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrMemberNotFound)
	}
	if err := member.Rename(name); err != nil {
		return nil, err
	}
	if err := c.Commit(ctx); err != nil {
		return nil, err
	}
	return member, nil
}
