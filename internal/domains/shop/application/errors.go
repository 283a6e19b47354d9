package application

import (
	"errors"
	"fmt"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
)

var (
	// ErrDuplicateMember signals a join with a name that is already taken.
	ErrDuplicateMember = errors.New("member name already in use")
	// ErrMemberNotFound wraps a member lookup that resolved nothing where
	// absence is fatal.
	ErrMemberNotFound = errors.New("member not found")
	// ErrItemNotFound wraps an item lookup that resolved nothing.
	ErrItemNotFound = errors.New("item not found")
	// ErrOrderNotFound wraps an order lookup that resolved nothing.
	ErrOrderNotFound = errors.New("order not found")
)

// notFound rewraps storage absence into the caller-facing sentinel; other
// errors pass through untouched.
func notFound(err error, sentinel error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
