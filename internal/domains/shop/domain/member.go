package domain

import (
	"errors"
	"strings"
)

var ErrEmptyMemberName = errors.New("member name is required")

// Member is a registered customer. Orders reference members; they never own
// them.
type Member struct {
	ID      int64
	Name    string
	Address Address
}

// NewMember validates and constructs a member.
func NewMember(name string, address Address) (*Member, error) {
	member := &Member{Address: address}
	if err := member.Rename(name); err != nil {
		return nil, err
	}
	return member, nil
}

// Rename trims and validates the member name.
func (m *Member) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyMemberName
	}
	m.Name = name
	return nil
}
