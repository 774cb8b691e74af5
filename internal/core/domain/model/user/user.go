package user

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through the RestoreUser factory.
var ErrUserIsNotConstructed = errors.New("User must be created via RestoreUser")

// User is the read-only identity projection the core consumes for
// authorization and display-name enrichment.
type User struct {
	id   kernel.UUID
	name string
	role Role

	isConstructed bool
}

// RestoreUser reconstructs a user from the external identity store.
// The id and role must be valid; the name may be empty.
func RestoreUser(id kernel.UUID, name string, role Role) (*User, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return nil, err
	}

	return &User{
		id:            id,
		name:          name,
		role:          role,
		isConstructed: true,
	}, nil
}

// Validate ensures the User instance was created through RestoreUser.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// Role returns the user's role.
func (u *User) Role() Role {
	return u.role
}
