// Package user provides the identity read model consumed by the core.
// Users are owned by an external authentication subsystem; the core only
// reads their id, display name, and role.
package user

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role represents the caller's role in the marketplace.
// Authorization decisions in the core are made against this value.
type Role int

const (
	// UnknownRole represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	UnknownRole Role = iota

	// Buyer places orders and can cancel their own pending orders.
	Buyer

	// Farmer owns products and moves orders on those products through
	// their lifecycle.
	Farmer

	// Admin has unrestricted access to every operation.
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "Unknown",
		Buyer:       "Buyer",
		Farmer:      "Farmer",
		Admin:       "Admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // UnknownRole is intentionally excluded as it's invalid
	return map[Role]string{
		Buyer:  "Buyer",
		Farmer: "Farmer",
		Admin:  "Admin",
	}
}

// RoleFromString parses a role received from an external source.
// Accepts the upper-case wire form used by the identity subsystem
// (BUYER, FARMER, ADMIN) as well as the canonical String() form.
func RoleFromString(s string) (Role, error) {
	switch s {
	case "BUYER", "Buyer":
		return Buyer, nil
	case "FARMER", "Farmer":
		return Farmer, nil
	case "ADMIN", "Admin":
		return Admin, nil
	default:
		return UnknownRole, errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%q is not a valid role", s))
	}
}

// Validate checks if the Role value is one of Buyer, Farmer, Admin.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// Implements fmt.Stringer and is safe to call on invalid values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}
