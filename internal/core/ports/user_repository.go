package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
)

// UserRepository defines the read contract for user records.
// Users are managed by the identity service; this module only resolves them
// to enforce role checks.
type UserRepository interface {
	// Get retrieves a user by their unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}
