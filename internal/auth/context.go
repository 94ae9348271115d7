package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/tamu-beverages/sales-api/internal/domain"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uuid.UUID
	ProfileID   uuid.UUID
	Username    string
	DisplayName string
	Role        domain.Role
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// IsAdmin checks if the user holds the admin role
func (u *UserContext) IsAdmin() bool {
	return u.Role == domain.RoleAdmin
}

// IsSalesperson checks if the user holds the salesperson role
func (u *UserContext) IsSalesperson() bool {
	return u.Role == domain.RoleSalesperson
}

// SalespersonFilter returns the profile ID to scope list queries by.
// Returns nil for admins, who see every record.
func (u *UserContext) SalespersonFilter() *uuid.UUID {
	if u.IsAdmin() {
		return nil
	}
	id := u.ProfileID
	return &id
}
