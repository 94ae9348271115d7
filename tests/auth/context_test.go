package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamu-beverages/sales-api/internal/auth"
	"github.com/tamu-beverages/sales-api/internal/domain"
)

func TestUserContext_RoundTrip(t *testing.T) {
	userCtx := &auth.UserContext{
		UserID:    uuid.New(),
		ProfileID: uuid.New(),
		Username:  "sales1",
		Role:      domain.RoleSalesperson,
	}

	ctx := auth.WithUserContext(context.Background(), userCtx)
	got, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, userCtx, got)

	_, ok = auth.FromContext(context.Background())
	assert.False(t, ok)
}

func TestUserContext_Roles(t *testing.T) {
	admin := &auth.UserContext{ProfileID: uuid.New(), Role: domain.RoleAdmin}
	sales := &auth.UserContext{ProfileID: uuid.New(), Role: domain.RoleSalesperson}

	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsSalesperson())
	assert.True(t, sales.IsSalesperson())
	assert.False(t, sales.IsAdmin())
}

func TestUserContext_SalespersonFilter(t *testing.T) {
	admin := &auth.UserContext{ProfileID: uuid.New(), Role: domain.RoleAdmin}
	sales := &auth.UserContext{ProfileID: uuid.New(), Role: domain.RoleSalesperson}

	assert.Nil(t, admin.SalespersonFilter())

	scope := sales.SalespersonFilter()
	require.NotNil(t, scope)
	assert.Equal(t, sales.ProfileID, *scope)
}

func TestMustFromContext_Panics(t *testing.T) {
	assert.Panics(t, func() {
		auth.MustFromContext(context.Background())
	})
}
