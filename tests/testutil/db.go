package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tamu-beverages/sales-api/internal/auth"
	"github.com/tamu-beverages/sales-api/internal/database"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh in-memory SQLite database and migrates the
// full schema. Each test gets its own database, so no cleanup is needed.
func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory test database")

	require.NoError(t, database.AutoMigrate(db), "failed to migrate test schema")

	return db
}

// CreateTestUser creates a user with a profile in the given role and
// returns both. The password for every test account is "password123".
func CreateTestUser(t *testing.T, db *gorm.DB, username string, role domain.Role) (*domain.User, *domain.Profile) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		DisplayName:  "Test " + username,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)

	profile := &domain.Profile{
		UserID: user.ID,
		Role:   role,
	}
	require.NoError(t, db.Create(profile).Error)

	user.Profile = profile
	return user, profile
}

// CreateTestClient creates a client in the given status
func CreateTestClient(t *testing.T, db *gorm.DB, name string, status domain.ClientStatus, assignedTo *uuid.UUID) *domain.Client {
	client := &domain.Client{
		Name:                  name,
		ClientType:            domain.ClientTypeRetail,
		Status:                status,
		IsNewClient:           status == domain.ClientStatusPending,
		AssignedSalespersonID: assignedTo,
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

// CreateTestFlavor creates an active flavor with the given spot price
func CreateTestFlavor(t *testing.T, db *gorm.DB, name string, price string) *domain.Flavor {
	flavor := &domain.Flavor{
		Name:              name,
		BasePricePerLiter: decimal.RequireFromString(price),
		IsActive:          true,
	}
	require.NoError(t, db.Create(flavor).Error)
	return flavor
}

// AdminContext returns a context carrying an admin identity
func AdminContext(profile *domain.Profile) context.Context {
	return userContext(profile, domain.RoleAdmin)
}

// SalespersonContext returns a context carrying a salesperson identity
func SalespersonContext(profile *domain.Profile) context.Context {
	return userContext(profile, domain.RoleSalesperson)
}

func userContext(profile *domain.Profile, role domain.Role) context.Context {
	username := "test"
	if profile.User != nil {
		username = profile.User.Username
	}
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:    profile.UserID,
		ProfileID: profile.ID,
		Username:  username,
		Role:      role,
	})
}
