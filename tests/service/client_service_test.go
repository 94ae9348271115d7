package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/repository"
	"github.com/tamu-beverages/sales-api/internal/service"
	"github.com/tamu-beverages/sales-api/tests/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createClientService(db *gorm.DB) *service.ClientService {
	clientRepo := repository.NewClientRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	return service.NewClientService(clientRepo, profileRepo, zap.NewNop())
}

func TestClientService_CreateAsAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createClientService(db)
	_, adminProfile := testutil.CreateTestUser(t, db, "admin", domain.RoleAdmin)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	ctx := testutil.AdminContext(adminProfile)

	client, err := svc.Create(ctx, &domain.CreateClientRequest{
		Name:                  "Duka La Mama",
		ClientType:            domain.ClientTypeWholesale,
		AssignedSalespersonID: &salesProfile.ID,
	})
	require.NoError(t, err)

	// Admin-created clients skip the approval queue
	assert.Equal(t, domain.ClientStatusApproved, client.Status)
	assert.False(t, client.IsNewClient)
	require.NotNil(t, client.AssignedSalesperson)
	assert.Equal(t, salesProfile.ID, client.AssignedSalesperson.ID)

	// The false flag must survive the insert, not just the response
	var stored domain.Client
	require.NoError(t, db.First(&stored, "id = ?", client.ID).Error)
	assert.False(t, stored.IsNewClient)
	assert.Equal(t, domain.ClientStatusApproved, stored.Status)
}

func TestClientService_CreateAsSalesperson(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createClientService(db)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	_, otherProfile := testutil.CreateTestUser(t, db, "sales2", domain.RoleSalesperson)
	ctx := testutil.SalespersonContext(salesProfile)

	client, err := svc.Create(ctx, &domain.CreateClientRequest{
		Name: "Kiosk Uhuru",
		// Attempted self-assignment must be ignored for salespersons
		AssignedSalespersonID: &otherProfile.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ClientStatusPending, client.Status)
	assert.True(t, client.IsNewClient)
	assert.Nil(t, client.AssignedSalesperson)
	require.NotNil(t, client.RequestedBy)
	assert.Equal(t, salesProfile.ID, client.RequestedBy.ID)
	assert.Equal(t, domain.ClientTypeRetail, client.ClientType)
}

func TestClientService_CreateRejectsUnknownAssignee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createClientService(db)
	_, adminProfile := testutil.CreateTestUser(t, db, "admin", domain.RoleAdmin)
	ctx := testutil.AdminContext(adminProfile)

	bogus := uuid.New()
	_, err := svc.Create(ctx, &domain.CreateClientRequest{
		Name:                  "Duka",
		AssignedSalespersonID: &bogus,
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	// Assigning to an admin profile is also invalid
	_, err = svc.Create(ctx, &domain.CreateClientRequest{
		Name:                  "Duka",
		AssignedSalespersonID: &adminProfile.ID,
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestClientService_ApproveLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createClientService(db)
	_, adminProfile := testutil.CreateTestUser(t, db, "admin", domain.RoleAdmin)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	adminCtx := testutil.AdminContext(adminProfile)
	salesCtx := testutil.SalespersonContext(salesProfile)

	created, err := svc.Create(salesCtx, &domain.CreateClientRequest{Name: "Bar Moja"})
	require.NoError(t, err)

	// Salespersons cannot approve
	_, err = svc.Approve(salesCtx, created.ID, &domain.ApproveClientRequest{})
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	approved, err := svc.Approve(adminCtx, created.ID, &domain.ApproveClientRequest{
		AssigneeID: &salesProfile.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ClientStatusApproved, approved.Status)
	assert.False(t, approved.IsNewClient)
	require.NotNil(t, approved.AssignedSalesperson)
	assert.Equal(t, salesProfile.ID, approved.AssignedSalesperson.ID)

	// Approving twice is a state conflict, not an idempotent no-op
	_, err = svc.Approve(adminCtx, created.ID, &domain.ApproveClientRequest{})
	assert.ErrorIs(t, err, service.ErrInvalidState)

	_, err = svc.Reject(adminCtx, created.ID)
	assert.ErrorIs(t, err, service.ErrInvalidState)
}

func TestClientService_Reject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createClientService(db)
	_, adminProfile := testutil.CreateTestUser(t, db, "admin", domain.RoleAdmin)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	adminCtx := testutil.AdminContext(adminProfile)
	salesCtx := testutil.SalespersonContext(salesProfile)

	created, err := svc.Create(salesCtx, &domain.CreateClientRequest{Name: "Bar Mbili"})
	require.NoError(t, err)

	rejected, err := svc.Reject(adminCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClientStatusRejected, rejected.Status)
	assert.Nil(t, rejected.AssignedSalesperson)

	// Rejected requests cannot be approved afterwards
	_, err = svc.Approve(adminCtx, created.ID, &domain.ApproveClientRequest{})
	assert.ErrorIs(t, err, service.ErrInvalidState)
}

func TestClientService_UpdatePermissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createClientService(db)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	_, otherProfile := testutil.CreateTestUser(t, db, "sales2", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)

	name := "Duka Jipya"
	_, err := svc.Update(testutil.SalespersonContext(otherProfile), client.ID, &domain.UpdateClientRequest{
		Name: &name,
	})
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	updated, err := svc.Update(testutil.SalespersonContext(salesProfile), client.ID, &domain.UpdateClientRequest{
		Name: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Duka Jipya", updated.Name)
}

func TestClientService_UpdateDropsProtectedFieldsForSalesperson(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createClientService(db)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	_, otherProfile := testutil.CreateTestUser(t, db, "sales2", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)

	status := domain.ClientStatusRejected
	updated, err := svc.Update(testutil.SalespersonContext(salesProfile), client.ID, &domain.UpdateClientRequest{
		Status:                &status,
		AssignedSalespersonID: &otherProfile.ID,
	})
	require.NoError(t, err)

	// Status and assignment changes are silently dropped, not rejected
	assert.Equal(t, domain.ClientStatusApproved, updated.Status)
	require.NotNil(t, updated.AssignedSalesperson)
	assert.Equal(t, salesProfile.ID, updated.AssignedSalesperson.ID)
}

func TestClientService_ListScoping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createClientService(db)
	_, adminProfile := testutil.CreateTestUser(t, db, "admin", domain.RoleAdmin)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	_, otherProfile := testutil.CreateTestUser(t, db, "sales2", domain.RoleSalesperson)

	testutil.CreateTestClient(t, db, "Mine", domain.ClientStatusApproved, &salesProfile.ID)
	testutil.CreateTestClient(t, db, "Theirs", domain.ClientStatusApproved, &otherProfile.ID)
	testutil.CreateTestClient(t, db, "Unassigned", domain.ClientStatusApproved, nil)

	// Own pending request, visible even though unassigned
	pending := testutil.CreateTestClient(t, db, "My Request", domain.ClientStatusPending, nil)
	require.NoError(t, db.Model(pending).Update("requested_by_id", salesProfile.ID).Error)

	all, err := svc.List(testutil.AdminContext(adminProfile), repository.ClientFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	mine, err := svc.List(testutil.SalespersonContext(salesProfile), repository.ClientFilters{})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	names := []string{mine[0].Name, mine[1].Name}
	assert.ElementsMatch(t, []string{"Mine", "My Request"}, names)
}

func TestClientService_DeleteBlockedByOrders(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createClientService(db)
	_, adminProfile := testutil.CreateTestUser(t, db, "admin", domain.RoleAdmin)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)
	flavor := testutil.CreateTestFlavor(t, db, "Embe", "1500.00")

	orderSvc := service.NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewClientRepository(db),
		repository.NewFlavorRepository(db),
		zap.NewNop(),
	)
	_, err := orderSvc.Create(testutil.SalespersonContext(salesProfile), &domain.CreateOrderRequest{
		ClientID: client.ID,
		Items:    []domain.OrderItemRequest{{FlavorID: flavor.ID, QuantityLiters: "10.00"}},
	})
	require.NoError(t, err)

	err = svc.Delete(testutil.AdminContext(adminProfile), client.ID)
	assert.ErrorIs(t, err, service.ErrConflict)

	// Salespersons can never delete clients
	err = svc.Delete(testutil.SalespersonContext(salesProfile), client.ID)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}
