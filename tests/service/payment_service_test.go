package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/repository"
	"github.com/tamu-beverages/sales-api/internal/service"
	"github.com/tamu-beverages/sales-api/tests/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createPaymentService(db *gorm.DB) *service.PaymentService {
	return service.NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewClientRepository(db),
		repository.NewOrderRepository(db),
		zap.NewNop(),
	)
}

func TestPaymentService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createPaymentService(db)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)
	ctx := testutil.SalespersonContext(salesProfile)

	payment, err := svc.Create(ctx, &domain.CreatePaymentRequest{
		ClientID:      client.ID,
		AmountPaid:    "500.00",
		PaymentDate:   "2026-08-20",
		PaymentMethod: "mpesa",
	})
	require.NoError(t, err)

	assert.Equal(t, "500.00", payment.AmountPaid)
	assert.Equal(t, "2026-08-20", payment.PaymentDate)
	assert.Equal(t, "mpesa", payment.PaymentMethod)
	require.NotNil(t, payment.RecordedBy)
	assert.Equal(t, salesProfile.ID, payment.RecordedBy.ID)
	assert.Nil(t, payment.OrderID)
}

func TestPaymentService_CreateAgainstOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createPaymentService(db)
	orderSvc := createOrderService(db)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)
	other := testutil.CreateTestClient(t, db, "Other", domain.ClientStatusApproved, &salesProfile.ID)
	flavor := testutil.CreateTestFlavor(t, db, "Embe", "1500.00")
	ctx := testutil.SalespersonContext(salesProfile)

	order, err := orderSvc.Create(ctx, &domain.CreateOrderRequest{
		ClientID: client.ID,
		Items:    []domain.OrderItemRequest{{FlavorID: flavor.ID, QuantityLiters: "1"}},
	})
	require.NoError(t, err)

	// Order belongs to a different client than the payment
	_, err = svc.Create(ctx, &domain.CreatePaymentRequest{
		ClientID:    other.ID,
		OrderID:     &order.ID,
		AmountPaid:  "100.00",
		PaymentDate: "2026-08-20",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	payment, err := svc.Create(ctx, &domain.CreatePaymentRequest{
		ClientID:    client.ID,
		OrderID:     &order.ID,
		AmountPaid:  "100.00",
		PaymentDate: "2026-08-20",
	})
	require.NoError(t, err)
	require.NotNil(t, payment.OrderID)
	assert.Equal(t, order.ID, *payment.OrderID)

	// Recording a payment never flips the order's payment status
	reloaded, err := orderSvc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusOutstanding, reloaded.PaymentStatus)
}

func TestPaymentService_CreateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createPaymentService(db)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)
	ctx := testutil.SalespersonContext(salesProfile)

	_, err := svc.Create(ctx, &domain.CreatePaymentRequest{
		ClientID:    client.ID,
		AmountPaid:  "-5.00",
		PaymentDate: "2026-08-20",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.Create(ctx, &domain.CreatePaymentRequest{
		ClientID:    client.ID,
		AmountPaid:  "5.00",
		PaymentDate: "20/08/2026",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestPaymentService_UpdateAndDeletePermissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createPaymentService(db)
	_, adminProfile := testutil.CreateTestUser(t, db, "admin", domain.RoleAdmin)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	_, otherProfile := testutil.CreateTestUser(t, db, "sales2", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)

	payment, err := svc.Create(testutil.SalespersonContext(salesProfile), &domain.CreatePaymentRequest{
		ClientID:    client.ID,
		AmountPaid:  "250.00",
		PaymentDate: "2026-08-20",
	})
	require.NoError(t, err)

	amount := "300.00"
	_, err = svc.Update(testutil.SalespersonContext(otherProfile), payment.ID, &domain.UpdatePaymentRequest{
		AmountPaid: &amount,
	})
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	// Admins may edit any payment
	updated, err := svc.Update(testutil.AdminContext(adminProfile), payment.ID, &domain.UpdatePaymentRequest{
		AmountPaid: &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, "300.00", updated.AmountPaid)

	err = svc.Delete(testutil.SalespersonContext(otherProfile), payment.ID)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	require.NoError(t, svc.Delete(testutil.SalespersonContext(salesProfile), payment.ID))
	_, err = svc.Get(testutil.SalespersonContext(salesProfile), payment.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPaymentService_ListScoping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createPaymentService(db)
	_, adminProfile := testutil.CreateTestUser(t, db, "admin", domain.RoleAdmin)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	_, otherProfile := testutil.CreateTestUser(t, db, "sales2", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)

	_, err := svc.Create(testutil.SalespersonContext(salesProfile), &domain.CreatePaymentRequest{
		ClientID:    client.ID,
		AmountPaid:  "100.00",
		PaymentDate: "2026-08-20",
	})
	require.NoError(t, err)
	_, err = svc.Create(testutil.SalespersonContext(otherProfile), &domain.CreatePaymentRequest{
		ClientID:    client.ID,
		AmountPaid:  "200.00",
		PaymentDate: "2026-08-21",
	})
	require.NoError(t, err)

	all, err := svc.List(testutil.AdminContext(adminProfile), repository.PaymentFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.List(testutil.SalespersonContext(salesProfile), repository.PaymentFilters{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "100.00", mine[0].AmountPaid)
}
