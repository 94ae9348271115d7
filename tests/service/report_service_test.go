package service_test

import (
	"bytes"
	"encoding/csv"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/repository"
	"github.com/tamu-beverages/sales-api/internal/service"
	"github.com/tamu-beverages/sales-api/tests/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createReportService(db *gorm.DB) *service.ReportService {
	return service.NewReportService(repository.NewOrderRepository(db), zap.NewNop())
}

// seedOrder inserts an order with one line directly, bypassing the service
// so tests can control the order date
func seedOrder(t *testing.T, db *gorm.DB, clientID, salespersonID, flavorID uuid.UUID, date time.Time, liters, price string) *domain.Order {
	quantity := decimal.RequireFromString(liters)
	unit := decimal.RequireFromString(price)
	total := quantity.Mul(unit).Round(2)

	order := &domain.Order{
		ClientID:      clientID,
		SalespersonID: salespersonID,
		OrderDate:     date,
		TotalAmount:   total,
		PaymentStatus: domain.PaymentStatusOutstanding,
		Items: []domain.OrderItem{{
			FlavorID:            flavorID,
			QuantityLiters:      quantity,
			PricePerLiterAtSale: unit,
			ItemTotal:           total,
		}},
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func parseCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return records
}

func TestReportService_Daily(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createReportService(db)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)
	flavor := testutil.CreateTestFlavor(t, db, "Embe", "1500.00")

	day := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
	seedOrder(t, db, client.ID, salesProfile.ID, flavor.ID, day, "10", "1500.00")
	// Outside the requested day
	seedOrder(t, db, client.ID, salesProfile.ID, flavor.ID, day.AddDate(0, 0, 1), "5", "1500.00")

	var buf bytes.Buffer
	filename, err := svc.Daily(testutil.SalespersonContext(salesProfile), &buf, day)
	require.NoError(t, err)
	assert.Equal(t, "sales_daily_2026-08-20.csv", filename)

	records := parseCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"order_id", "order_date", "client", "salesperson", "payment_status", "total_liters", "total_amount"}, records[0])
	assert.Equal(t, "2026-08-20", records[1][1])
	assert.Equal(t, "Duka", records[1][2])
	assert.Equal(t, "sales1", records[1][3])
	assert.Equal(t, "10.00", records[1][5])
	assert.Equal(t, "15000.00", records[1][6])
}

func TestReportService_RangeValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createReportService(db)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)

	var buf bytes.Buffer
	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	_, err := svc.Range(testutil.SalespersonContext(salesProfile), &buf, start, start.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestReportService_Monthly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createReportService(db)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)
	flavor := testutil.CreateTestFlavor(t, db, "Embe", "1500.00")

	seedOrder(t, db, client.ID, salesProfile.ID, flavor.ID, time.Date(2026, 8, 5, 9, 0, 0, 0, time.UTC), "10", "1500.00")
	seedOrder(t, db, client.ID, salesProfile.ID, flavor.ID, time.Date(2026, 8, 5, 16, 0, 0, 0, time.UTC), "4", "1500.00")
	seedOrder(t, db, client.ID, salesProfile.ID, flavor.ID, time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC), "2", "1500.00")

	var buf bytes.Buffer
	filename, err := svc.Monthly(testutil.SalespersonContext(salesProfile), &buf, 2026, 8)
	require.NoError(t, err)
	assert.Equal(t, "sales_monthly_2026-08.csv", filename)

	records := parseCSV(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"date", "order_count", "total_liters", "total_sales"}, records[0])
	assert.Equal(t, []string{"2026-08-05", "2", "14.00", "21000.00"}, records[1])
	assert.Equal(t, []string{"2026-08-12", "1", "2.00", "3000.00"}, records[2])

	_, err = svc.Monthly(testutil.SalespersonContext(salesProfile), &buf, 2026, 13)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestReportService_YearlyAdminOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createReportService(db)
	_, adminProfile := testutil.CreateTestUser(t, db, "admin", domain.RoleAdmin)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	_, otherProfile := testutil.CreateTestUser(t, db, "sales2", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)
	flavor := testutil.CreateTestFlavor(t, db, "Embe", "1500.00")

	seedOrder(t, db, client.ID, salesProfile.ID, flavor.ID, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), "10", "1500.00")
	seedOrder(t, db, client.ID, otherProfile.ID, flavor.ID, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC), "4", "1500.00")

	var buf bytes.Buffer
	_, err := svc.Yearly(testutil.SalespersonContext(salesProfile), &buf, 2026)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	filename, err := svc.Yearly(testutil.AdminContext(adminProfile), &buf, 2026)
	require.NoError(t, err)
	assert.Equal(t, "sales_yearly_2026.csv", filename)

	records := parseCSV(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"salesperson_id", "salesperson", "order_count", "total_liters", "total_sales"}, records[0])

	// Rows come out sorted by salesperson id, so the output is stable
	assert.True(t, sort.SliceIsSorted(records[1:], func(i, j int) bool {
		return records[1:][i][0] < records[1:][j][0]
	}))

	byID := map[string][]string{}
	for _, row := range records[1:] {
		byID[row[0]] = row
	}
	require.Contains(t, byID, salesProfile.ID.String())
	assert.Equal(t, "sales1", byID[salesProfile.ID.String()][1])
	assert.Equal(t, "15000.00", byID[salesProfile.ID.String()][4])
	require.Contains(t, byID, otherProfile.ID.String())
	assert.Equal(t, "6000.00", byID[otherProfile.ID.String()][4])
}

func TestReportService_ScopedToSalesperson(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createReportService(db)
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	_, otherProfile := testutil.CreateTestUser(t, db, "sales2", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)
	flavor := testutil.CreateTestFlavor(t, db, "Embe", "1500.00")

	day := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	seedOrder(t, db, client.ID, salesProfile.ID, flavor.ID, day, "10", "1500.00")
	seedOrder(t, db, client.ID, otherProfile.ID, flavor.ID, day, "5", "1500.00")

	var buf bytes.Buffer
	_, err := svc.Daily(testutil.SalespersonContext(salesProfile), &buf, day)
	require.NoError(t, err)

	records := parseCSV(t, &buf)
	require.Len(t, records, 2, "only the caller's own order should appear")
	assert.Equal(t, "sales1", records[1][3])
}
