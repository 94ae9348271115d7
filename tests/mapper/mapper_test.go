package mapper_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/mapper"
)

func TestCalculateItemTotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		price    string
		expected string
	}{
		{"whole liters", "10", "1500.00", "15000.00"},
		{"fractional quantity", "2.5", "1200.50", "3001.25"},
		{"rounds half up", "0.25", "1.50", "0.38"},
		{"small amounts", "0.01", "0.01", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quantity := decimal.RequireFromString(tt.quantity)
			price := decimal.RequireFromString(tt.price)
			total := mapper.CalculateItemTotal(quantity, price)
			assert.Equal(t, tt.expected, total.StringFixed(2))
		})
	}
}

func TestCalculateOrderTotal(t *testing.T) {
	items := []domain.OrderItem{
		{ItemTotal: decimal.RequireFromString("15000.00")},
		{ItemTotal: decimal.RequireFromString("3001.25")},
		{ItemTotal: decimal.RequireFromString("0.38")},
	}

	total := mapper.CalculateOrderTotal(items)
	assert.Equal(t, "18001.63", total.StringFixed(2))

	assert.Equal(t, "0.00", mapper.CalculateOrderTotal(nil).StringFixed(2))
}

func TestToOrderDTO(t *testing.T) {
	orderDate := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)
	flavor := &domain.Flavor{Name: "Embe"}
	order := &domain.Order{
		ClientID:      uuid.New(),
		SalespersonID: uuid.New(),
		OrderDate:     orderDate,
		TotalAmount:   decimal.RequireFromString("18001.25"),
		PaymentStatus: domain.PaymentStatusOutstanding,
		Client:        &domain.Client{Name: "Duka"},
		Items: []domain.OrderItem{{
			FlavorID:            uuid.New(),
			Flavor:              flavor,
			QuantityLiters:      decimal.RequireFromString("10"),
			PricePerLiterAtSale: decimal.RequireFromString("1500"),
			ItemTotal:           decimal.RequireFromString("15000"),
		}},
	}
	order.ID = uuid.New()

	dto := mapper.ToOrderDTO(order)
	assert.Equal(t, order.ID, dto.ID)
	assert.Equal(t, "Duka", dto.ClientName)
	assert.Equal(t, "2026-08-20", dto.OrderDate)
	assert.Equal(t, "18001.25", dto.TotalAmount)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, "Embe", dto.Items[0].FlavorName)
	// Money fields always carry two fractional digits on the wire
	assert.Equal(t, "10.00", dto.Items[0].QuantityLiters)
	assert.Equal(t, "1500.00", dto.Items[0].PricePerLiterAtSale)
	assert.Equal(t, "15000.00", dto.Items[0].ItemTotal)

	// Missing relations must not panic
	assert.Empty(t, dto.Salesperson)
	bare := mapper.ToOrderDTO(&domain.Order{})
	assert.Empty(t, bare.ClientName)
	assert.Empty(t, bare.Items)
}

func TestToClientDTO(t *testing.T) {
	client := &domain.Client{
		Name:       "Duka",
		ClientType: domain.ClientTypeRetail,
		Status:     domain.ClientStatusApproved,
		AssignedSalesperson: &domain.Profile{
			Role: domain.RoleSalesperson,
			User: &domain.User{Username: "sales1", DisplayName: "First Seller"},
		},
	}
	client.ID = uuid.New()

	dto := mapper.ToClientDTO(client)
	assert.Equal(t, "Duka", dto.Name)
	require.NotNil(t, dto.AssignedSalesperson)
	assert.Equal(t, "sales1", dto.AssignedSalesperson.Username)
	assert.Equal(t, "First Seller", dto.AssignedSalesperson.DisplayName)
	assert.Nil(t, dto.RequestedBy)
	// Balance tracking is not implemented; the field is a stable placeholder
	assert.Equal(t, "0.00", dto.OutstandingBalance)
}

func TestToPaymentDTO(t *testing.T) {
	orderID := uuid.New()
	payment := &domain.Payment{
		ClientID:    uuid.New(),
		OrderID:     &orderID,
		AmountPaid:  decimal.RequireFromString("500.5"),
		PaymentDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	}

	dto := mapper.ToPaymentDTO(payment)
	assert.Equal(t, "500.50", dto.AmountPaid)
	assert.Equal(t, "2026-08-20", dto.PaymentDate)
	require.NotNil(t, dto.OrderID)
	assert.Equal(t, orderID, *dto.OrderID)
	assert.Nil(t, dto.RecordedBy)
}
