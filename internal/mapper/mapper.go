package mapper

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tamu-beverages/sales-api/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"
const dateFormat = "2006-01-02"

// Outstanding balance tracking is not implemented yet; the API carries a
// fixed placeholder so the field shape is stable for clients.
const outstandingBalancePlaceholder = "0.00"

// ToProfileDTO converts Profile to ProfileDTO
func ToProfileDTO(profile *domain.Profile) domain.ProfileDTO {
	dto := domain.ProfileDTO{
		ID:     profile.ID,
		UserID: profile.UserID,
		Role:   profile.Role,
	}
	if profile.User != nil {
		dto.Username = profile.User.Username
		dto.DisplayName = profile.User.DisplayName
		dto.Email = profile.User.Email
	}
	return dto
}

// ToClientDTO converts Client to ClientDTO
func ToClientDTO(client *domain.Client) domain.ClientDTO {
	dto := domain.ClientDTO{
		ID:                 client.ID,
		Name:               client.Name,
		ContactPerson:      client.ContactPerson,
		PhoneNumber:        client.PhoneNumber,
		Email:              client.Email,
		Address:            client.Address,
		ClientType:         client.ClientType,
		IsNewClient:        client.IsNewClient,
		Status:             client.Status,
		OutstandingBalance: outstandingBalancePlaceholder,
		CreatedAt:          client.CreatedAt.Format(timeFormat),
		UpdatedAt:          client.UpdatedAt.Format(timeFormat),
	}
	if client.AssignedSalesperson != nil {
		profile := ToProfileDTO(client.AssignedSalesperson)
		dto.AssignedSalesperson = &profile
	}
	if client.RequestedBy != nil {
		profile := ToProfileDTO(client.RequestedBy)
		dto.RequestedBy = &profile
	}
	return dto
}

// ToFlavorDTO converts Flavor to FlavorDTO
func ToFlavorDTO(flavor *domain.Flavor) domain.FlavorDTO {
	return domain.FlavorDTO{
		ID:                flavor.ID,
		Name:              flavor.Name,
		BasePricePerLiter: flavor.BasePricePerLiter.StringFixed(2),
		IsActive:          flavor.IsActive,
		CreatedAt:         flavor.CreatedAt.Format(timeFormat),
		UpdatedAt:         flavor.UpdatedAt.Format(timeFormat),
	}
}

// ToOrderItemDTO converts OrderItem to OrderItemDTO
func ToOrderItemDTO(item *domain.OrderItem) domain.OrderItemDTO {
	dto := domain.OrderItemDTO{
		ID:                  item.ID,
		FlavorID:            item.FlavorID,
		QuantityLiters:      item.QuantityLiters.StringFixed(2),
		PricePerLiterAtSale: item.PricePerLiterAtSale.StringFixed(2),
		ItemTotal:           item.ItemTotal.StringFixed(2),
	}
	if item.Flavor != nil {
		dto.FlavorName = item.Flavor.Name
	}
	return dto
}

// ToOrderDTO converts Order to OrderDTO
func ToOrderDTO(order *domain.Order) domain.OrderDTO {
	dto := domain.OrderDTO{
		ID:            order.ID,
		ClientID:      order.ClientID,
		OrderDate:     order.OrderDate.Format(dateFormat),
		TotalAmount:   order.TotalAmount.StringFixed(2),
		PaymentStatus: order.PaymentStatus,
		Items:         make([]domain.OrderItemDTO, len(order.Items)),
		CreatedAt:     order.CreatedAt.Format(timeFormat),
		UpdatedAt:     order.UpdatedAt.Format(timeFormat),
	}
	if order.Client != nil {
		dto.ClientName = order.Client.Name
	}
	if order.Salesperson != nil {
		profile := ToProfileDTO(order.Salesperson)
		dto.Salesperson = &profile
	}
	for i := range order.Items {
		dto.Items[i] = ToOrderItemDTO(&order.Items[i])
	}
	return dto
}

// ToPaymentDTO converts Payment to PaymentDTO
func ToPaymentDTO(payment *domain.Payment) domain.PaymentDTO {
	dto := domain.PaymentDTO{
		ID:            payment.ID,
		ClientID:      payment.ClientID,
		OrderID:       payment.OrderID,
		AmountPaid:    payment.AmountPaid.StringFixed(2),
		PaymentDate:   payment.PaymentDate.Format(dateFormat),
		PaymentMethod: payment.PaymentMethod,
		CreatedAt:     payment.CreatedAt.Format(timeFormat),
		UpdatedAt:     payment.UpdatedAt.Format(timeFormat),
	}
	if payment.Client != nil {
		dto.ClientName = payment.Client.Name
	}
	if payment.RecordedBy != nil {
		profile := ToProfileDTO(payment.RecordedBy)
		dto.RecordedBy = &profile
	}
	return dto
}

// CalculateItemTotal computes a line total rounded to two decimal places
func CalculateItemTotal(quantity, pricePerLiter decimal.Decimal) decimal.Decimal {
	return quantity.Mul(pricePerLiter).Round(2)
}

// CalculateOrderTotal sums the item totals of an order
func CalculateOrderTotal(items []domain.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.ItemTotal)
	}
	return total.Round(2)
}

// FormatError wraps repository errors with context
func FormatError(entity, operation string, err error) error {
	return fmt.Errorf("failed to %s %s: %w", operation, entity, err)
}
