package domain

import (
	"github.com/google/uuid"
)

// DTOs for API responses. All money and quantity fields are decimal strings
// with two fractional digits (e.g. "125.50"), never binary floats.

type ProfileDTO struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName,omitempty"`
	Email       string    `json:"email,omitempty"`
	Role        Role      `json:"role"`
}

type ClientDTO struct {
	ID                  uuid.UUID    `json:"id"`
	Name                string       `json:"name"`
	ContactPerson       string       `json:"contactPerson,omitempty"`
	PhoneNumber         string       `json:"phoneNumber,omitempty"`
	Email               string       `json:"email,omitempty"`
	Address             string       `json:"address,omitempty"`
	ClientType          ClientType   `json:"clientType"`
	IsNewClient         bool         `json:"isNewClient"`
	Status              ClientStatus `json:"status"`
	AssignedSalesperson *ProfileDTO  `json:"assignedSalesperson,omitempty"`
	RequestedBy         *ProfileDTO  `json:"requestedBy,omitempty"`
	OutstandingBalance  string       `json:"outstandingBalance"`
	CreatedAt           string       `json:"createdAt"` // ISO 8601
	UpdatedAt           string       `json:"updatedAt"` // ISO 8601
}

type FlavorDTO struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	BasePricePerLiter string    `json:"basePricePerLiter"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         string    `json:"createdAt"`
	UpdatedAt         string    `json:"updatedAt"`
}

type OrderItemDTO struct {
	ID                  uuid.UUID `json:"id"`
	FlavorID            uuid.UUID `json:"flavorId"`
	FlavorName          string    `json:"flavorName,omitempty"`
	QuantityLiters      string    `json:"quantityLiters"`
	PricePerLiterAtSale string    `json:"pricePerLiterAtSale"`
	ItemTotal           string    `json:"itemTotal"`
}

type OrderDTO struct {
	ID            uuid.UUID      `json:"id"`
	ClientID      uuid.UUID      `json:"clientId"`
	ClientName    string         `json:"clientName,omitempty"`
	Salesperson   *ProfileDTO    `json:"salesperson,omitempty"`
	OrderDate     string         `json:"orderDate"`
	TotalAmount   string         `json:"totalAmount"`
	PaymentStatus PaymentStatus  `json:"paymentStatus"`
	Items         []OrderItemDTO `json:"items"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
}

type PaymentDTO struct {
	ID            uuid.UUID   `json:"id"`
	ClientID      uuid.UUID   `json:"clientId"`
	ClientName    string      `json:"clientName,omitempty"`
	OrderID       *uuid.UUID  `json:"orderId,omitempty"`
	AmountPaid    string      `json:"amountPaid"`
	PaymentDate   string      `json:"paymentDate"`
	PaymentMethod string      `json:"paymentMethod,omitempty"`
	RecordedBy    *ProfileDTO `json:"recordedBy,omitempty"`
	CreatedAt     string      `json:"createdAt"`
	UpdatedAt     string      `json:"updatedAt"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string     `json:"token"`
	UserID   uuid.UUID  `json:"userId"`
	Username string     `json:"username"`
	Role     Role       `json:"role"`
	Profile  ProfileDTO `json:"profile"`
}

type RegisterSalespersonRequest struct {
	Username    string `json:"username" validate:"required,max=150"`
	Password    string `json:"password" validate:"required,min=8"`
	Email       string `json:"email" validate:"omitempty,email"`
	DisplayName string `json:"displayName" validate:"omitempty,max=200"`
}

type CreateClientRequest struct {
	Name                  string     `json:"name" validate:"required,max=255"`
	ContactPerson         string     `json:"contactPerson" validate:"omitempty,max=255"`
	PhoneNumber           string     `json:"phoneNumber" validate:"omitempty,max=15"`
	Email                 string     `json:"email" validate:"omitempty,email"`
	Address               string     `json:"address"`
	ClientType            ClientType `json:"clientType" validate:"omitempty,oneof=retail wholesale"`
	AssignedSalespersonID *uuid.UUID `json:"assignedSalespersonId"` // admin only, ignored for salespersons
}

// UpdateClientRequest uses pointers so omitted fields are left untouched.
// Status and AssignedSalespersonID are silently dropped for salespersons.
type UpdateClientRequest struct {
	Name                  *string       `json:"name" validate:"omitempty,max=255"`
	ContactPerson         *string       `json:"contactPerson" validate:"omitempty,max=255"`
	PhoneNumber           *string       `json:"phoneNumber" validate:"omitempty,max=15"`
	Email                 *string       `json:"email" validate:"omitempty,email"`
	Address               *string       `json:"address"`
	ClientType            *ClientType   `json:"clientType" validate:"omitempty,oneof=retail wholesale"`
	Status                *ClientStatus `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	AssignedSalespersonID *uuid.UUID    `json:"assignedSalespersonId"`
}

type ApproveClientRequest struct {
	AssigneeID *uuid.UUID `json:"assigneeId"`
}

type CreateFlavorRequest struct {
	Name              string `json:"name" validate:"required,max=100"`
	BasePricePerLiter string `json:"basePricePerLiter" validate:"required"`
	IsActive          *bool  `json:"isActive"`
}

type UpdateFlavorRequest struct {
	Name              *string `json:"name" validate:"omitempty,max=100"`
	BasePricePerLiter *string `json:"basePricePerLiter"`
	IsActive          *bool   `json:"isActive"`
}

// OrderItemRequest carries only a flavor reference and a quantity; the
// price is read server-side from the flavor at sale time.
type OrderItemRequest struct {
	FlavorID       uuid.UUID `json:"flavorId" validate:"required"`
	QuantityLiters string    `json:"quantityLiters" validate:"required"`
}

type CreateOrderRequest struct {
	ClientID uuid.UUID          `json:"clientId" validate:"required"`
	Items    []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderRequest replaces the entire item set; incremental edits are
// not supported.
type UpdateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentStatus *PaymentStatus     `json:"paymentStatus" validate:"omitempty,oneof=paid outstanding"`
}

type CreatePaymentRequest struct {
	ClientID      uuid.UUID  `json:"clientId" validate:"required"`
	OrderID       *uuid.UUID `json:"orderId"`
	AmountPaid    string     `json:"amountPaid" validate:"required"`
	PaymentDate   string     `json:"paymentDate" validate:"required"` // YYYY-MM-DD or RFC 3339
	PaymentMethod string     `json:"paymentMethod" validate:"omitempty,max=50"`
}

type UpdatePaymentRequest struct {
	OrderID       *uuid.UUID `json:"orderId"`
	AmountPaid    *string    `json:"amountPaid"`
	PaymentDate   *string    `json:"paymentDate"`
	PaymentMethod *string    `json:"paymentMethod" validate:"omitempty,max=50"`
}
