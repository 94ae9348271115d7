package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns an ID when the caller did not provide one
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Role is the closed set of profile roles. Every authorization decision
// resolves to exactly one of these.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleSalesperson Role = "salesperson"
)

// IsValid checks if the Role is a valid enum value
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSalesperson:
		return true
	}
	return false
}

// User represents a login account
type User struct {
	BaseModel
	Username     string   `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email        string   `gorm:"type:varchar(255)"`
	PasswordHash string   `gorm:"type:varchar(255);not null;column:password_hash"`
	DisplayName  string   `gorm:"type:varchar(200);column:display_name"`
	IsActive     bool     `gorm:"not null;column:is_active"`
	Profile      *Profile `gorm:"foreignKey:UserID"`
}

// Profile carries the role for a user. One profile per user; the role is
// immutable after creation (no role-change operation is exposed).
type Profile struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id"`
	User   *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Role   Role      `gorm:"type:varchar(20);not null;index"`
}

// ClientType classifies a client account
type ClientType string

const (
	ClientTypeRetail    ClientType = "retail"
	ClientTypeWholesale ClientType = "wholesale"
)

// IsValid checks if the ClientType is a valid enum value
func (ct ClientType) IsValid() bool {
	switch ct {
	case ClientTypeRetail, ClientTypeWholesale:
		return true
	}
	return false
}

// ClientStatus is the approval lifecycle state of a client.
// pending is the only state approve/reject accept.
type ClientStatus string

const (
	ClientStatusPending  ClientStatus = "pending"
	ClientStatusApproved ClientStatus = "approved"
	ClientStatusRejected ClientStatus = "rejected"
)

// IsValid checks if the ClientStatus is a valid enum value
func (cs ClientStatus) IsValid() bool {
	switch cs {
	case ClientStatusPending, ClientStatusApproved, ClientStatusRejected:
		return true
	}
	return false
}

// Client represents a customer of the distribution business.
// AssignedSalesperson is cleared, not cascaded, if the profile is removed.
type Client struct {
	BaseModel
	Name                  string       `gorm:"type:varchar(255);not null;index"`
	ContactPerson         string       `gorm:"type:varchar(255);column:contact_person"`
	PhoneNumber           string       `gorm:"type:varchar(15);column:phone_number"`
	Email                 string       `gorm:"type:varchar(255)"`
	Address               string       `gorm:"type:text"`
	ClientType            ClientType   `gorm:"type:varchar(20);not null;default:'retail';column:client_type"`
	IsNewClient           bool         `gorm:"not null;column:is_new_client"`
	Status                ClientStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	AssignedSalespersonID *uuid.UUID   `gorm:"type:uuid;column:assigned_salesperson_id;index"`
	AssignedSalesperson   *Profile     `gorm:"foreignKey:AssignedSalespersonID;constraint:OnDelete:SET NULL"`
	RequestedByID         *uuid.UUID   `gorm:"type:uuid;column:requested_by_id"`
	RequestedBy           *Profile     `gorm:"foreignKey:RequestedByID;constraint:OnDelete:SET NULL"`
}

// Flavor represents a catalog product. BasePricePerLiter is the spot price
// captured into order lines at sale time; changing it never touches
// existing orders.
type Flavor struct {
	BaseModel
	Name              string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	BasePricePerLiter decimal.Decimal `gorm:"type:numeric(10,2);not null;column:base_price_per_liter"`
	IsActive          bool            `gorm:"not null;column:is_active"`
}

// PaymentStatus is the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPaid        PaymentStatus = "paid"
	PaymentStatusOutstanding PaymentStatus = "outstanding"
)

// IsValid checks if the PaymentStatus is a valid enum value
func (ps PaymentStatus) IsValid() bool {
	switch ps {
	case PaymentStatusPaid, PaymentStatusOutstanding:
		return true
	}
	return false
}

// Order represents a sale recorded against a client. TotalAmount is always
// derived from the line items, never taken from the caller.
type Order struct {
	BaseModel
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index;column:client_id"`
	Client        *Client         `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	SalespersonID uuid.UUID       `gorm:"type:uuid;not null;index;column:salesperson_id"`
	Salesperson   *Profile        `gorm:"foreignKey:SalespersonID;constraint:OnDelete:RESTRICT"`
	OrderDate     time.Time       `gorm:"not null;index;column:order_date"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(10,2);not null;column:total_amount"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'outstanding';column:payment_status;index"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a line in an order. PricePerLiterAtSale is snapshotted from
// the flavor at creation time and ItemTotal = QuantityLiters * PricePerLiterAtSale.
type OrderItem struct {
	BaseModel
	OrderID             uuid.UUID       `gorm:"type:uuid;not null;index;column:order_id"`
	Order               *Order          `gorm:"foreignKey:OrderID"`
	FlavorID            uuid.UUID       `gorm:"type:uuid;not null;index;column:flavor_id"`
	Flavor              *Flavor         `gorm:"foreignKey:FlavorID;constraint:OnDelete:RESTRICT"`
	QuantityLiters      decimal.Decimal `gorm:"type:numeric(10,2);not null;column:quantity_liters"`
	PricePerLiterAtSale decimal.Decimal `gorm:"type:numeric(10,2);not null;column:price_per_liter_at_sale"`
	ItemTotal           decimal.Decimal `gorm:"type:numeric(10,2);not null;column:item_total"`
}

// Payment records money received from a client, optionally linked to an
// order. The link is cleared, not the payment, if the order is deleted.
// Nothing ties AmountPaid to order totals or client balances.
type Payment struct {
	BaseModel
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index;column:client_id"`
	Client        *Client         `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	OrderID       *uuid.UUID      `gorm:"type:uuid;column:order_id;index"`
	Order         *Order          `gorm:"foreignKey:OrderID;constraint:OnDelete:SET NULL"`
	AmountPaid    decimal.Decimal `gorm:"type:numeric(10,2);not null;column:amount_paid"`
	PaymentDate   time.Time       `gorm:"not null;index;column:payment_date"`
	PaymentMethod string          `gorm:"type:varchar(50);column:payment_method"`
	RecordedByID  uuid.UUID       `gorm:"type:uuid;not null;index;column:recorded_by_id"`
	RecordedBy    *Profile        `gorm:"foreignKey:RecordedByID;constraint:OnDelete:RESTRICT"`
}
