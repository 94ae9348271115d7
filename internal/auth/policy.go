package auth

import (
	"github.com/tamu-beverages/sales-api/internal/domain"
)

// Reads on clients, orders and payments are open to any authenticated
// identity; only write predicates are object-level.

// CanWriteClient reports whether the user may modify a client record.
// A salesperson may edit a client assigned to them, or an unassigned
// pending request they raised.
func (u *UserContext) CanWriteClient(client *domain.Client) bool {
	if u.IsAdmin() {
		return true
	}
	if client.AssignedSalespersonID != nil {
		return *client.AssignedSalespersonID == u.ProfileID
	}
	return client.Status == domain.ClientStatusPending &&
		client.RequestedByID != nil && *client.RequestedByID == u.ProfileID
}

// CanTransitionClient reports whether the user may approve or reject a
// client request. Only admins change approval state.
func (u *UserContext) CanTransitionClient() bool {
	return u.IsAdmin()
}

// CanWriteOrder reports whether the user may modify or delete an order
func (u *UserContext) CanWriteOrder(order *domain.Order) bool {
	if u.IsAdmin() {
		return true
	}
	return order.SalespersonID == u.ProfileID
}

// CanWritePayment reports whether the user may modify or delete a payment
func (u *UserContext) CanWritePayment(payment *domain.Payment) bool {
	if u.IsAdmin() {
		return true
	}
	return payment.RecordedByID == u.ProfileID
}

// CanOrderForClient reports whether the user may record orders against a
// client. The client must be approved, and salespersons must be the
// assigned salesperson.
func (u *UserContext) CanOrderForClient(client *domain.Client) bool {
	if client.Status != domain.ClientStatusApproved {
		return false
	}
	if u.IsAdmin() {
		return true
	}
	return client.AssignedSalespersonID != nil && *client.AssignedSalespersonID == u.ProfileID
}
