package auth_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tamu-beverages/sales-api/internal/auth"
	"github.com/tamu-beverages/sales-api/internal/domain"
)

func adminCtx() *auth.UserContext {
	return &auth.UserContext{ProfileID: uuid.New(), Role: domain.RoleAdmin}
}

func salesCtx() *auth.UserContext {
	return &auth.UserContext{ProfileID: uuid.New(), Role: domain.RoleSalesperson}
}

func TestCanWriteClient(t *testing.T) {
	me := salesCtx()
	other := uuid.New()

	assigned := &domain.Client{AssignedSalespersonID: &me.ProfileID}
	assert.True(t, me.CanWriteClient(assigned))

	assignedElsewhere := &domain.Client{AssignedSalespersonID: &other}
	assert.False(t, me.CanWriteClient(assignedElsewhere))
	assert.True(t, adminCtx().CanWriteClient(assignedElsewhere))

	// Own unassigned pending request is editable
	ownRequest := &domain.Client{
		Status:        domain.ClientStatusPending,
		RequestedByID: &me.ProfileID,
	}
	assert.True(t, me.CanWriteClient(ownRequest))

	// But not once it has been decided
	ownRequest.Status = domain.ClientStatusRejected
	assert.False(t, me.CanWriteClient(ownRequest))

	// And never someone else's request
	otherRequest := &domain.Client{
		Status:        domain.ClientStatusPending,
		RequestedByID: &other,
	}
	assert.False(t, me.CanWriteClient(otherRequest))
}

func TestCanTransitionClient(t *testing.T) {
	assert.True(t, adminCtx().CanTransitionClient())
	assert.False(t, salesCtx().CanTransitionClient())
}

func TestCanWriteOrder(t *testing.T) {
	me := salesCtx()

	assert.True(t, me.CanWriteOrder(&domain.Order{SalespersonID: me.ProfileID}))
	assert.False(t, me.CanWriteOrder(&domain.Order{SalespersonID: uuid.New()}))
	assert.True(t, adminCtx().CanWriteOrder(&domain.Order{SalespersonID: uuid.New()}))
}

func TestCanWritePayment(t *testing.T) {
	me := salesCtx()

	assert.True(t, me.CanWritePayment(&domain.Payment{RecordedByID: me.ProfileID}))
	assert.False(t, me.CanWritePayment(&domain.Payment{RecordedByID: uuid.New()}))
	assert.True(t, adminCtx().CanWritePayment(&domain.Payment{RecordedByID: uuid.New()}))
}

func TestCanOrderForClient(t *testing.T) {
	me := salesCtx()

	approved := &domain.Client{
		Status:                domain.ClientStatusApproved,
		AssignedSalespersonID: &me.ProfileID,
	}
	assert.True(t, me.CanOrderForClient(approved))

	// Unapproved clients take no orders, even from admins
	pending := &domain.Client{
		Status:                domain.ClientStatusPending,
		AssignedSalespersonID: &me.ProfileID,
	}
	assert.False(t, me.CanOrderForClient(pending))
	assert.False(t, adminCtx().CanOrderForClient(pending))

	other := uuid.New()
	assignedElsewhere := &domain.Client{
		Status:                domain.ClientStatusApproved,
		AssignedSalespersonID: &other,
	}
	assert.False(t, me.CanOrderForClient(assignedElsewhere))
	assert.True(t, adminCtx().CanOrderForClient(assignedElsewhere))

	unassigned := &domain.Client{Status: domain.ClientStatusApproved}
	assert.False(t, me.CanOrderForClient(unassigned))
}
