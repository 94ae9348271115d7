package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tamu-beverages/sales-api/internal/auth"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/mapper"
	"github.com/tamu-beverages/sales-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ClientService struct {
	clientRepo  *repository.ClientRepository
	profileRepo *repository.ProfileRepository
	logger      *zap.Logger
}

func NewClientService(
	clientRepo *repository.ClientRepository,
	profileRepo *repository.ProfileRepository,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo:  clientRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// List returns clients visible to the caller. Admins see everything;
// salespersons see clients assigned to them plus their own unassigned
// pending requests.
func (s *ClientService) List(ctx context.Context, filters repository.ClientFilters) ([]domain.ClientDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	clients, err := s.clientRepo.List(ctx, filters, userCtx.SalespersonFilter())
	if err != nil {
		return nil, mapper.FormatError("clients", "list", err)
	}

	dtos := make([]domain.ClientDTO, len(clients))
	for i := range clients {
		dtos[i] = mapper.ToClientDTO(&clients[i])
	}
	return dtos, nil
}

// Get returns a single client. Reads are open to any authenticated user.
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*domain.ClientDTO, error) {
	if _, ok := auth.FromContext(ctx); !ok {
		return nil, ErrUnauthorized
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, mapper.FormatError("client", "get", err)
	}

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

// Create registers a client. A salesperson raises a pending request stamped
// with requested_by; an admin creates an approved client and may assign a
// salesperson directly.
func (s *ClientService) Create(ctx context.Context, req *domain.CreateClientRequest) (*domain.ClientDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	clientType := req.ClientType
	if clientType == "" {
		clientType = domain.ClientTypeRetail
	}

	client := &domain.Client{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		Address:       req.Address,
		ClientType:    clientType,
	}

	if userCtx.IsAdmin() {
		client.Status = domain.ClientStatusApproved
		client.IsNewClient = false
		if req.AssignedSalespersonID != nil {
			profile, err := s.resolveSalesperson(ctx, *req.AssignedSalespersonID)
			if err != nil {
				return nil, err
			}
			client.AssignedSalespersonID = &profile.ID
		}
	} else {
		// Salesperson-raised request: pending, unassigned, stamped with
		// the requester. Any assignment attempt is ignored.
		requester := userCtx.ProfileID
		client.Status = domain.ClientStatusPending
		client.IsNewClient = true
		client.RequestedByID = &requester
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, mapper.FormatError("client", "create", err)
	}

	s.logger.Info("client created",
		zap.String("client_id", client.ID.String()),
		zap.String("status", string(client.Status)),
		zap.String("created_by", userCtx.Username),
	)

	return s.Get(ctx, client.ID)
}

// Update edits client fields. Salesperson edits silently drop status and
// assignment changes rather than failing.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateClientRequest) (*domain.ClientDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, mapper.FormatError("client", "get", err)
	}

	if !userCtx.CanWriteClient(client) {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.ContactPerson != nil {
		client.ContactPerson = *req.ContactPerson
	}
	if req.PhoneNumber != nil {
		client.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.ClientType != nil {
		client.ClientType = *req.ClientType
	}

	if userCtx.IsAdmin() {
		if req.Status != nil {
			client.Status = *req.Status
		}
		if req.AssignedSalespersonID != nil {
			profile, err := s.resolveSalesperson(ctx, *req.AssignedSalespersonID)
			if err != nil {
				return nil, err
			}
			client.AssignedSalespersonID = &profile.ID
		}
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, mapper.FormatError("client", "update", err)
	}

	return s.Get(ctx, client.ID)
}

// Approve moves a pending client to approved. Admin only. An explicit
// assignee wins over any existing assignment; with neither, the client
// stays unassigned.
func (s *ClientService) Approve(ctx context.Context, id uuid.UUID, req *domain.ApproveClientRequest) (*domain.ClientDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !userCtx.CanTransitionClient() {
		return nil, ErrPermissionDenied
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, mapper.FormatError("client", "get", err)
	}

	if client.Status != domain.ClientStatusPending {
		return nil, fmt.Errorf("%w: client is %s", ErrInvalidState, client.Status)
	}

	if req != nil && req.AssigneeID != nil {
		profile, err := s.resolveSalesperson(ctx, *req.AssigneeID)
		if err != nil {
			return nil, err
		}
		client.AssignedSalespersonID = &profile.ID
	}

	client.Status = domain.ClientStatusApproved
	client.IsNewClient = false

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, mapper.FormatError("client", "approve", err)
	}

	s.logger.Info("client approved",
		zap.String("client_id", client.ID.String()),
		zap.String("approved_by", userCtx.Username),
	)

	return s.Get(ctx, client.ID)
}

// Reject moves a pending client to rejected and clears any assignment.
// Admin only.
func (s *ClientService) Reject(ctx context.Context, id uuid.UUID) (*domain.ClientDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !userCtx.CanTransitionClient() {
		return nil, ErrPermissionDenied
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, mapper.FormatError("client", "get", err)
	}

	if client.Status != domain.ClientStatusPending {
		return nil, fmt.Errorf("%w: client is %s", ErrInvalidState, client.Status)
	}

	client.Status = domain.ClientStatusRejected
	client.IsNewClient = false
	client.AssignedSalespersonID = nil
	client.AssignedSalesperson = nil

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, mapper.FormatError("client", "reject", err)
	}

	s.logger.Info("client rejected",
		zap.String("client_id", client.ID.String()),
		zap.String("rejected_by", userCtx.Username),
	)

	return s.Get(ctx, client.ID)
}

// Delete removes a client. Admin only; blocked while orders or payments
// still reference it.
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}
	if !userCtx.IsAdmin() {
		return ErrPermissionDenied
	}

	if _, err := s.clientRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return mapper.FormatError("client", "get", err)
	}

	orders, err := s.clientRepo.GetOrdersCount(ctx, id)
	if err != nil {
		return mapper.FormatError("client orders", "count", err)
	}
	payments, err := s.clientRepo.GetPaymentsCount(ctx, id)
	if err != nil {
		return mapper.FormatError("client payments", "count", err)
	}
	if orders > 0 || payments > 0 {
		return fmt.Errorf("%w: client has %d orders and %d payments", ErrConflict, orders, payments)
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return mapper.FormatError("client", "delete", err)
	}

	s.logger.Info("client deleted",
		zap.String("client_id", id.String()),
		zap.String("deleted_by", userCtx.Username),
	)
	return nil
}

// resolveSalesperson loads a profile and checks it carries the salesperson role
func (s *ClientService) resolveSalesperson(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: salesperson profile not found", ErrInvalidInput)
		}
		return nil, mapper.FormatError("profile", "get", err)
	}
	if profile.Role != domain.RoleSalesperson {
		return nil, fmt.Errorf("%w: assignee is not a salesperson", ErrInvalidInput)
	}
	return profile, nil
}
