package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"gorm.io/gorm"
)

// ClientFilters narrows client list queries
type ClientFilters struct {
	Status        *domain.ClientStatus
	SalespersonID *uuid.UUID
	IsNewClient   *bool
	ClientType    *domain.ClientType
}

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.db.WithContext(ctx).
		Preload("AssignedSalesperson.User").
		Preload("RequestedBy.User").
		First(&client, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Client{}, "id = ?", id).Error
}

// List returns clients matching the filters. visibleTo scopes the result to
// what a salesperson may see: clients assigned to them, plus their own
// pending requests that have no assignee yet. nil means no scoping.
func (r *ClientRepository) List(ctx context.Context, filters ClientFilters, visibleTo *uuid.UUID) ([]domain.Client, error) {
	var clients []domain.Client

	query := r.db.WithContext(ctx).
		Model(&domain.Client{}).
		Preload("AssignedSalesperson.User").
		Preload("RequestedBy.User")

	if visibleTo != nil {
		query = query.Where(
			"assigned_salesperson_id = ? OR (requested_by_id = ? AND status = ? AND assigned_salesperson_id IS NULL)",
			*visibleTo, *visibleTo, domain.ClientStatusPending,
		)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.SalespersonID != nil {
		query = query.Where("assigned_salesperson_id = ?", *filters.SalespersonID)
	}
	if filters.IsNewClient != nil {
		query = query.Where("is_new_client = ?", *filters.IsNewClient)
	}
	if filters.ClientType != nil {
		query = query.Where("client_type = ?", *filters.ClientType)
	}

	err := query.Order("name ASC").Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) CountByStatus(ctx context.Context, status domain.ClientStatus) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("status = ?", status).
		Count(&count).Error
	return int(count), err
}

func (r *ClientRepository) GetOrdersCount(ctx context.Context, clientID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Where("client_id = ?", clientID).Count(&count).Error
	return int(count), err
}

func (r *ClientRepository) GetPaymentsCount(ctx context.Context, clientID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Payment{}).Where("client_id = ?", clientID).Count(&count).Error
	return int(count), err
}
