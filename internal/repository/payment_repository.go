package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"gorm.io/gorm"
)

// PaymentFilters narrows payment list queries
type PaymentFilters struct {
	ClientID     *uuid.UUID
	OrderID      *uuid.UUID
	RecordedByID *uuid.UUID
	DateFrom     *time.Time
	DateTo       *time.Time
}

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Order").
		Preload("RecordedBy.User").
		First(&payment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Payment{}, "id = ?", id).Error
}

func (r *PaymentRepository) List(ctx context.Context, filters PaymentFilters) ([]domain.Payment, error) {
	var payments []domain.Payment

	query := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Preload("Client").
		Preload("Order").
		Preload("RecordedBy.User")

	if filters.ClientID != nil {
		query = query.Where("client_id = ?", *filters.ClientID)
	}
	if filters.OrderID != nil {
		query = query.Where("order_id = ?", *filters.OrderID)
	}
	if filters.RecordedByID != nil {
		query = query.Where("recorded_by_id = ?", *filters.RecordedByID)
	}
	if filters.DateFrom != nil {
		query = query.Where("payment_date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("payment_date <= ?", *filters.DateTo)
	}

	err := query.Order("payment_date DESC, created_at DESC").Find(&payments).Error
	return payments, err
}
