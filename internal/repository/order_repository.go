package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"gorm.io/gorm"
)

// OrderFilters narrows order list queries
type OrderFilters struct {
	ClientID      *uuid.UUID
	SalespersonID *uuid.UUID
	PaymentStatus *domain.PaymentStatus
	DateFrom      *time.Time
	DateTo        *time.Time
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithItems persists an order and its line items in one transaction
func (r *OrderRepository) CreateWithItems(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Salesperson.User").
		Preload("Items.Flavor").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// ReplaceItems swaps the full item set of an order and updates the header
// fields in one transaction
func (r *OrderRepository) ReplaceItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return tx.Omit("Items").Save(order).Error
	})
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Order{}, "id = ?", id).Error
	})
}

func (r *OrderRepository) List(ctx context.Context, filters OrderFilters) ([]domain.Order, error) {
	var orders []domain.Order

	query := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Preload("Client").
		Preload("Salesperson.User").
		Preload("Items.Flavor")

	if filters.ClientID != nil {
		query = query.Where("client_id = ?", *filters.ClientID)
	}
	if filters.SalespersonID != nil {
		query = query.Where("salesperson_id = ?", *filters.SalespersonID)
	}
	if filters.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filters.PaymentStatus)
	}
	if filters.DateFrom != nil {
		query = query.Where("order_date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("order_date <= ?", *filters.DateTo)
	}

	err := query.Order("order_date DESC, created_at DESC").Find(&orders).Error
	return orders, err
}
