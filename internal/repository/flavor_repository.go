package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"gorm.io/gorm"
)

type FlavorRepository struct {
	db *gorm.DB
}

func NewFlavorRepository(db *gorm.DB) *FlavorRepository {
	return &FlavorRepository{db: db}
}

func (r *FlavorRepository) Create(ctx context.Context, flavor *domain.Flavor) error {
	return r.db.WithContext(ctx).Create(flavor).Error
}

func (r *FlavorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flavor, error) {
	var flavor domain.Flavor
	err := r.db.WithContext(ctx).First(&flavor, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &flavor, nil
}

func (r *FlavorRepository) GetByName(ctx context.Context, name string) (*domain.Flavor, error) {
	var flavor domain.Flavor
	err := r.db.WithContext(ctx).First(&flavor, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &flavor, nil
}

func (r *FlavorRepository) Update(ctx context.Context, flavor *domain.Flavor) error {
	return r.db.WithContext(ctx).Save(flavor).Error
}

func (r *FlavorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Flavor{}, "id = ?", id).Error
}

func (r *FlavorRepository) List(ctx context.Context, activeOnly bool) ([]domain.Flavor, error) {
	var flavors []domain.Flavor
	query := r.db.WithContext(ctx).Model(&domain.Flavor{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("name ASC").Find(&flavors).Error
	return flavors, err
}

// GetByIDs loads the given flavors in one query, keyed by ID
func (r *FlavorRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Flavor, error) {
	var flavors []domain.Flavor
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&flavors).Error
	if err != nil {
		return nil, err
	}
	result := make(map[uuid.UUID]domain.Flavor, len(flavors))
	for _, f := range flavors {
		result[f.ID] = f
	}
	return result, nil
}

func (r *FlavorRepository) GetOrderItemsCount(ctx context.Context, flavorID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.OrderItem{}).Where("flavor_id = ?", flavorID).Count(&count).Error
	return int(count), err
}
