package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tamu-beverages/sales-api/internal/auth"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/mapper"
	"github.com/tamu-beverages/sales-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FlavorService struct {
	flavorRepo *repository.FlavorRepository
	logger     *zap.Logger
}

func NewFlavorService(flavorRepo *repository.FlavorRepository, logger *zap.Logger) *FlavorService {
	return &FlavorService{
		flavorRepo: flavorRepo,
		logger:     logger,
	}
}

// List returns flavors. Salespersons need current prices to record orders,
// so reads are open to any authenticated user.
func (s *FlavorService) List(ctx context.Context, activeOnly bool) ([]domain.FlavorDTO, error) {
	if _, ok := auth.FromContext(ctx); !ok {
		return nil, ErrUnauthorized
	}

	flavors, err := s.flavorRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, mapper.FormatError("flavors", "list", err)
	}

	dtos := make([]domain.FlavorDTO, len(flavors))
	for i := range flavors {
		dtos[i] = mapper.ToFlavorDTO(&flavors[i])
	}
	return dtos, nil
}

func (s *FlavorService) Get(ctx context.Context, id uuid.UUID) (*domain.FlavorDTO, error) {
	if _, ok := auth.FromContext(ctx); !ok {
		return nil, ErrUnauthorized
	}

	flavor, err := s.flavorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, mapper.FormatError("flavor", "get", err)
	}

	dto := mapper.ToFlavorDTO(flavor)
	return &dto, nil
}

// Create adds a catalog flavor. Admin only.
func (s *FlavorService) Create(ctx context.Context, req *domain.CreateFlavorRequest) (*domain.FlavorDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !userCtx.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	price, err := parseMoney(req.BasePricePerLiter, "basePricePerLiter")
	if err != nil {
		return nil, err
	}

	if _, err := s.flavorRepo.GetByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("%w: flavor %q already exists", ErrConflict, req.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, mapper.FormatError("flavor", "get", err)
	}

	flavor := &domain.Flavor{
		Name:              req.Name,
		BasePricePerLiter: price,
		IsActive:          true,
	}
	if req.IsActive != nil {
		flavor.IsActive = *req.IsActive
	}

	if err := s.flavorRepo.Create(ctx, flavor); err != nil {
		return nil, mapper.FormatError("flavor", "create", err)
	}

	s.logger.Info("flavor created",
		zap.String("flavor_id", flavor.ID.String()),
		zap.String("name", flavor.Name),
		zap.String("price", flavor.BasePricePerLiter.StringFixed(2)),
	)

	dto := mapper.ToFlavorDTO(flavor)
	return &dto, nil
}

// Update edits a flavor. Price changes never touch existing order lines.
// Admin only.
func (s *FlavorService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateFlavorRequest) (*domain.FlavorDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !userCtx.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	flavor, err := s.flavorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, mapper.FormatError("flavor", "get", err)
	}

	if req.Name != nil {
		flavor.Name = *req.Name
	}
	if req.BasePricePerLiter != nil {
		price, err := parseMoney(*req.BasePricePerLiter, "basePricePerLiter")
		if err != nil {
			return nil, err
		}
		flavor.BasePricePerLiter = price
	}
	if req.IsActive != nil {
		flavor.IsActive = *req.IsActive
	}

	if err := s.flavorRepo.Update(ctx, flavor); err != nil {
		return nil, mapper.FormatError("flavor", "update", err)
	}

	dto := mapper.ToFlavorDTO(flavor)
	return &dto, nil
}

// Delete removes a flavor. Blocked while order items reference it. Admin only.
func (s *FlavorService) Delete(ctx context.Context, id uuid.UUID) error {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}
	if !userCtx.IsAdmin() {
		return ErrPermissionDenied
	}

	if _, err := s.flavorRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return mapper.FormatError("flavor", "get", err)
	}

	refs, err := s.flavorRepo.GetOrderItemsCount(ctx, id)
	if err != nil {
		return mapper.FormatError("flavor references", "count", err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: flavor is referenced by %d order items", ErrConflict, refs)
	}

	if err := s.flavorRepo.Delete(ctx, id); err != nil {
		return mapper.FormatError("flavor", "delete", err)
	}
	return nil
}

// parseMoney parses a decimal-string money/quantity field. Values must be
// positive and carry at most two fractional digits.
func parseMoney(value, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a decimal string", ErrInvalidInput, field)
	}
	if d.IsNegative() || d.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s must be positive", ErrInvalidInput, field)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("%w: %s allows at most two decimal places", ErrInvalidInput, field)
	}
	return d, nil
}
