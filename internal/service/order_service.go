package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tamu-beverages/sales-api/internal/auth"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/mapper"
	"github.com/tamu-beverages/sales-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService struct {
	orderRepo  *repository.OrderRepository
	clientRepo *repository.ClientRepository
	flavorRepo *repository.FlavorRepository
	logger     *zap.Logger
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	clientRepo *repository.ClientRepository,
	flavorRepo *repository.FlavorRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		flavorRepo: flavorRepo,
		logger:     logger,
	}
}

// List returns orders visible to the caller. Admins see all orders;
// salespersons only their own.
func (s *OrderService) List(ctx context.Context, filters repository.OrderFilters) ([]domain.OrderDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	// A salesperson's own scope overrides any salesperson_id filter.
	if scope := userCtx.SalespersonFilter(); scope != nil {
		filters.SalespersonID = scope
	}

	orders, err := s.orderRepo.List(ctx, filters)
	if err != nil {
		return nil, mapper.FormatError("orders", "list", err)
	}

	dtos := make([]domain.OrderDTO, len(orders))
	for i := range orders {
		dtos[i] = mapper.ToOrderDTO(&orders[i])
	}
	return dtos, nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*domain.OrderDTO, error) {
	if _, ok := auth.FromContext(ctx); !ok {
		return nil, ErrUnauthorized
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, mapper.FormatError("order", "get", err)
	}

	dto := mapper.ToOrderDTO(order)
	return &dto, nil
}

// Create records an order with snapshot-priced line items. All validation
// happens before the transaction opens; the order and its items persist
// atomically with a server-computed total.
func (s *OrderService) Create(ctx context.Context, req *domain.CreateOrderRequest) (*domain.OrderDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	client, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, mapper.FormatError("client", "get", err)
	}

	if !userCtx.CanOrderForClient(client) {
		if client.Status != domain.ClientStatusApproved {
			return nil, fmt.Errorf("%w: client is not approved", ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: client is not assigned to you", ErrInvalidInput)
	}

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ClientID:      client.ID,
		SalespersonID: userCtx.ProfileID,
		OrderDate:     time.Now().UTC(),
		TotalAmount:   mapper.CalculateOrderTotal(items),
		PaymentStatus: domain.PaymentStatusOutstanding,
		Items:         items,
	}

	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		return nil, mapper.FormatError("order", "create", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("client_id", client.ID.String()),
		zap.String("salesperson", userCtx.Username),
		zap.String("total", order.TotalAmount.StringFixed(2)),
		zap.Int("items", len(order.Items)),
	)

	return s.Get(ctx, order.ID)
}

// Update replaces the full item set of an order with freshly priced lines
// and recomputes the total, all in one transaction. Incremental item edits
// are not supported.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateOrderRequest) (*domain.OrderDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, mapper.FormatError("order", "get", err)
	}

	if !userCtx.CanWriteOrder(order) {
		return nil, ErrPermissionDenied
	}

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	order.TotalAmount = mapper.CalculateOrderTotal(items)
	if req.PaymentStatus != nil {
		order.PaymentStatus = *req.PaymentStatus
	}

	if err := s.orderRepo.ReplaceItems(ctx, order, items); err != nil {
		return nil, mapper.FormatError("order", "update", err)
	}

	s.logger.Info("order updated",
		zap.String("order_id", order.ID.String()),
		zap.String("updated_by", userCtx.Username),
		zap.String("total", order.TotalAmount.StringFixed(2)),
		zap.Int("items", len(items)),
	)

	return s.Get(ctx, order.ID)
}

// Delete removes an order and its items. Admin or recording owner.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return mapper.FormatError("order", "get", err)
	}

	if !userCtx.CanWriteOrder(order) {
		return ErrPermissionDenied
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return mapper.FormatError("order", "delete", err)
	}

	s.logger.Info("order deleted",
		zap.String("order_id", id.String()),
		zap.String("deleted_by", userCtx.Username),
	)
	return nil
}

// buildItems turns item requests into order lines, snapshotting the current
// flavor price into each line
func (s *OrderService) buildItems(ctx context.Context, reqs []domain.OrderItemRequest) ([]domain.OrderItem, error) {
	ids := make([]uuid.UUID, len(reqs))
	for i, r := range reqs {
		ids[i] = r.FlavorID
	}

	flavors, err := s.flavorRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, mapper.FormatError("flavors", "load", err)
	}

	items := make([]domain.OrderItem, len(reqs))
	for i, r := range reqs {
		flavor, ok := flavors[r.FlavorID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrFlavorNotFound, r.FlavorID)
		}
		if !flavor.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrFlavorInactive, flavor.Name)
		}

		quantity, err := parseMoney(r.QuantityLiters, "quantityLiters")
		if err != nil {
			return nil, err
		}

		items[i] = domain.OrderItem{
			FlavorID:            flavor.ID,
			QuantityLiters:      quantity,
			PricePerLiterAtSale: flavor.BasePricePerLiter,
			ItemTotal:           mapper.CalculateItemTotal(quantity, flavor.BasePricePerLiter),
		}
	}

	return items, nil
}
