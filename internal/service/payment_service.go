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

type PaymentService struct {
	paymentRepo *repository.PaymentRepository
	clientRepo  *repository.ClientRepository
	orderRepo   *repository.OrderRepository
	logger      *zap.Logger
}

func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	clientRepo *repository.ClientRepository,
	orderRepo *repository.OrderRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// List returns payments visible to the caller. Admins see all payments;
// salespersons only the ones they recorded.
func (s *PaymentService) List(ctx context.Context, filters repository.PaymentFilters) ([]domain.PaymentDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	if scope := userCtx.SalespersonFilter(); scope != nil {
		filters.RecordedByID = scope
	}

	payments, err := s.paymentRepo.List(ctx, filters)
	if err != nil {
		return nil, mapper.FormatError("payments", "list", err)
	}

	dtos := make([]domain.PaymentDTO, len(payments))
	for i := range payments {
		dtos[i] = mapper.ToPaymentDTO(&payments[i])
	}
	return dtos, nil
}

func (s *PaymentService) Get(ctx context.Context, id uuid.UUID) (*domain.PaymentDTO, error) {
	if _, ok := auth.FromContext(ctx); !ok {
		return nil, ErrUnauthorized
	}

	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, mapper.FormatError("payment", "get", err)
	}

	dto := mapper.ToPaymentDTO(payment)
	return &dto, nil
}

// Create records a payment stamped with the recording user. The amount is
// never checked against order totals or client balances; recording a payment
// does not transition the linked order's payment status.
func (s *PaymentService) Create(ctx context.Context, req *domain.CreatePaymentRequest) (*domain.PaymentDTO, error) {
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

	amount, err := parseMoney(req.AmountPaid, "amountPaid")
	if err != nil {
		return nil, err
	}

	paymentDate, err := parseDate(req.PaymentDate, "paymentDate")
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ClientID:      client.ID,
		AmountPaid:    amount,
		PaymentDate:   paymentDate,
		PaymentMethod: req.PaymentMethod,
		RecordedByID:  userCtx.ProfileID,
	}

	if req.OrderID != nil {
		order, err := s.orderRepo.GetByID(ctx, *req.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, mapper.FormatError("order", "get", err)
		}
		if order.ClientID != client.ID {
			return nil, fmt.Errorf("%w: order does not belong to the client", ErrInvalidInput)
		}
		payment.OrderID = &order.ID
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, mapper.FormatError("payment", "create", err)
	}

	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("client_id", client.ID.String()),
		zap.String("amount", payment.AmountPaid.StringFixed(2)),
		zap.String("recorded_by", userCtx.Username),
	)

	return s.Get(ctx, payment.ID)
}

// Update edits a payment. Admin or recording owner.
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdatePaymentRequest) (*domain.PaymentDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, mapper.FormatError("payment", "get", err)
	}

	if !userCtx.CanWritePayment(payment) {
		return nil, ErrPermissionDenied
	}

	if req.AmountPaid != nil {
		amount, err := parseMoney(*req.AmountPaid, "amountPaid")
		if err != nil {
			return nil, err
		}
		payment.AmountPaid = amount
	}
	if req.PaymentDate != nil {
		paymentDate, err := parseDate(*req.PaymentDate, "paymentDate")
		if err != nil {
			return nil, err
		}
		payment.PaymentDate = paymentDate
	}
	if req.PaymentMethod != nil {
		payment.PaymentMethod = *req.PaymentMethod
	}
	if req.OrderID != nil {
		order, err := s.orderRepo.GetByID(ctx, *req.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, mapper.FormatError("order", "get", err)
		}
		if order.ClientID != payment.ClientID {
			return nil, fmt.Errorf("%w: order does not belong to the client", ErrInvalidInput)
		}
		payment.OrderID = &order.ID
		payment.Order = nil
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, mapper.FormatError("payment", "update", err)
	}

	return s.Get(ctx, payment.ID)
}

// Delete removes a payment. Admin or recording owner.
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}

	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return mapper.FormatError("payment", "get", err)
	}

	if !userCtx.CanWritePayment(payment) {
		return ErrPermissionDenied
	}

	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return mapper.FormatError("payment", "delete", err)
	}

	s.logger.Info("payment deleted",
		zap.String("payment_id", id.String()),
		zap.String("deleted_by", userCtx.Username),
	)
	return nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339 timestamps
func parseDate(value, field string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD or RFC 3339", ErrInvalidInput, field)
}
