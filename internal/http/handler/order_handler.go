package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/repository"
	"github.com/tamu-beverages/sales-api/internal/service"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// List godoc
// @Summary List orders
// @Description Get orders visible to the caller. Admins see all; salespersons only their own. Date filters are inclusive.
// @Tags Orders
// @Produce json
// @Param client_id query string false "Filter by client ID"
// @Param salesperson_id query string false "Filter by salesperson profile ID (admin)"
// @Param payment_status query string false "Filter by payment status" Enums(paid, outstanding)
// @Param start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {array} domain.OrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := repository.OrderFilters{}

	if clientID := r.URL.Query().Get("client_id"); clientID != "" {
		if id, err := uuid.Parse(clientID); err == nil {
			filters.ClientID = &id
		}
	}
	if sp := r.URL.Query().Get("salesperson_id"); sp != "" {
		if id, err := uuid.Parse(sp); err == nil {
			filters.SalespersonID = &id
		}
	}
	if status := r.URL.Query().Get("payment_status"); status != "" {
		s := domain.PaymentStatus(status)
		if s.IsValid() {
			filters.PaymentStatus = &s
		}
	}

	var ok bool
	if filters.DateFrom, filters.DateTo, ok = parseDateRange(w, r); !ok {
		return
	}

	orders, err := h.orderService.List(r.Context(), filters)
	if err != nil {
		respondServiceError(w, h.logger, err, "list orders")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// Get godoc
// @Summary Get an order
// @Description Get an order with its client, salesperson and line items
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.OrderDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	order, err := h.orderService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Create godoc
// @Summary Create an order
// @Description Record an order with snapshot-priced line items and a server-computed total. Client-supplied prices and totals are ignored.
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body domain.CreateOrderRequest true "Order details"
// @Success 201 {object} domain.OrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders [post]
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create order")
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// Update godoc
// @Summary Update an order
// @Description Replace the full item set with freshly priced lines and recompute the total. Admin or recording owner.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body domain.UpdateOrderRequest true "Replacement items"
// @Success 200 {object} domain.OrderDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [put]
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req domain.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Delete godoc
// @Summary Delete an order
// @Description Remove an order and its items. Payment links are cleared, not deleted. Admin or recording owner.
// @Tags Orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.orderService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete order")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseDateRange parses inclusive start_date/end_date query filters.
// Malformed dates are a validation error, not ignored.
func parseDateRange(w http.ResponseWriter, r *http.Request) (*time.Time, *time.Time, bool) {
	var from, to *time.Time

	if start := r.URL.Query().Get("start_date"); start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "start_date must be YYYY-MM-DD",
			})
			return nil, nil, false
		}
		from = &t
	}
	if end := r.URL.Query().Get("end_date"); end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "end_date must be YYYY-MM-DD",
			})
			return nil, nil, false
		}
		// Inclusive upper bound
		inclusive := t.Add(24*time.Hour - time.Nanosecond)
		to = &inclusive
	}

	return from, to, true
}
