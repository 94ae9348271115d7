package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/repository"
	"github.com/tamu-beverages/sales-api/internal/service"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// List godoc
// @Summary List payments
// @Description Get payments visible to the caller. Admins see all; salespersons only the ones they recorded.
// @Tags Payments
// @Produce json
// @Param client_id query string false "Filter by client ID"
// @Param order_id query string false "Filter by order ID"
// @Param salesperson_id query string false "Filter by recording salesperson profile ID (admin)"
// @Param start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {array} domain.PaymentDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /payments [get]
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := repository.PaymentFilters{}

	if clientID := r.URL.Query().Get("client_id"); clientID != "" {
		if id, err := uuid.Parse(clientID); err == nil {
			filters.ClientID = &id
		}
	}
	if orderID := r.URL.Query().Get("order_id"); orderID != "" {
		if id, err := uuid.Parse(orderID); err == nil {
			filters.OrderID = &id
		}
	}
	if sp := r.URL.Query().Get("salesperson_id"); sp != "" {
		if id, err := uuid.Parse(sp); err == nil {
			filters.RecordedByID = &id
		}
	}

	var ok bool
	if filters.DateFrom, filters.DateTo, ok = parseDateRange(w, r); !ok {
		return
	}

	payments, err := h.paymentService.List(r.Context(), filters)
	if err != nil {
		respondServiceError(w, h.logger, err, "list payments")
		return
	}

	respondJSON(w, http.StatusOK, payments)
}

// Get godoc
// @Summary Get a payment
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} domain.PaymentDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	payment, err := h.paymentService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get payment")
		return
	}

	respondJSON(w, http.StatusOK, payment)
}

// Create godoc
// @Summary Record a payment
// @Description Record a payment stamped with the recording user, optionally linked to an order
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body domain.CreatePaymentRequest true "Payment details"
// @Success 201 {object} domain.PaymentDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /payments [post]
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePaymentRequest
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

	payment, err := h.paymentService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "record payment")
		return
	}

	respondJSON(w, http.StatusCreated, payment)
}

// Update godoc
// @Summary Update a payment
// @Description Edit a payment. Admin or recording owner.
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body domain.UpdatePaymentRequest true "Fields to update"
// @Success 200 {object} domain.PaymentDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /payments/{id} [put]
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req domain.UpdatePaymentRequest
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

	payment, err := h.paymentService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update payment")
		return
	}

	respondJSON(w, http.StatusOK, payment)
}

// Delete godoc
// @Summary Delete a payment
// @Description Remove a payment. Admin or recording owner.
// @Tags Payments
// @Param id path string true "Payment ID"
// @Success 204
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /payments/{id} [delete]
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.paymentService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete payment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
