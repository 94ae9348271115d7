package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/repository"
	"github.com/tamu-beverages/sales-api/internal/service"
	"go.uber.org/zap"
)

type ClientHandler struct {
	clientService *service.ClientService
	logger        *zap.Logger
}

func NewClientHandler(clientService *service.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger,
	}
}

// List godoc
// @Summary List clients
// @Description Get clients visible to the caller. Admins see all; salespersons see their assigned clients and their own pending requests. Unrecognized filters are ignored.
// @Tags Clients
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param salesperson_id query string false "Filter by assigned salesperson profile ID"
// @Param is_new_client query bool false "Filter by new-client flag"
// @Param client_type query string false "Filter by client type" Enums(retail, wholesale)
// @Success 200 {array} domain.ClientDTO
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := repository.ClientFilters{}

	if status := r.URL.Query().Get("status"); status != "" {
		s := domain.ClientStatus(status)
		if s.IsValid() {
			filters.Status = &s
		}
	}
	if sp := r.URL.Query().Get("salesperson_id"); sp != "" {
		if id, err := uuid.Parse(sp); err == nil {
			filters.SalespersonID = &id
		}
	}
	if newClient := r.URL.Query().Get("is_new_client"); newClient != "" {
		if b, err := strconv.ParseBool(newClient); err == nil {
			filters.IsNewClient = &b
		}
	}
	if ct := r.URL.Query().Get("client_type"); ct != "" {
		t := domain.ClientType(ct)
		if t.IsValid() {
			filters.ClientType = &t
		}
	}

	clients, err := h.clientService.List(r.Context(), filters)
	if err != nil {
		respondServiceError(w, h.logger, err, "list clients")
		return
	}

	respondJSON(w, http.StatusOK, clients)
}

// Get godoc
// @Summary Get a client
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} domain.ClientDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	client, err := h.clientService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get client")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// Create godoc
// @Summary Create a client
// @Description Salespersons raise a pending request; admins create an approved client and may assign a salesperson.
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body domain.CreateClientRequest true "Client details"
// @Success 201 {object} domain.ClientDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientRequest
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

	client, err := h.clientService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create client")
		return
	}

	respondJSON(w, http.StatusCreated, client)
}

// Update godoc
// @Summary Update a client
// @Description Edit client fields. Salesperson edits silently drop status and assignment changes.
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body domain.UpdateClientRequest true "Fields to update"
// @Success 200 {object} domain.ClientDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req domain.UpdateClientRequest
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

	client, err := h.clientService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update client")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// Approve godoc
// @Summary Approve a pending client
// @Description Move a pending client to approved, optionally assigning a salesperson. Admin only.
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body domain.ApproveClientRequest false "Optional assignee"
// @Success 200 {object} domain.ClientDTO
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/approve [post]
func (h *ClientHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	// Body is optional; an empty body means approve without reassignment
	var req domain.ApproveClientRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid request body",
			})
			return
		}
	}

	client, err := h.clientService.Approve(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "approve client")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// Reject godoc
// @Summary Reject a pending client
// @Description Move a pending client to rejected and clear any assignment. Admin only.
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} domain.ClientDTO
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/reject [post]
func (h *ClientHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	client, err := h.clientService.Reject(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "reject client")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// Delete godoc
// @Summary Delete a client
// @Description Remove a client with no orders or payments. Admin only.
// @Tags Clients
// @Param id path string true "Client ID"
// @Success 204
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.clientService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete client")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseIDParam parses the {id} URL parameter, writing a 400 on failure
func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}
