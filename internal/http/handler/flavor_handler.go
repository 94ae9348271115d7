package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/service"
	"go.uber.org/zap"
)

type FlavorHandler struct {
	flavorService *service.FlavorService
	logger        *zap.Logger
}

func NewFlavorHandler(flavorService *service.FlavorService, logger *zap.Logger) *FlavorHandler {
	return &FlavorHandler{
		flavorService: flavorService,
		logger:        logger,
	}
}

// List godoc
// @Summary List flavors
// @Description Get catalog flavors with current prices
// @Tags Flavors
// @Produce json
// @Param active query bool false "Only active flavors"
// @Success 200 {array} domain.FlavorDTO
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /flavors [get]
func (h *FlavorHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if active := r.URL.Query().Get("active"); active != "" {
		if b, err := strconv.ParseBool(active); err == nil {
			activeOnly = b
		}
	}

	flavors, err := h.flavorService.List(r.Context(), activeOnly)
	if err != nil {
		respondServiceError(w, h.logger, err, "list flavors")
		return
	}

	respondJSON(w, http.StatusOK, flavors)
}

// Get godoc
// @Summary Get a flavor
// @Tags Flavors
// @Produce json
// @Param id path string true "Flavor ID"
// @Success 200 {object} domain.FlavorDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /flavors/{id} [get]
func (h *FlavorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	flavor, err := h.flavorService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get flavor")
		return
	}

	respondJSON(w, http.StatusOK, flavor)
}

// Create godoc
// @Summary Create a flavor
// @Description Add a catalog flavor. Admin only.
// @Tags Flavors
// @Accept json
// @Produce json
// @Param request body domain.CreateFlavorRequest true "Flavor details"
// @Success 201 {object} domain.FlavorDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /flavors [post]
func (h *FlavorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateFlavorRequest
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

	flavor, err := h.flavorService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create flavor")
		return
	}

	respondJSON(w, http.StatusCreated, flavor)
}

// Update godoc
// @Summary Update a flavor
// @Description Edit a flavor. Price changes never touch existing order lines. Admin only.
// @Tags Flavors
// @Accept json
// @Produce json
// @Param id path string true "Flavor ID"
// @Param request body domain.UpdateFlavorRequest true "Fields to update"
// @Success 200 {object} domain.FlavorDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /flavors/{id} [put]
func (h *FlavorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req domain.UpdateFlavorRequest
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

	flavor, err := h.flavorService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update flavor")
		return
	}

	respondJSON(w, http.StatusOK, flavor)
}

// Delete godoc
// @Summary Delete a flavor
// @Description Remove a flavor no order items reference. Admin only.
// @Tags Flavors
// @Param id path string true "Flavor ID"
// @Success 204
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /flavors/{id} [delete]
func (h *FlavorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.flavorService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete flavor")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
