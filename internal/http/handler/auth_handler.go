package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewAuthHandler(userService *service.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and issue an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
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

	resp, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "log in")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Register godoc
// @Summary Register a salesperson
// @Description Create a salesperson account with its profile. Admin only.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.RegisterSalespersonRequest true "Account details"
// @Success 201 {object} domain.ProfileDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterSalespersonRequest
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

	profile, err := h.userService.RegisterSalesperson(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "register salesperson")
		return
	}

	respondJSON(w, http.StatusCreated, profile)
}

// Me godoc
// @Summary Current user profile
// @Description Return the profile of the authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.ProfileDTO
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.Me(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "get profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// ListSalespersons godoc
// @Summary List salespersons
// @Description Return active salesperson profiles for assignment pickers
// @Tags Auth
// @Produce json
// @Success 200 {array} domain.ProfileDTO
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /salespersons [get]
func (h *AuthHandler) ListSalespersons(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.userService.ListSalespersons(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "list salespersons")
		return
	}

	respondJSON(w, http.StatusOK, profiles)
}
