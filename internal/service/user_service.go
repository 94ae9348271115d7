package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tamu-beverages/sales-api/internal/auth"
	"github.com/tamu-beverages/sales-api/internal/config"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/mapper"
	"github.com/tamu-beverages/sales-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfileRepository
	tokenIssuer *auth.TokenIssuer
	authConfig  *config.AuthConfig
	logger      *zap.Logger
}

func NewUserService(
	userRepo *repository.UserRepository,
	profileRepo *repository.ProfileRepository,
	tokenIssuer *auth.TokenIssuer,
	authConfig *config.AuthConfig,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokenIssuer: tokenIssuer,
		authConfig:  authConfig,
		logger:      logger,
	}
}

// Login verifies credentials and issues an access token. Failed lookups and
// bad passwords return the same error so usernames cannot be probed.
func (s *UserService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login failed", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive || user.Profile == nil {
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.tokenIssuer.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	// GetByUsername preloads the profile but not the back-reference
	user.Profile.User = user

	s.logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("role", string(user.Profile.Role)),
	)

	return &domain.LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Profile.Role,
		Profile:  mapper.ToProfileDTO(user.Profile),
	}, nil
}

// RegisterSalesperson creates a salesperson account. Admin only.
func (s *UserService) RegisterSalesperson(ctx context.Context, req *domain.RegisterSalespersonRequest) (*domain.ProfileDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !userCtx.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.authConfig.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
		IsActive:     true,
	}
	profile := &domain.Profile{
		Role: domain.RoleSalesperson,
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, mapper.FormatError("user", "create", err)
	}
	profile.User = user

	s.logger.Info("salesperson registered",
		zap.String("username", user.Username),
		zap.String("registered_by", userCtx.Username),
	)

	dto := mapper.ToProfileDTO(profile)
	return &dto, nil
}

// Me returns the profile of the authenticated user
func (s *UserService) Me(ctx context.Context) (*domain.ProfileDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	profile, err := s.profileRepo.GetByID(ctx, userCtx.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, mapper.FormatError("profile", "get", err)
	}

	dto := mapper.ToProfileDTO(profile)
	return &dto, nil
}

// ListSalespersons returns all active salesperson profiles, for assignment
// pickers. Any authenticated user may call it.
func (s *UserService) ListSalespersons(ctx context.Context) ([]domain.ProfileDTO, error) {
	if _, ok := auth.FromContext(ctx); !ok {
		return nil, ErrUnauthorized
	}

	profiles, err := s.profileRepo.ListByRole(ctx, domain.RoleSalesperson)
	if err != nil {
		return nil, mapper.FormatError("salespersons", "list", err)
	}

	dtos := make([]domain.ProfileDTO, len(profiles))
	for i := range profiles {
		dtos[i] = mapper.ToProfileDTO(&profiles[i])
	}
	return dtos, nil
}
