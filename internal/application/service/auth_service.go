package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/pkg/apperror"
	"github.com/sparetrack/sparetrack-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles authentication
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	logger     *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, jwtManager: jwtManager, logger: logger}
}

// AuthTokens is the token pair returned on login and refresh.
type AuthTokens struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *entity.User `json:"user"`
}

// Login authenticates by phone and password.
func (s *AuthService) Login(ctx context.Context, phone, password string) (*AuthTokens, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if user.Status != "active" {
		return nil, apperror.ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != "active" {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *entity.User) (*AuthTokens, error) {
	access, err := s.jwtManager.GenerateAccessToken(user.ID, user.ShopID, user.Phone, string(user.Role))
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Debug("tokens issued")
	return &AuthTokens{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// GetMe returns the authenticated user's profile.
func (s *AuthService) GetMe(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword string) error {
	if len(newPassword) < 6 {
		return apperror.NewBadRequestError("Password must be at least 6 characters")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return apperror.NewBadRequestError("Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}
