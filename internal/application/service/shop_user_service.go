package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
)

// ShopUserService manages the shop's people: staff accounts and retailer
// customers with their credit profiles.
type ShopUserService struct {
	txManager   repository.TxManager
	userRepo    repository.UserRepository
	profileRepo repository.RetailerProfileRepository
	logger      *logrus.Logger
}

// NewShopUserService creates a new shop user service
func NewShopUserService(
	txManager repository.TxManager,
	userRepo repository.UserRepository,
	profileRepo repository.RetailerProfileRepository,
	logger *logrus.Logger,
) *ShopUserService {
	return &ShopUserService{
		txManager:   txManager,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// CreateStaffInput creates a staff account.
type CreateStaffInput struct {
	Name     string
	Phone    string
	Email    *string
	Password string
}

// CreateStaff adds a staff account to the shop.
func (s *ShopUserService) CreateStaff(ctx context.Context, shopID uuid.UUID, input *CreateStaffInput) (*entity.User, error) {
	if err := s.checkPhoneFree(ctx, input.Phone); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ShopID:   shopID,
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Password: string(hashed),
		Role:     enum.UserRoleStaff,
		Status:   "active",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("staff account created")
	return user, nil
}

// CreateRetailerInput onboards a B2B retailer with a credit account.
type CreateRetailerInput struct {
	Name             string
	Phone            string
	Email            *string
	Password         string
	RetailerShopName *string
	GSTNumber        *string
	Address          *string
	CreditLimit      decimal.Decimal
}

// CreateRetailer creates the retailer account and its credit profile in one
// transaction.
func (s *ShopUserService) CreateRetailer(ctx context.Context, shopID uuid.UUID, input *CreateRetailerInput) (*entity.User, error) {
	if input.CreditLimit.IsNegative() {
		return nil, apperror.NewBadRequestError("Credit limit cannot be negative")
	}
	if err := s.checkPhoneFree(ctx, input.Phone); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ShopID:   shopID,
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Password: string(hashed),
		Role:     enum.UserRoleRetailer,
		Status:   "active",
	}

	err = s.txManager.InTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		profile := &entity.RetailerProfile{
			UserID:           user.ID,
			ShopID:           shopID,
			CustomerType:     enum.CustomerTypeB2B,
			RetailerShopName: input.RetailerShopName,
			GSTNumber:        input.GSTNumber,
			Address:          input.Address,
			CreditLimit:      input.CreditLimit,
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return err
		}
		user.RetailerProfile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("retailer onboarded")
	return user, nil
}

func (s *ShopUserService) checkPhoneFree(ctx context.Context, phone string) error {
	if phone == "" {
		return apperror.NewBadRequestError("Phone is required")
	}
	existing, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.NewBadRequestError("Phone number is already registered")
	}
	return nil
}

// ListStaff lists the shop's staff accounts.
func (s *ShopUserService) ListStaff(ctx context.Context, shopID uuid.UUID) ([]entity.User, error) {
	return s.userRepo.ListByRole(ctx, shopID, enum.UserRoleStaff)
}

// ListRetailers lists the shop's retailer customers with their profiles.
func (s *ShopUserService) ListRetailers(ctx context.Context, shopID uuid.UUID) ([]entity.User, error) {
	return s.userRepo.ListByRole(ctx, shopID, enum.UserRoleRetailer)
}

// GetUser returns one shop user.
func (s *ShopUserService) GetUser(ctx context.Context, shopID, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ShopID != shopID {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateRetailerInput updates a retailer's profile fields. Nil fields are
// left unchanged. The running balance is not touchable here; it only moves
// through ledger postings.
type UpdateRetailerInput struct {
	Name             *string
	Email            *string
	RetailerShopName *string
	GSTNumber        *string
	Address          *string
	CreditLimit      *decimal.Decimal
}

// UpdateRetailer updates a retailer account and profile.
func (s *ShopUserService) UpdateRetailer(ctx context.Context, shopID, userID uuid.UUID, input *UpdateRetailerInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, shopID, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != enum.UserRoleRetailer || user.RetailerProfile == nil {
		return nil, apperror.NewNotFoundError("Retailer")
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = input.Email
	}

	profile := user.RetailerProfile
	if input.RetailerShopName != nil {
		profile.RetailerShopName = input.RetailerShopName
	}
	if input.GSTNumber != nil {
		profile.GSTNumber = input.GSTNumber
	}
	if input.Address != nil {
		profile.Address = input.Address
	}
	if input.CreditLimit != nil {
		if input.CreditLimit.IsNegative() {
			return nil, apperror.NewBadRequestError("Credit limit cannot be negative")
		}
		profile.CreditLimit = *input.CreditLimit
	}

	err = s.txManager.InTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}
		return s.profileRepo.Update(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// DeactivateUser disables a shop user's login without deleting history.
func (s *ShopUserService) DeactivateUser(ctx context.Context, shopID, userID uuid.UUID) error {
	user, err := s.GetUser(ctx, shopID, userID)
	if err != nil {
		return err
	}
	if user.Role == enum.UserRoleMaster {
		return apperror.NewBadRequestError("Master account cannot be deactivated")
	}

	user.Status = "inactive"
	return s.userRepo.Update(ctx, user)
}
