package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
)

// walkInDefaultPassword seeds counter-created accounts so the customer can
// later claim the account with their phone number.
const walkInDefaultPassword = "123456"

// CustomerResolver turns the customer reference on a billing request into a
// concrete customer account, creating a walk-in account on first contact so
// every invoice can carry a ledger.
type CustomerResolver struct {
	userRepo    repository.UserRepository
	profileRepo repository.RetailerProfileRepository
}

// NewCustomerResolver creates a new customer resolver
func NewCustomerResolver(userRepo repository.UserRepository, profileRepo repository.RetailerProfileRepository) *CustomerResolver {
	return &CustomerResolver{userRepo: userRepo, profileRepo: profileRepo}
}

// CustomerRef is how a billing request names its customer: an existing
// account by ID, or a name/phone pair for counter sales.
type CustomerRef struct {
	CustomerID *uuid.UUID
	Name       string
	Phone      string
}

// Resolution is the outcome of resolving a customer reference.
type Resolution struct {
	CustomerID uuid.UUID
	Name       string
	Phone      string
	Created    bool
}

// Resolve finds or creates the customer account for a billing request. It is
// expected to run inside the billing transaction so a failed invoice does not
// leave an orphaned account.
func (r *CustomerResolver) Resolve(ctx context.Context, shopID uuid.UUID, ref *CustomerRef) (*Resolution, error) {
	if ref.CustomerID != nil {
		user, err := r.userRepo.GetByID(ctx, *ref.CustomerID)
		if err != nil {
			return nil, err
		}
		if user == nil || user.ShopID != shopID {
			return nil, apperror.NewNotFoundError("Customer")
		}
		return &Resolution{CustomerID: user.ID, Name: user.Name, Phone: user.Phone}, nil
	}

	if ref.Phone == "" {
		return nil, apperror.NewBadRequestError("Customer phone is required")
	}

	existing, err := r.userRepo.GetByPhone(ctx, ref.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.ShopID != shopID {
			return nil, apperror.NewNotFoundError("Customer")
		}
		return &Resolution{CustomerID: existing.ID, Name: existing.Name, Phone: existing.Phone}, nil
	}

	name := ref.Name
	if name == "" {
		name = "Walk-in Customer"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(walkInDefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ShopID:   shopID,
		Name:     name,
		Phone:    ref.Phone,
		Password: string(hashed),
		Role:     enum.UserRoleRetailer,
		Status:   "active",
	}
	created, err := r.userRepo.CreateIfAbsent(ctx, user)
	if err != nil {
		return nil, err
	}
	if !created {
		// Two counters billed the same new phone at once; the unique phone
		// index picked a winner, so reuse that account.
		winner, err := r.userRepo.GetByPhone(ctx, ref.Phone)
		if err != nil {
			return nil, err
		}
		if winner == nil || winner.ShopID != shopID {
			return nil, apperror.NewNotFoundError("Customer")
		}
		return &Resolution{CustomerID: winner.ID, Name: winner.Name, Phone: winner.Phone}, nil
	}

	profile := &entity.RetailerProfile{
		UserID:       user.ID,
		ShopID:       shopID,
		CustomerType: enum.CustomerTypeWalkIn,
	}
	if err := r.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return &Resolution{CustomerID: user.ID, Name: user.Name, Phone: user.Phone, Created: true}, nil
}
