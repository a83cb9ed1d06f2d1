package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	domainRepo "github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return conn(ctx, r.db).Create(user).Error
}

func (r *userRepository) CreateIfAbsent(ctx context.Context, user *entity.User) (bool, error) {
	res := conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoNothing: true,
		}).
		Create(user)
	return res.RowsAffected > 0, res.Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := conn(ctx, r.db).
		Preload("RetailerProfile").
		First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	var user entity.User
	err := conn(ctx, r.db).
		Preload("RetailerProfile").
		First(&user, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// Update persists the user row; the profile is written through its own
// repository.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.User{}, "id = ?", id).Error
}

func (r *userRepository) ListByRole(ctx context.Context, shopID uuid.UUID, role enum.UserRole) ([]entity.User, error) {
	var users []entity.User
	err := conn(ctx, r.db).
		Preload("RetailerProfile").
		Where("shop_id = ? AND role = ?", shopID, role).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

type retailerProfileRepository struct {
	db *gorm.DB
}

// NewRetailerProfileRepository creates a new retailer profile repository
func NewRetailerProfileRepository(db *gorm.DB) domainRepo.RetailerProfileRepository {
	return &retailerProfileRepository{db: db}
}

func (r *retailerProfileRepository) Create(ctx context.Context, profile *entity.RetailerProfile) error {
	return conn(ctx, r.db).Create(profile).Error
}

func (r *retailerProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.RetailerProfile, error) {
	var profile entity.RetailerProfile
	err := conn(ctx, r.db).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

// GetByUserIDForUpdate locks the profile row so concurrent ledger postings
// against the same customer serialize on it.
func (r *retailerProfileRepository) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.RetailerProfile, error) {
	var profile entity.RetailerProfile
	err := forUpdate(conn(ctx, r.db)).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *retailerProfileRepository) Update(ctx context.Context, profile *entity.RetailerProfile) error {
	return conn(ctx, r.db).Save(profile).Error
}
