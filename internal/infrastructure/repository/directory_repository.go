package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	domainRepo "github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"gorm.io/gorm"
)

type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) domainRepo.LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, location *entity.Location) error {
	return conn(ctx, r.db).Create(location).Error
}

func (r *locationRepository) GetByID(ctx context.Context, shopID, id uuid.UUID) (*entity.Location, error) {
	var location entity.Location
	err := conn(ctx, r.db).First(&location, "id = ? AND shop_id = ?", id, shopID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &location, err
}

func (r *locationRepository) List(ctx context.Context, shopID uuid.UUID) ([]entity.Location, error) {
	var locations []entity.Location
	err := conn(ctx, r.db).
		Where("shop_id = ?", shopID).
		Order("floor_name ASC, rack_number ASC, shelf_number ASC").
		Find(&locations).Error
	return locations, err
}

func (r *locationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Location{}, "id = ?", id).Error
}

type deliveryPartnerRepository struct {
	db *gorm.DB
}

// NewDeliveryPartnerRepository creates a new delivery partner repository
func NewDeliveryPartnerRepository(db *gorm.DB) domainRepo.DeliveryPartnerRepository {
	return &deliveryPartnerRepository{db: db}
}

func (r *deliveryPartnerRepository) Create(ctx context.Context, partner *entity.DeliveryPartner) error {
	return conn(ctx, r.db).Create(partner).Error
}

func (r *deliveryPartnerRepository) GetByID(ctx context.Context, shopID, id uuid.UUID) (*entity.DeliveryPartner, error) {
	var partner entity.DeliveryPartner
	err := conn(ctx, r.db).First(&partner, "id = ? AND shop_id = ?", id, shopID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &partner, err
}

func (r *deliveryPartnerRepository) List(ctx context.Context, shopID uuid.UUID) ([]entity.DeliveryPartner, error) {
	var partners []entity.DeliveryPartner
	err := conn(ctx, r.db).
		Where("shop_id = ?", shopID).
		Order("name ASC").
		Find(&partners).Error
	return partners, err
}

func (r *deliveryPartnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.DeliveryPartner{}, "id = ?", id).Error
}
