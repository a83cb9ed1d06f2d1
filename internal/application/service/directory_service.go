package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/pkg/apperror"
)

// DirectoryService manages the shop's supporting directories: storage
// locations and delivery partners.
type DirectoryService struct {
	locationRepo repository.LocationRepository
	partnerRepo  repository.DeliveryPartnerRepository
	itemRepo     repository.ItemRepository
	logger       *logrus.Logger
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(
	locationRepo repository.LocationRepository,
	partnerRepo repository.DeliveryPartnerRepository,
	itemRepo repository.ItemRepository,
	logger *logrus.Logger,
) *DirectoryService {
	return &DirectoryService{
		locationRepo: locationRepo,
		partnerRepo:  partnerRepo,
		itemRepo:     itemRepo,
		logger:       logger,
	}
}

// CreateLocationInput describes a storage slot.
type CreateLocationInput struct {
	FloorName   string
	RackNumber  string
	ShelfNumber string
}

// CreateLocation adds a storage location.
func (s *DirectoryService) CreateLocation(ctx context.Context, shopID uuid.UUID, input *CreateLocationInput) (*entity.Location, error) {
	if input.FloorName == "" && input.RackNumber == "" && input.ShelfNumber == "" {
		return nil, apperror.NewBadRequestError("Location needs at least one of floor, rack or shelf")
	}

	location := &entity.Location{
		ShopID:      shopID,
		FloorName:   input.FloorName,
		RackNumber:  input.RackNumber,
		ShelfNumber: input.ShelfNumber,
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// ListLocations lists the shop's storage locations.
func (s *DirectoryService) ListLocations(ctx context.Context, shopID uuid.UUID) ([]entity.Location, error) {
	return s.locationRepo.List(ctx, shopID)
}

// DeleteLocation removes a storage location, detaching any items stored
// there. The column is nullable so item history is unaffected.
func (s *DirectoryService) DeleteLocation(ctx context.Context, shopID, locationID uuid.UUID) error {
	location, err := s.locationRepo.GetByID(ctx, shopID, locationID)
	if err != nil {
		return err
	}
	if location == nil {
		return apperror.NewNotFoundError("Location")
	}

	if err := s.itemRepo.DetachLocation(ctx, location.ID); err != nil {
		return err
	}
	return s.locationRepo.Delete(ctx, location.ID)
}

// CreatePartnerInput describes a delivery partner.
type CreatePartnerInput struct {
	Name          string
	Phone         string
	VehicleNumber *string
}

// CreatePartner adds a delivery partner.
func (s *DirectoryService) CreatePartner(ctx context.Context, shopID uuid.UUID, input *CreatePartnerInput) (*entity.DeliveryPartner, error) {
	if input.Name == "" || input.Phone == "" {
		return nil, apperror.NewBadRequestError("Partner name and phone are required")
	}

	partner := &entity.DeliveryPartner{
		ShopID:        shopID,
		Name:          input.Name,
		Phone:         input.Phone,
		VehicleNumber: input.VehicleNumber,
	}
	if err := s.partnerRepo.Create(ctx, partner); err != nil {
		return nil, err
	}

	s.logger.WithField("partner_id", partner.ID).Info("delivery partner created")
	return partner, nil
}

// ListPartners lists the shop's delivery partners.
func (s *DirectoryService) ListPartners(ctx context.Context, shopID uuid.UUID) ([]entity.DeliveryPartner, error) {
	return s.partnerRepo.List(ctx, shopID)
}

// DeletePartner removes a delivery partner. Dispatched orders keep the cached
// driver name, so history is unaffected.
func (s *DirectoryService) DeletePartner(ctx context.Context, shopID, partnerID uuid.UUID) error {
	partner, err := s.partnerRepo.GetByID(ctx, shopID, partnerID)
	if err != nil {
		return err
	}
	if partner == nil {
		return apperror.NewNotFoundError("Delivery partner")
	}
	return s.partnerRepo.Delete(ctx, partner.ID)
}
