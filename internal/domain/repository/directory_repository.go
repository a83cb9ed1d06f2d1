package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
)

// LocationRepository manages storage locations.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*entity.Location, error)
	List(ctx context.Context, shopID uuid.UUID) ([]entity.Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DeliveryPartnerRepository manages external drivers.
type DeliveryPartnerRepository interface {
	Create(ctx context.Context, partner *entity.DeliveryPartner) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*entity.DeliveryPartner, error)
	List(ctx context.Context, shopID uuid.UUID) ([]entity.DeliveryPartner, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
