package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/pkg/pagination"
)

// ReturnRepository manages return requests.
type ReturnRepository interface {
	Create(ctx context.Context, request *entity.ReturnRequest) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*entity.ReturnRequest, error)
	ListByShop(ctx context.Context, shopID uuid.UUID, params *pagination.PaginationParams) ([]entity.ReturnRequest, int64, error)
	Update(ctx context.Context, request *entity.ReturnRequest) error
	// TransitionStatus moves the request from one status to another in a
	// single conditional update and reports whether a row changed. A false
	// result means another request already decided it.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.ReturnStatus) (bool, error)
}
