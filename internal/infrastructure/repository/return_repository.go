package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	domainRepo "github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type returnRepository struct {
	db *gorm.DB
}

// NewReturnRepository creates a new return request repository
func NewReturnRepository(db *gorm.DB) domainRepo.ReturnRepository {
	return &returnRepository{db: db}
}

func (r *returnRepository) Create(ctx context.Context, request *entity.ReturnRequest) error {
	return conn(ctx, r.db).Create(request).Error
}

func (r *returnRepository) GetByID(ctx context.Context, shopID, id uuid.UUID) (*entity.ReturnRequest, error) {
	var request entity.ReturnRequest
	err := conn(ctx, r.db).
		Preload("Item").
		Preload("Retailer").
		First(&request, "id = ? AND shop_id = ?", id, shopID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &request, err
}

func (r *returnRepository) ListByShop(ctx context.Context, shopID uuid.UUID, params *pagination.PaginationParams) ([]entity.ReturnRequest, int64, error) {
	var requests []entity.ReturnRequest
	var total int64

	query := conn(ctx, r.db).Model(&entity.ReturnRequest{}).Where("shop_id = ?", shopID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.
		Preload("Item").
		Preload("Retailer").
		Order("created_at DESC").
		Offset(params.Offset()).Limit(params.PerPage).
		Find(&requests).Error

	return requests, total, err
}

func (r *returnRepository) Update(ctx context.Context, request *entity.ReturnRequest) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(request).Error
}

// TransitionStatus is the write-side guard on the return state machine; the
// conditional update means of two concurrent decisions only one sees a row
// change.
func (r *returnRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.ReturnStatus) (bool, error) {
	res := conn(ctx, r.db).Model(&entity.ReturnRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}
