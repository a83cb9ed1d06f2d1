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

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return conn(ctx, r.db).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, shopID, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := conn(ctx, r.db).
		Preload("Items").
		Preload("Items.Item").
		Preload("Retailer").
		First(&order, "id = ? AND shop_id = ?", id, shopID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetByRetailer(ctx context.Context, retailerID, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := conn(ctx, r.db).
		Preload("Items").
		Preload("Items.Item").
		First(&order, "id = ? AND retailer_id = ?", id, retailerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) ListByShop(ctx context.Context, shopID uuid.UUID, params *pagination.PaginationParams) ([]entity.Order, int64, error) {
	return r.list(ctx, params, "shop_id = ?", shopID)
}

func (r *orderRepository) ListByRetailer(ctx context.Context, retailerID uuid.UUID, params *pagination.PaginationParams) ([]entity.Order, int64, error) {
	return r.list(ctx, params, "retailer_id = ?", retailerID)
}

func (r *orderRepository) list(ctx context.Context, params *pagination.PaginationParams, cond string, arg interface{}) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := conn(ctx, r.db).Model(&entity.Order{}).Where(cond, arg)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.
		Preload("Items").
		Preload("Items.Item").
		Preload("Retailer").
		Order("created_at DESC").
		Offset(params.Offset()).Limit(params.PerPage).
		Find(&orders).Error

	return orders, total, err
}

// Update persists the order row itself; lines are written through UpdateLine.
func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(order).Error
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	return conn(ctx, r.db).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// TransitionStatus is the write-side guard on the order state machine: the
// WHERE clause makes the transition conditional on the expected status, so of
// two concurrent processors only one sees a row change.
func (r *orderRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error) {
	res := conn(ctx, r.db).Model(&entity.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}

func (r *orderRepository) GetLine(ctx context.Context, orderID, itemID uuid.UUID) (*entity.OrderItem, error) {
	var line entity.OrderItem
	err := conn(ctx, r.db).
		First(&line, "order_id = ? AND item_id = ?", orderID, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &line, err
}

func (r *orderRepository) UpdateLine(ctx context.Context, line *entity.OrderItem) error {
	return conn(ctx, r.db).Save(line).Error
}
