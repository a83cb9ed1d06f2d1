package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	domainRepo "github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"gorm.io/gorm"
)

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) domainRepo.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	return conn(ctx, r.db).Create(item).Error
}

func (r *itemRepository) GetByID(ctx context.Context, shopID, id uuid.UUID) (*entity.Item, error) {
	var item entity.Item
	err := conn(ctx, r.db).
		Preload("Category").Preload("Subcategory").Preload("Location").
		First(&item, "id = ? AND shop_id = ?", id, shopID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	return conn(ctx, r.db).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Item{}, "id = ? AND shop_id = ?", id, shopID).Error
}

func (r *itemRepository) List(ctx context.Context, shopID uuid.UUID, params *domainRepo.ItemFilterParams) ([]entity.Item, int64, error) {
	var items []entity.Item
	var total int64

	query := conn(ctx, r.db).Model(&entity.Item{}).Where("shop_id = ?", shopID)

	if params.Search != "" {
		// Names and part numbers are stored uppercase.
		pattern := "%" + strings.ToUpper(params.Search) + "%"
		query = query.Where("item_name LIKE ? OR part_number LIKE ? OR UPPER(compatible_models) LIKE ?",
			pattern, pattern, pattern)
	}

	if params.CategoryID != nil {
		query = query.Where("category_id = ? OR subcategory_id = ?", *params.CategoryID, *params.CategoryID)
	}

	if params.InStock {
		query = query.Where("stock_quantity > 0")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.
		Preload("Category").Preload("Subcategory").Preload("Location").
		Order("created_at DESC").
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Find(&items).Error

	return items, total, err
}

// DeductStock performs the guarded decrement at the heart of billing and
// dispatch. It locks the row, reads the pre-deduction state (the price
// snapshot the caller bills at), then decrements with a stock guard in the
// WHERE clause. Zero rows affected means another writer drained the stock
// between lock acquisition attempts, so the guard is authoritative either way.
func (r *itemRepository) DeductStock(ctx context.Context, shopID, id uuid.UUID, qty int) (*entity.Item, error) {
	db := conn(ctx, r.db)

	var item entity.Item
	err := forUpdate(db).First(&item, "id = ? AND shop_id = ?", id, shopID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if item.StockQuantity < qty {
		return &item, domainRepo.ErrInsufficientStock
	}

	res := db.Model(&entity.Item{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return &item, domainRepo.ErrInsufficientStock
	}

	return &item, nil
}

func (r *itemRepository) RestoreStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	res := conn(ctx, r.db).Model(&entity.Item{}).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", qty))
	return res.RowsAffected > 0, res.Error
}

func (r *itemRepository) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	db := conn(ctx, r.db)

	var invoiceRefs int64
	if err := db.Model(&entity.InvoiceItem{}).Where("item_id = ?", id).Count(&invoiceRefs).Error; err != nil {
		return 0, err
	}

	var orderRefs int64
	if err := db.Model(&entity.OrderItem{}).Where("item_id = ?", id).Count(&orderRefs).Error; err != nil {
		return 0, err
	}

	return invoiceRefs + orderRefs, nil
}

func (r *itemRepository) CountInCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Item{}).
		Where("category_id = ? OR subcategory_id = ?", categoryID, categoryID).
		Count(&count).Error
	return count, err
}

func (r *itemRepository) DetachLocation(ctx context.Context, locationID uuid.UUID) error {
	return conn(ctx, r.db).Model(&entity.Item{}).
		Where("location_id = ?", locationID).
		Update("location_id", nil).Error
}

func (r *itemRepository) MoveCategory(ctx context.Context, fromID, toCategoryID uuid.UUID, toSubcategoryID *uuid.UUID) error {
	return conn(ctx, r.db).Model(&entity.Item{}).
		Where("category_id = ? OR subcategory_id = ?", fromID, fromID).
		Updates(map[string]interface{}{
			"category_id":    toCategoryID,
			"subcategory_id": toSubcategoryID,
		}).Error
}
