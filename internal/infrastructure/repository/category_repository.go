package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	domainRepo "github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return conn(ctx, r.db).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, shopID, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := conn(ctx, r.db).
		Preload("Subcategories").
		First(&category, "id = ? AND shop_id = ?", id, shopID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) ListMain(ctx context.Context, shopID uuid.UUID) ([]entity.Category, error) {
	var categories []entity.Category
	err := conn(ctx, r.db).
		Preload("Subcategories").
		Where("shop_id = ? AND parent_id IS NULL", shopID).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return conn(ctx, r.db).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Category{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *categoryRepository) ReparentChildren(ctx context.Context, fromID, toID uuid.UUID) error {
	return conn(ctx, r.db).Model(&entity.Category{}).
		Where("parent_id = ?", fromID).
		Update("parent_id", toID).Error
}
