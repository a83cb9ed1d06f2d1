package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/pkg/apperror"
)

// CategoryService manages the two-level category tree.
type CategoryService struct {
	txManager    repository.TxManager
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository
	logger       *logrus.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	txManager repository.TxManager,
	categoryRepo repository.CategoryRepository,
	itemRepo repository.ItemRepository,
	logger *logrus.Logger,
) *CategoryService {
	return &CategoryService{
		txManager:    txManager,
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		logger:       logger,
	}
}

// CreateCategoryInput describes a new category node. A nil ParentID makes a
// main category; otherwise a subcategory under the given main category.
type CreateCategoryInput struct {
	Name     string
	ParentID *uuid.UUID
}

// CreateCategory adds a category. The tree is capped at two levels: a
// subcategory cannot parent another category.
func (s *CategoryService) CreateCategory(ctx context.Context, shopID uuid.UUID, input *CreateCategoryInput) (*entity.Category, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	categoryType := enum.CategoryTypeMain
	if input.ParentID != nil {
		parent, err := s.categoryRepo.GetByID(ctx, shopID, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NewNotFoundError("Parent category")
		}
		if parent.Type != enum.CategoryTypeMain {
			return nil, apperror.NewBadRequestError("Subcategories cannot be nested")
		}
		categoryType = enum.CategoryTypeSub
	}

	category := &entity.Category{
		ShopID:   shopID,
		ParentID: input.ParentID,
		Name:     input.Name,
		Type:     categoryType,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.WithField("category_id", category.ID).Info("category created")
	return category, nil
}

// ListCategories returns the shop's category tree: main categories with
// subcategories preloaded.
func (s *CategoryService) ListCategories(ctx context.Context, shopID uuid.UUID) ([]entity.Category, error) {
	return s.categoryRepo.ListMain(ctx, shopID)
}

// RenameCategory updates a category's name.
func (s *CategoryService) RenameCategory(ctx context.Context, shopID, categoryID uuid.UUID, name string) (*entity.Category, error) {
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	category, err := s.categoryRepo.GetByID(ctx, shopID, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes an empty category. Categories holding items or
// subcategories are protected; use MoveAndDelete to relocate contents first.
func (s *CategoryService) DeleteCategory(ctx context.Context, shopID, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, shopID, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	items, err := s.itemRepo.CountInCategory(ctx, category.ID)
	if err != nil {
		return err
	}
	if items > 0 {
		return apperror.NewIntegrityViolationError("Category contains items and cannot be deleted")
	}

	children, err := s.categoryRepo.CountChildren(ctx, category.ID)
	if err != nil {
		return err
	}
	if children > 0 {
		return apperror.NewIntegrityViolationError("Category has subcategories and cannot be deleted")
	}

	if err := s.categoryRepo.Delete(ctx, category.ID); err != nil {
		return err
	}

	s.logger.WithField("category_id", category.ID).Info("category deleted")
	return nil
}

// MoveAndDeleteInput relocates a category's contents before removal.
type MoveAndDeleteInput struct {
	TargetCategoryID    uuid.UUID
	TargetSubcategoryID *uuid.UUID
}

// MoveAndDelete moves every item (and, for main categories, every
// subcategory) into the target category, then deletes the emptied source.
// One transaction: either everything moves and the source disappears, or
// nothing changes.
func (s *CategoryService) MoveAndDelete(ctx context.Context, shopID, categoryID uuid.UUID, input *MoveAndDeleteInput) error {
	if input.TargetCategoryID == categoryID {
		return apperror.NewBadRequestError("Target category must differ from the one being deleted")
	}

	err := s.txManager.InTx(ctx, func(ctx context.Context) error {
		source, err := s.categoryRepo.GetByID(ctx, shopID, categoryID)
		if err != nil {
			return err
		}
		if source == nil {
			return apperror.NewNotFoundError("Category")
		}

		target, err := s.categoryRepo.GetByID(ctx, shopID, input.TargetCategoryID)
		if err != nil {
			return err
		}
		if target == nil {
			return apperror.NewNotFoundError("Target category")
		}
		if target.Type != enum.CategoryTypeMain {
			return apperror.NewBadRequestError("Target must be a main category")
		}
		if input.TargetSubcategoryID != nil {
			sub, err := s.categoryRepo.GetByID(ctx, shopID, *input.TargetSubcategoryID)
			if err != nil {
				return err
			}
			if sub == nil || sub.ParentID == nil || *sub.ParentID != target.ID {
				return apperror.NewBadRequestError("Target subcategory does not belong to the target category")
			}
		}

		if err := s.itemRepo.MoveCategory(ctx, source.ID, target.ID, input.TargetSubcategoryID); err != nil {
			return err
		}

		if source.Type == enum.CategoryTypeMain {
			if err := s.categoryRepo.ReparentChildren(ctx, source.ID, target.ID); err != nil {
				return err
			}
		}

		return s.categoryRepo.Delete(ctx, source.ID)
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"category_id": categoryID,
		"target_id":   input.TargetCategoryID,
	}).Info("category contents moved and category deleted")
	return nil
}
