package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/pkg/apperror"
	"github.com/sparetrack/sparetrack-api/pkg/pagination"
)

// Item names and part numbers are stored uppercase so lookups and duplicate
// checks are case-insensitive at the counter.
func normalizeItemName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func normalizePartNumber(pn *string) *string {
	if pn == nil {
		return nil
	}
	normalized := strings.ToUpper(strings.TrimSpace(*pn))
	return &normalized
}

// ItemService handles catalog item management
type ItemService struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	logger       *logrus.Logger
}

// NewItemService creates a new item service
func NewItemService(
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	logger *logrus.Logger,
) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// CreateItemInput describes a new catalog item.
type CreateItemInput struct {
	CategoryID       uuid.UUID
	SubcategoryID    *uuid.UUID
	LocationID       *uuid.UUID
	ItemName         string
	PartNumber       *string
	CompatibleModels *string
	PurchasePrice    decimal.Decimal
	SellingPrice     decimal.Decimal
	StockQuantity    int
}

// CreateItem adds an item to the shop's catalog.
func (s *ItemService) CreateItem(ctx context.Context, shopID uuid.UUID, input *CreateItemInput) (*entity.Item, error) {
	if input.ItemName == "" {
		return nil, apperror.NewBadRequestError("Item name is required")
	}
	if input.StockQuantity < 0 {
		return nil, apperror.NewBadRequestError("Stock quantity cannot be negative")
	}
	if input.PurchasePrice.IsNegative() || input.SellingPrice.IsNegative() {
		return nil, apperror.NewBadRequestError("Prices cannot be negative")
	}

	if err := s.validateCategoryPair(ctx, shopID, input.CategoryID, input.SubcategoryID); err != nil {
		return nil, err
	}
	if input.LocationID != nil {
		location, err := s.locationRepo.GetByID(ctx, shopID, *input.LocationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, apperror.NewNotFoundError("Location")
		}
	}

	item := &entity.Item{
		ShopID:           shopID,
		CategoryID:       input.CategoryID,
		SubcategoryID:    input.SubcategoryID,
		LocationID:       input.LocationID,
		ItemName:         normalizeItemName(input.ItemName),
		PartNumber:       normalizePartNumber(input.PartNumber),
		CompatibleModels: input.CompatibleModels,
		PurchasePrice:    input.PurchasePrice,
		SellingPrice:     input.SellingPrice,
		StockQuantity:    input.StockQuantity,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.WithField("item_id", item.ID).Info("item created")
	return item, nil
}

func (s *ItemService) validateCategoryPair(ctx context.Context, shopID, categoryID uuid.UUID, subcategoryID *uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, shopID, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	if category.Type != enum.CategoryTypeMain {
		return apperror.NewBadRequestError("Items must attach to a main category")
	}

	if subcategoryID != nil {
		sub, err := s.categoryRepo.GetByID(ctx, shopID, *subcategoryID)
		if err != nil {
			return err
		}
		if sub == nil {
			return apperror.NewNotFoundError("Subcategory")
		}
		if sub.ParentID == nil || *sub.ParentID != categoryID {
			return apperror.NewBadRequestError("Subcategory does not belong to the chosen category")
		}
	}

	return nil
}

// GetItem returns one item.
func (s *ItemService) GetItem(ctx context.Context, shopID, itemID uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, shopID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems lists the shop's items with search and filters.
func (s *ItemService) ListItems(ctx context.Context, shopID uuid.UUID, params *repository.ItemFilterParams) (*pagination.PaginatedResult[entity.Item], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	items, total, err := s.itemRepo.List(ctx, shopID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(items,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// UpdateItemInput updates item fields. Nil fields are left unchanged.
// StockQuantity is deliberately absent: stock only moves through billing,
// dispatch, cancellation and returns.
type UpdateItemInput struct {
	CategoryID       *uuid.UUID
	SubcategoryID    *uuid.UUID
	LocationID       *uuid.UUID
	ItemName         *string
	PartNumber       *string
	CompatibleModels *string
	PurchasePrice    *decimal.Decimal
	SellingPrice     *decimal.Decimal
}

// UpdateItem updates a catalog item.
func (s *ItemService) UpdateItem(ctx context.Context, shopID, itemID uuid.UUID, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.GetItem(ctx, shopID, itemID)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if err := s.validateCategoryPair(ctx, shopID, *input.CategoryID, input.SubcategoryID); err != nil {
			return nil, err
		}
		item.CategoryID = *input.CategoryID
		item.SubcategoryID = input.SubcategoryID
	}
	if input.LocationID != nil {
		location, err := s.locationRepo.GetByID(ctx, shopID, *input.LocationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, apperror.NewNotFoundError("Location")
		}
		item.LocationID = input.LocationID
	}
	if input.ItemName != nil {
		if *input.ItemName == "" {
			return nil, apperror.NewBadRequestError("Item name cannot be empty")
		}
		item.ItemName = normalizeItemName(*input.ItemName)
	}
	if input.PartNumber != nil {
		item.PartNumber = normalizePartNumber(input.PartNumber)
	}
	if input.CompatibleModels != nil {
		item.CompatibleModels = input.CompatibleModels
	}
	if input.PurchasePrice != nil {
		if input.PurchasePrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Purchase price cannot be negative")
		}
		item.PurchasePrice = *input.PurchasePrice
	}
	if input.SellingPrice != nil {
		if input.SellingPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Selling price cannot be negative")
		}
		item.SellingPrice = *input.SellingPrice
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item if nothing references it. Items that appear on
// any invoice or order line stay put so historical documents keep resolving.
func (s *ItemService) DeleteItem(ctx context.Context, shopID, itemID uuid.UUID) error {
	item, err := s.GetItem(ctx, shopID, itemID)
	if err != nil {
		return err
	}

	refs, err := s.itemRepo.CountReferences(ctx, item.ID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperror.NewIntegrityViolationError("Item is referenced by invoices or orders and cannot be deleted")
	}

	if err := s.itemRepo.Delete(ctx, shopID, item.ID); err != nil {
		return err
	}

	s.logger.WithField("item_id", item.ID).Info("item deleted")
	return nil
}
