package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
)

// CategoryRepository manages the two-level category tree.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*entity.Category, error)
	// ListMain returns main categories with their subcategories preloaded.
	ListMain(ctx context.Context, shopID uuid.UUID) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountChildren(ctx context.Context, id uuid.UUID) (int64, error)
	// ReparentChildren moves all subcategories of fromID under toID.
	ReparentChildren(ctx context.Context, fromID, toID uuid.UUID) error
}
