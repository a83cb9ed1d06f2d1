package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/pkg/pagination"
)

// OrderRepository manages B2B orders and their lines.
type OrderRepository interface {
	// Create persists the order together with its lines.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*entity.Order, error)
	// GetByRetailer fetches an order scoped to its owning retailer instead of
	// the shop, for retailer-facing endpoints.
	GetByRetailer(ctx context.Context, retailerID, id uuid.UUID) (*entity.Order, error)
	ListByShop(ctx context.Context, shopID uuid.UUID, params *pagination.PaginationParams) ([]entity.Order, int64, error)
	ListByRetailer(ctx context.Context, retailerID uuid.UUID, params *pagination.PaginationParams) ([]entity.Order, int64, error)
	Update(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	// TransitionStatus moves the order from one status to another in a single
	// conditional update and reports whether a row changed. A false result
	// means another request already moved the order out of the expected
	// status.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error)

	// GetLine fetches one order line by (order, item) pair.
	GetLine(ctx context.Context, orderID, itemID uuid.UUID) (*entity.OrderItem, error)
	UpdateLine(ctx context.Context, line *entity.OrderItem) error
}
