package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
)

// UserRepository manages user accounts (master, staff, retailers, walk-ins).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// CreateIfAbsent inserts the user unless the phone number is already
	// taken and reports whether a row was written. The insert uses ON
	// CONFLICT DO NOTHING so losing the race does not abort the surrounding
	// transaction.
	CreateIfAbsent(ctx context.Context, user *entity.User) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// GetByPhone looks a user up by phone number across the whole table;
	// phone numbers are globally unique.
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByRole(ctx context.Context, shopID uuid.UUID, role enum.UserRole) ([]entity.User, error)
}

// RetailerProfileRepository manages the credit accounts attached to retailer
// users. GetByUserIDForUpdate takes a row-level lock so concurrent ledger
// postings against the same customer serialize.
type RetailerProfileRepository interface {
	Create(ctx context.Context, profile *entity.RetailerProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.RetailerProfile, error)
	GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.RetailerProfile, error)
	Update(ctx context.Context, profile *entity.RetailerProfile) error
}
