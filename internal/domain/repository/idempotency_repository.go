package repository

import (
	"context"

	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
)

type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, record *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
