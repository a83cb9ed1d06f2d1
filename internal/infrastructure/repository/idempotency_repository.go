package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	domainRepo "github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"gorm.io/gorm"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error) {
	var record entity.IdempotencyKey
	err := conn(ctx, r.db).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *idempotencyRepository) Create(ctx context.Context, record *entity.IdempotencyKey) error {
	return conn(ctx, r.db).Create(record).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	return conn(ctx, r.db).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.IdempotencyKey{}).Error
}
