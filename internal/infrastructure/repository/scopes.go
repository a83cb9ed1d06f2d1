package repository

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	// ShopIDKey is the context key for the authenticated shop
	ShopIDKey ctxKey = "shop_id"
	// UserIDKey is the context key for the authenticated user
	UserIDKey ctxKey = "user_id"
)

// WithShop adds shop ID to context
func WithShop(ctx context.Context, shopID uuid.UUID) context.Context {
	return context.WithValue(ctx, ShopIDKey, shopID)
}

// WithUser adds user ID to context
func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}
