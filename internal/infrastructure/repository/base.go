package repository

import (
	"context"

	"github.com/sparetrack/sparetrack-api/internal/infrastructure/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// conn returns the transaction handle carried on the context, falling
// back to the base connection. Repositories route every query through
// this so they transparently join a surrounding transaction.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := database.TxFrom(ctx); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// forUpdate applies a row-level write lock. SQLite has no SELECT ... FOR
// UPDATE; its single-writer transaction already serializes writers, so
// the clause is skipped there.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
