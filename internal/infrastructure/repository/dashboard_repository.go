package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	domainRepo "github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"gorm.io/gorm"
)

// lowStockThreshold marks items that should be restocked soon.
const lowStockThreshold = 5

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *gorm.DB) domainRepo.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) Stats(ctx context.Context, shopID uuid.UUID, from, to time.Time) (*domainRepo.DashboardStats, error) {
	db := conn(ctx, r.db)
	stats := &domainRepo.DashboardStats{
		SalesTotal:        decimal.Zero,
		OutstandingCredit: decimal.Zero,
	}

	var invoices []entity.Invoice
	err := db.Select("grand_total").
		Where("shop_id = ? AND created_at >= ? AND created_at < ?", shopID, from, to).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	stats.InvoiceCount = int64(len(invoices))
	for i := range invoices {
		stats.SalesTotal = stats.SalesTotal.Add(invoices[i].GrandTotal)
	}

	err = db.Model(&entity.Order{}).
		Where("shop_id = ? AND status = ?", shopID, enum.OrderStatusPending).
		Count(&stats.PendingOrders).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.ReturnRequest{}).
		Where("shop_id = ? AND status = ?", shopID, enum.ReturnStatusPending).
		Count(&stats.PendingReturns).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.Item{}).
		Where("shop_id = ? AND stock_quantity <= ?", shopID, lowStockThreshold).
		Count(&stats.LowStockItems).Error
	if err != nil {
		return nil, err
	}

	var profiles []entity.RetailerProfile
	err = db.Select("current_balance").
		Where("shop_id = ?", shopID).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].CurrentBalance.IsPositive() {
			stats.OutstandingCredit = stats.OutstandingCredit.Add(profiles[i].CurrentBalance)
		}
	}

	return stats, nil
}
