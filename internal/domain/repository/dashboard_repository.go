package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats aggregates shop-level figures for the overview screen.
type DashboardStats struct {
	SalesTotal        decimal.Decimal `json:"sales_total"`
	InvoiceCount      int64           `json:"invoice_count"`
	PendingOrders     int64           `json:"pending_orders"`
	PendingReturns    int64           `json:"pending_returns"`
	LowStockItems     int64           `json:"low_stock_items"`
	OutstandingCredit decimal.Decimal `json:"outstanding_credit"`
}

type DashboardRepository interface {
	Stats(ctx context.Context, shopID uuid.UUID, from, to time.Time) (*DashboardStats, error)
}
