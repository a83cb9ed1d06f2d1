package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/repository"
)

// DashboardService aggregates shop figures for the overview screen.
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// Stats returns the shop's dashboard figures for the given window. A zero
// from/to defaults to the last 30 days.
func (s *DashboardService) Stats(ctx context.Context, shopID uuid.UUID, from, to time.Time) (*repository.DashboardStats, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return s.dashboardRepo.Stats(ctx, shopID, from, to)
}
