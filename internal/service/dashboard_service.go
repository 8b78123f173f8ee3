package service

import (
	"context"

	"github.com/praxis-platform/praxis-backend/internal/repository"
)

// DashboardService serves the back-office aggregate counters.
type DashboardService struct {
	dashboards *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboards *repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboards: dashboards}
}

// Stats returns the current dashboard counters.
func (s *DashboardService) Stats(ctx context.Context) (*repository.DashboardStats, error) {
	return s.dashboards.GetStats(ctx)
}
