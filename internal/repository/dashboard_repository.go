package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardStats aggregates the counters shown on the back-office dashboard.
type DashboardStats struct {
	Users           int     `json:"users"`
	Trainings       int     `json:"trainings"`
	Classes         int     `json:"classes"`
	Students        int     `json:"students"`
	ActiveCampaigns int     `json:"active_campaigns"`
	TotalRaised     float64 `json:"total_raised"`
	TotalFees       float64 `json:"total_fees"`
}

// DashboardRepository computes cross-table aggregates.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetStats collects all dashboard counters in a single query.
func (r *DashboardRepository) GetStats(ctx context.Context) (*DashboardStats, error) {
	s := &DashboardStats{}
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM trainings),
			(SELECT COUNT(*) FROM classes),
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM campaigns WHERE status = 'active'),
			(SELECT COALESCE(SUM(raised_amount), 0) FROM campaigns),
			(SELECT COALESCE(SUM(platform_fee), 0) FROM donations)`,
	).Scan(&s.Users, &s.Trainings, &s.Classes, &s.Students, &s.ActiveCampaigns, &s.TotalRaised, &s.TotalFees)
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}
