package services

import (
	"context"

	"github.com/ItsRyS/pms-server/internal/app/repositories"
)

// DashboardStore is the aggregate surface DashboardService needs.
// Satisfied by repositories.DashboardRepository.
type DashboardStore interface {
	Counters(ctx context.Context) (*repositories.DashboardCounters, error)
	TypeDistribution(ctx context.Context) ([]*repositories.TypeDistributionRow, error)
	YearlyTrend(ctx context.Context) ([]*repositories.YearlyTrendRow, error)
}

// DashboardOverview is the aggregate payload for the admin landing page.
type DashboardOverview struct {
	Counters         *repositories.DashboardCounters     `json:"counters"`
	TypeDistribution []*repositories.TypeDistributionRow `json:"type_distribution"`
	YearlyTrend      []*repositories.YearlyTrendRow      `json:"yearly_trend"`
}

// DashboardService defines the interface for admin dashboard data
type DashboardService interface {
	Overview(ctx context.Context) (*DashboardOverview, error)
}

// dashboardServiceImpl implements DashboardService
type dashboardServiceImpl struct {
	dashboardStore DashboardStore
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(dashboardStore DashboardStore) DashboardService {
	return &dashboardServiceImpl{dashboardStore: dashboardStore}
}

// Overview collects the counters, the type distribution and the yearly
// release trend in one payload.
func (s *dashboardServiceImpl) Overview(ctx context.Context) (*DashboardOverview, error) {
	counters, err := s.dashboardStore.Counters(ctx)
	if err != nil {
		return nil, err
	}
	distribution, err := s.dashboardStore.TypeDistribution(ctx)
	if err != nil {
		return nil, err
	}
	trend, err := s.dashboardStore.YearlyTrend(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardOverview{
		Counters:         counters,
		TypeDistribution: distribution,
		YearlyTrend:      trend,
	}, nil
}
