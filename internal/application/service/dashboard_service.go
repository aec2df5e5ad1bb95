package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	"github.com/leadhive/leadhive-api/internal/domain/repository"
)

// Follow-ups due within this window count as upcoming.
const upcomingFollowUpWindow = 7 * 24 * time.Hour

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalLeads        int64               `json:"total_leads"`
	TotalContacts     int64               `json:"total_contacts"`
	NewLeadsThisMonth int64               `json:"new_leads_this_month"`
	ConversionRate    float64             `json:"conversion_rate"`
	PotentialRevenue  float64             `json:"potential_revenue"`
	FormVisits        int64               `json:"form_visits"`
	FormSubmissions   int64               `json:"form_submissions"`
	OverdueFollowUps  int64               `json:"overdue_follow_ups"`
	UpcomingFollowUps int64               `json:"upcoming_follow_ups"`
	StatusBreakdown   []DistributionPoint `json:"status_breakdown"`
	SourceBreakdown   []DistributionPoint `json:"source_breakdown"`
	StageLoad         []StageLoadPoint    `json:"stage_load"`
}

// DistributionPoint represents one bucket of a breakdown chart
type DistributionPoint struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// StageLoadPoint represents one column of the pipeline board chart
type StageLoadPoint struct {
	Stage string `json:"stage"`
	Color string `json:"color"`
	Count int64  `json:"count"`
}

// GetDashboardStats returns the tenant's dashboard statistics. The
// breakdown charts can be narrowed to one pipeline; the headline
// counters always cover the whole tenant.
func (s *DashboardService) GetDashboardStats(ctx context.Context, pipelineID *uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{}

	totalLeads, err := s.analyticsRepo.GetTotalLeads(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalLeads = totalLeads

	won, err := s.analyticsRepo.GetWonLeads(ctx, entity.LeadStatusWon)
	if err != nil {
		return nil, err
	}
	if totalLeads > 0 {
		stats.ConversionRate = float64(won) / float64(totalLeads) * 100
	}

	stats.PotentialRevenue, err = s.analyticsRepo.GetPotentialRevenue(ctx)
	if err != nil {
		return nil, err
	}

	stats.NewLeadsThisMonth, err = s.analyticsRepo.GetNewLeadsThisMonth(ctx)
	if err != nil {
		return nil, err
	}

	stats.TotalContacts, err = s.analyticsRepo.GetTotalContacts(ctx)
	if err != nil {
		return nil, err
	}

	stats.FormVisits, stats.FormSubmissions, err = s.analyticsRepo.GetFormTraffic(ctx)
	if err != nil {
		return nil, err
	}

	stats.OverdueFollowUps, stats.UpcomingFollowUps, err = s.analyticsRepo.GetFollowUpCounts(ctx, time.Now(), upcomingFollowUpWindow)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.analyticsRepo.GetLeadsByStatus(ctx, pipelineID)
	if err != nil {
		return nil, err
	}
	stats.StatusBreakdown = make([]DistributionPoint, 0, len(byStatus))
	for _, row := range byStatus {
		stats.StatusBreakdown = append(stats.StatusBreakdown, DistributionPoint{Label: row.Label, Count: row.Count})
	}

	bySource, err := s.analyticsRepo.GetLeadsBySource(ctx, pipelineID)
	if err != nil {
		return nil, err
	}
	stats.SourceBreakdown = make([]DistributionPoint, 0, len(bySource))
	for _, row := range bySource {
		stats.SourceBreakdown = append(stats.SourceBreakdown, DistributionPoint{Label: row.Label, Count: row.Count})
	}

	stageLoad, err := s.analyticsRepo.GetStageLoad(ctx, pipelineID)
	if err != nil {
		return nil, err
	}
	stats.StageLoad = make([]StageLoadPoint, 0, len(stageLoad))
	for _, row := range stageLoad {
		stats.StageLoad = append(stats.StageLoad, StageLoadPoint{Stage: row.StageName, Color: row.Color, Count: row.Count})
	}

	return stats, nil
}
