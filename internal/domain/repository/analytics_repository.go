package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DistributionResult represents a count bucketed by a label such as a
// lead status or source
type DistributionResult struct {
	Label string
	Count int64
}

// StageLoadResult represents how many leads sit in a pipeline stage
type StageLoadResult struct {
	StageName string
	Color     string
	Count     int64
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// GetTotalLeads returns the tenant's total lead count
	GetTotalLeads(ctx context.Context) (int64, error)

	// GetLeadsByStatus returns lead counts per status, optionally narrowed
	// to one pipeline
	GetLeadsByStatus(ctx context.Context, pipelineID *uuid.UUID) ([]DistributionResult, error)

	// GetLeadsBySource returns lead counts per source, optionally narrowed
	// to one pipeline
	GetLeadsBySource(ctx context.Context, pipelineID *uuid.UUID) ([]DistributionResult, error)

	// GetStageLoad returns lead counts per stage, optionally narrowed to
	// the stages of one pipeline
	GetStageLoad(ctx context.Context, pipelineID *uuid.UUID) ([]StageLoadResult, error)

	// GetWonLeads returns the number of leads whose status marks a closed deal
	GetWonLeads(ctx context.Context, wonStatus string) (int64, error)

	// GetPotentialRevenue returns the sum of budgets across open leads
	GetPotentialRevenue(ctx context.Context) (float64, error)

	// GetNewLeadsThisMonth returns leads created since the start of the month
	GetNewLeadsThisMonth(ctx context.Context) (int64, error)

	// GetFollowUpCounts returns how many leads have a follow-up in the
	// past and how many have one due within the given window
	GetFollowUpCounts(ctx context.Context, now time.Time, upcomingWindow time.Duration) (overdue int64, upcoming int64, err error)

	// GetTotalContacts returns the tenant's total contact count
	GetTotalContacts(ctx context.Context) (int64, error)

	// GetFormTraffic returns summed visits and submissions across all forms
	GetFormTraffic(ctx context.Context) (visits int64, submissions int64, err error)
}
