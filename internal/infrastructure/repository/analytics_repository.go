package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	domainRepo "github.com/leadhive/leadhive-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// tenantID resolves the tenant from context for raw queries, which bypass
// the gorm scopes. uuid.Nil matches no rows.
func tenantID(ctx context.Context) uuid.UUID {
	id, ok := GetTenantID(ctx)
	if !ok {
		return uuid.Nil
	}
	return id
}

func (r *analyticsRepository) GetTotalLeads(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM leads
		WHERE tenant_id = ? AND deleted_at IS NULL
	`, tenantID(ctx)).Scan(&count).Error

	return count, err
}

func (r *analyticsRepository) GetLeadsByStatus(ctx context.Context, pipelineID *uuid.UUID) ([]domainRepo.DistributionResult, error) {
	var results []domainRepo.DistributionResult

	query := `
		SELECT status as label, COUNT(*) as count
		FROM leads
		WHERE tenant_id = ? AND deleted_at IS NULL`
	args := []interface{}{tenantID(ctx)}
	if pipelineID != nil {
		query += ` AND pipeline_id = ?`
		args = append(args, *pipelineID)
	}
	query += `
		GROUP BY status
		ORDER BY count DESC`

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetLeadsBySource(ctx context.Context, pipelineID *uuid.UUID) ([]domainRepo.DistributionResult, error) {
	var results []domainRepo.DistributionResult

	query := `
		SELECT COALESCE(NULLIF(source, ''), 'Unknown') as label, COUNT(*) as count
		FROM leads
		WHERE tenant_id = ? AND deleted_at IS NULL`
	args := []interface{}{tenantID(ctx)}
	if pipelineID != nil {
		query += ` AND pipeline_id = ?`
		args = append(args, *pipelineID)
	}
	query += `
		GROUP BY label
		ORDER BY count DESC`

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetStageLoad(ctx context.Context, pipelineID *uuid.UUID) ([]domainRepo.StageLoadResult, error) {
	var results []domainRepo.StageLoadResult

	query := `
		SELECT
			s.name as stage_name,
			s.color as color,
			COUNT(l.id) as count
		FROM pipeline_stages s
		LEFT JOIN leads l ON l.stage_id = s.id AND l.deleted_at IS NULL
		WHERE s.tenant_id = ? AND s.deleted_at IS NULL`
	args := []interface{}{tenantID(ctx)}
	if pipelineID != nil {
		query += ` AND s.pipeline_id = ?`
		args = append(args, *pipelineID)
	}
	query += `
		GROUP BY s.id, s.name, s.color, s."order"
		ORDER BY s."order" ASC`

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetWonLeads(ctx context.Context, wonStatus string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM leads
		WHERE tenant_id = ? AND status = ? AND deleted_at IS NULL
	`, tenantID(ctx), wonStatus).Scan(&count).Error

	return count, err
}

func (r *analyticsRepository) GetPotentialRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(budget), 0)
		FROM leads
		WHERE tenant_id = ? AND budget IS NOT NULL AND deleted_at IS NULL
	`, tenantID(ctx)).Scan(&revenue).Error

	return revenue, err
}

func (r *analyticsRepository) GetNewLeadsThisMonth(ctx context.Context) (int64, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM leads
		WHERE tenant_id = ? AND created_at >= ? AND deleted_at IS NULL
	`, tenantID(ctx), startOfMonth).Scan(&count).Error

	return count, err
}

func (r *analyticsRepository) GetFollowUpCounts(ctx context.Context, now time.Time, upcomingWindow time.Duration) (int64, int64, error) {
	var counts struct {
		Overdue  int64
		Upcoming int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(CASE WHEN next_follow_up < ? THEN 1 ELSE 0 END), 0) as overdue,
			COALESCE(SUM(CASE WHEN next_follow_up >= ? AND next_follow_up <= ? THEN 1 ELSE 0 END), 0) as upcoming
		FROM leads
		WHERE tenant_id = ? AND next_follow_up IS NOT NULL AND deleted_at IS NULL
	`, now, now, now.Add(upcomingWindow), tenantID(ctx)).Scan(&counts).Error

	return counts.Overdue, counts.Upcoming, err
}

func (r *analyticsRepository) GetTotalContacts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM contacts
		WHERE tenant_id = ?
	`, tenantID(ctx)).Scan(&count).Error

	return count, err
}

func (r *analyticsRepository) GetFormTraffic(ctx context.Context) (int64, int64, error) {
	var traffic struct {
		Visits      int64
		Submissions int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(visits), 0) as visits,
			COALESCE(SUM(submissions), 0) as submissions
		FROM lead_forms
		WHERE tenant_id = ? AND deleted_at IS NULL
	`, tenantID(ctx)).Scan(&traffic).Error

	return traffic.Visits, traffic.Submissions, err
}
