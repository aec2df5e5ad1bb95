package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadhive/leadhive-api/internal/application/service"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
)

func TestGetDashboardStats(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)
	enquiry := pipeline.Stages[0]
	paymentDone := pipeline.Stages[4]

	seed := []struct {
		name   string
		status string
		stage  *entity.Stage
		budget *float64
		source string
	}{
		{"Alpha", entity.LeadStatusNew, &enquiry, floatPtr(1000), "Website"},
		{"Beta", entity.LeadStatusNew, &enquiry, floatPtr(2500), "Website"},
		{"Gamma", entity.LeadStatusWon, &paymentDone, floatPtr(4000), "Referral"},
		{"Delta", entity.LeadStatusContacted, nil, nil, ""},
	}
	for _, s := range seed {
		input := &service.CreateLeadInput{
			Name:   s.name,
			Status: s.status,
			Budget: s.budget,
			Source: s.source,
		}
		if s.stage != nil {
			input.PipelineID = &pipeline.ID
			input.StageID = &s.stage.ID
		}
		_, err := env.leads.CreateLead(env.ctx, input)
		require.NoError(t, err)
	}

	_, err = env.contacts.CreateContact(env.ctx, &service.CreateContactInput{
		Name:   "Standalone",
		Source: "Manual",
	})
	require.NoError(t, err)

	form := newEnquiryForm(t, env)
	_, err = env.forms.RecordVisit(context.Background(), form.ID)
	require.NoError(t, err)
	_, err = env.forms.Submit(context.Background(), form.ID, map[string]interface{}{
		form.Fields[0].ID: "Visitor",
	})
	require.NoError(t, err)

	stats, err := env.dashboard.GetDashboardStats(env.ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalLeads)
	assert.Equal(t, int64(2), stats.TotalContacts)
	assert.Equal(t, int64(4), stats.NewLeadsThisMonth)
	assert.InDelta(t, 25.0, stats.ConversionRate, 0.001)
	assert.InDelta(t, 7500.0, stats.PotentialRevenue, 0.001)
	assert.Equal(t, int64(1), stats.FormVisits)
	assert.Equal(t, int64(1), stats.FormSubmissions)

	// Leads without a source fall into the Unknown bucket
	sources := map[string]int64{}
	for _, p := range stats.SourceBreakdown {
		sources[p.Label] = p.Count
	}
	assert.Equal(t, int64(2), sources["Website"])
	assert.Equal(t, int64(1), sources["Referral"])
	assert.Equal(t, int64(1), sources["Unknown"])

	// Stage load comes back in board order including empty stages
	require.Len(t, stats.StageLoad, 5)
	assert.Equal(t, "Enquiry", stats.StageLoad[0].Stage)
	assert.Equal(t, int64(2), stats.StageLoad[0].Count)
	assert.Equal(t, "Payment Done", stats.StageLoad[4].Stage)
	assert.Equal(t, int64(1), stats.StageLoad[4].Count)
	assert.Equal(t, int64(0), stats.StageLoad[1].Count)
}

func TestDashboardStatsFilterBreakdownsByPipeline(t *testing.T) {
	env := newTestEnv(t)

	pipeline, err := env.pipelines.EnsureDefaultPipeline(env.ctx)
	require.NoError(t, err)
	other, err := env.pipelines.CreatePipeline(env.ctx, "Renewals")
	require.NoError(t, err)

	_, err = env.leads.CreateLead(env.ctx, &service.CreateLeadInput{
		Name:       "In Main",
		Source:     "Website",
		PipelineID: &pipeline.ID,
		StageID:    &pipeline.Stages[0].ID,
	})
	require.NoError(t, err)
	_, err = env.leads.CreateLead(env.ctx, &service.CreateLeadInput{
		Name:       "In Renewals",
		Source:     "Referral",
		PipelineID: &other.ID,
	})
	require.NoError(t, err)

	stats, err := env.dashboard.GetDashboardStats(env.ctx, &pipeline.ID)
	require.NoError(t, err)

	// Headline counters still cover the whole tenant
	assert.Equal(t, int64(2), stats.TotalLeads)

	sources := map[string]int64{}
	for _, p := range stats.SourceBreakdown {
		sources[p.Label] = p.Count
	}
	assert.Equal(t, int64(1), sources["Website"])
	assert.Zero(t, sources["Referral"])

	// Only the chosen pipeline's stages show up on the board chart
	require.Len(t, stats.StageLoad, len(pipeline.Stages))
	assert.Equal(t, "Enquiry", stats.StageLoad[0].Stage)
	assert.Equal(t, int64(1), stats.StageLoad[0].Count)
}

func TestDashboardStatsCountFollowUps(t *testing.T) {
	env := newTestEnv(t)

	overdue := time.Now().Add(-48 * time.Hour)
	soon := time.Now().Add(48 * time.Hour)
	farOff := time.Now().Add(30 * 24 * time.Hour)
	for _, s := range []struct {
		name string
		due  *time.Time
	}{
		{"Missed", &overdue},
		{"Due Soon", &soon},
		{"Far Off", &farOff},
		{"No Date", nil},
	} {
		_, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{
			Name:         s.name,
			NextFollowUp: s.due,
		})
		require.NoError(t, err)
	}

	stats, err := env.dashboard.GetDashboardStats(env.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.OverdueFollowUps)
	assert.Equal(t, int64(1), stats.UpcomingFollowUps)
}

func TestDashboardStatsAreTenantScoped(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.leads.CreateLead(env.ctx, &service.CreateLeadInput{Name: "Mine"})
	require.NoError(t, err)

	stats, err := env.dashboard.GetDashboardStats(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalLeads)
	assert.Zero(t, stats.TotalContacts)
}
