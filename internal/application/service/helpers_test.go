package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/leadhive/leadhive-api/internal/application/service"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	infrarepo "github.com/leadhive/leadhive-api/internal/infrastructure/repository"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.Tenant{},
		&entity.TenantMembership{},
		&entity.User{},
		&entity.Pipeline{},
		&entity.Stage{},
		&entity.Lead{},
		&entity.Contact{},
		&entity.Form{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// eventRecorder captures broadcast events for assertions
type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) Broadcast(_ uuid.UUID, event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *eventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// testEnv wires the service layer against an in-memory database under a
// single tenant context
type testEnv struct {
	db        *gorm.DB
	ctx       context.Context
	tenantID  uuid.UUID
	notifier  *eventRecorder
	pipelines *service.PipelineService
	leads     *service.LeadService
	contacts  *service.ContactService
	forms     *service.FormService
	dashboard *service.DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	tenantID := uuid.New()
	notifier := &eventRecorder{}

	pipelineRepo := infrarepo.NewPipelineRepository(db)
	stageRepo := infrarepo.NewStageRepository(db)
	leadRepo := infrarepo.NewLeadRepository(db)
	contactRepo := infrarepo.NewContactRepository(db)
	formRepo := infrarepo.NewFormRepository(db)
	analyticsRepo := infrarepo.NewAnalyticsRepository(db)

	pipelines := service.NewPipelineService(pipelineRepo, stageRepo, notifier)
	leads := service.NewLeadService(leadRepo, stageRepo, pipelines, notifier)
	contacts := service.NewContactService(contactRepo, leadRepo, formRepo, notifier)
	forms := service.NewFormService(formRepo, contacts, notifier)

	return &testEnv{
		db:        db,
		ctx:       infrarepo.WithTenant(context.Background(), tenantID),
		tenantID:  tenantID,
		notifier:  notifier,
		pipelines: pipelines,
		leads:     leads,
		contacts:  contacts,
		forms:     forms,
		dashboard: service.NewDashboardService(analyticsRepo),
	}
}

// tenantContext builds a context scoped to the given tenant
func tenantContext(t *testing.T, id uuid.UUID) context.Context {
	t.Helper()
	return infrarepo.WithTenant(context.Background(), id)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// containsEvent reports whether the recorder saw the given event at least once
func containsEvent(events []string, event string) bool {
	for _, e := range events {
		if e == event {
			return true
		}
	}
	return false
}
