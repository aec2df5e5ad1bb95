package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pipeline represents a sales pipeline owned by a tenant
type Pipeline struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant  `gorm:"foreignKey:TenantID" json:"-"`
	Stages []Stage `gorm:"foreignKey:PipelineID" json:"stages,omitempty"`
}

// BeforeCreate generates a UUID before creating a new pipeline
func (p *Pipeline) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Pipeline model
func (Pipeline) TableName() string {
	return "pipelines"
}

// Stage represents a single column of a pipeline board
type Stage struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	PipelineID uuid.UUID      `gorm:"type:uuid;not null;index" json:"pipeline_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Color      string         `gorm:"size:50" json:"color"`
	Order      int            `gorm:"column:order;not null;default:0" json:"order"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Pipeline Pipeline `gorm:"foreignKey:PipelineID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stage
func (s *Stage) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Stage model
func (Stage) TableName() string {
	return "pipeline_stages"
}

// DefaultStage describes one stage of the default pipeline layout
type DefaultStage struct {
	Name  string
	Color string
}

// DefaultPipelineName is the name given to the auto-provisioned pipeline.
const DefaultPipelineName = "Main Pipeline"

// DefaultStages returns the canonical stage layout for new tenants.
// Order in the slice is the board order.
func DefaultStages() []DefaultStage {
	return []DefaultStage{
		{Name: "Enquiry", Color: "#818cf8"},
		{Name: "Contacted", Color: "#fbbf24"},
		{Name: "Qualified", Color: "#60a5fa"},
		{Name: "Quotation Sent", Color: "#c084fc"},
		{Name: "Payment Done", Color: "#4ade80"},
	}
}
