package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lead statuses used when no pipeline stage drives the status value.
const (
	LeadStatusNew       = "New"
	LeadStatusContacted = "Contacted"
	LeadStatusQualified = "Qualified"
	LeadStatusWon       = "Payment Done"
)

// Lead represents a sales lead in the CRM
type Lead struct {
	ID                uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TenantID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name              string            `gorm:"size:255;not null" json:"name"`
	Email             *string           `gorm:"size:255" json:"email,omitempty"`
	Phone             *string           `gorm:"size:50" json:"phone,omitempty"`
	Company           *string           `gorm:"size:255" json:"company,omitempty"`
	Source            string            `gorm:"size:255" json:"source"`
	Status            string            `gorm:"size:100;default:'New'" json:"status"`
	Priority          *string           `gorm:"size:50" json:"priority,omitempty"`
	Budget            *float64          `json:"budget,omitempty"`
	InterestedService *string           `gorm:"size:255" json:"interested_service,omitempty"`
	Notes             *string           `gorm:"type:text" json:"notes,omitempty"`
	AssignedTo        *uuid.UUID        `gorm:"type:uuid;index" json:"assigned_to,omitempty"`
	PipelineID        *uuid.UUID        `gorm:"type:uuid;index" json:"pipeline_id,omitempty"`
	StageID           *uuid.UUID        `gorm:"type:uuid;index" json:"stage_id,omitempty"`
	NextFollowUp      *time.Time        `json:"next_follow_up,omitempty"`
	FormData          datatypes.JSONMap `gorm:"type:jsonb" json:"form_data,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	DeletedAt         gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Tenant   Tenant    `gorm:"foreignKey:TenantID" json:"-"`
	Assignee *User     `gorm:"foreignKey:AssignedTo" json:"-"`
	Pipeline *Pipeline `gorm:"foreignKey:PipelineID" json:"-"`
	Stage    *Stage    `gorm:"foreignKey:StageID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new lead
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Lead model
func (Lead) TableName() string {
	return "leads"
}
