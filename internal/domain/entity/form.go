package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leadhive/leadhive-api/internal/domain/enum"
)

// FormField describes one input of a lead-capture form.
// Fields are stored as a JSON array on the form row.
type FormField struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Type        enum.FieldType `json:"type"`
	Required    bool           `json:"required"`
	Placeholder string         `json:"placeholder,omitempty"`
	Options     []string       `json:"options,omitempty"`
}

// Form represents a lead-capture form owned by a tenant
type Form struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Fields      []FormField    `gorm:"type:jsonb;serializer:json" json:"fields"`
	Visits      int            `gorm:"not null;default:0" json:"visits"`
	Submissions int            `gorm:"not null;default:0" json:"submissions"`
	JotformID   *string        `gorm:"size:100;index" json:"jotform_id,omitempty"`
	JotformURL  *string        `gorm:"size:255" json:"jotform_url,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new form
func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Form model
func (Form) TableName() string {
	return "lead_forms"
}
