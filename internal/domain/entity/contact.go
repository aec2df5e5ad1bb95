package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Contact represents an address-book entry that may later become a lead
type Contact struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID    *uuid.UUID        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Email     *string           `gorm:"size:255" json:"email,omitempty"`
	Phone     *string           `gorm:"size:50" json:"phone,omitempty"`
	Company   *string           `gorm:"size:255" json:"company,omitempty"`
	Position  *string           `gorm:"size:255" json:"position,omitempty"`
	Notes     *string           `gorm:"type:text" json:"notes,omitempty"`
	Source    string            `gorm:"size:255" json:"source"`
	FormID    *uuid.UUID        `gorm:"type:uuid;index" json:"form_id,omitempty"`
	FormData  datatypes.JSONMap `gorm:"type:jsonb" json:"form_data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`
	Form   *Form  `gorm:"foreignKey:FormID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new contact
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Contact model
func (Contact) TableName() string {
	return "contacts"
}
