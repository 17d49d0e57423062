package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PROJECT_STATUS_ACTIVE   = "active"
	PROJECT_STATUS_ARCHIVED = "archived"
)

type Project struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UUID           string         `gorm:"uniqueIndex;type:varchar(36)" json:"uuid"`
	OrganizationID uint           `gorm:"index" json:"organization_id"`
	Name           string         `gorm:"type:varchar(200)" json:"name" validate:"required,min=2,max=200"`
	Description    string         `gorm:"type:text" json:"description" validate:"max=2000"`
	Industry       string         `gorm:"type:varchar(50);default:'general'" json:"industry"`
	Status         string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active archived"`
	CreatedBy      uint           `gorm:"index" json:"created_by"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Project) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// BeforeCreate assigns the public UUID used in URLs and the v1 API.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}
