package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is a file stored in object storage for a project, surfaced by the
// doc-repo and project-photos widgets. Size feeds the storage side of the
// organization's usage stats.
type Document struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UUID        string         `gorm:"uniqueIndex;type:varchar(36)" json:"uuid"`
	ProjectID   uint           `gorm:"index" json:"project_id"`
	FileName    string         `gorm:"type:varchar(255)" json:"file_name"`
	ContentType string         `gorm:"type:varchar(100)" json:"content_type"`
	Size        int64          `json:"size"`
	ObjectKey   string         `gorm:"type:varchar(500)" json:"-"`
	UploadedBy  uint           `gorm:"index" json:"uploaded_by"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns the public UUID used in download URLs.
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.UUID == "" {
		d.UUID = uuid.New().String()
	}
	return nil
}

// IsImage reports whether the document renders in the project-photos widget.
func (d *Document) IsImage() bool {
	switch d.ContentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}
