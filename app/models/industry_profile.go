package models

import "time"

// IndustryProfile records the industry selected for a project. One row per
// project; used when (re)applying industry default widgets.
type IndustryProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex;not null" json:"project_id"`
	Industry  string    `gorm:"type:varchar(50);default:'general'" json:"industry"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
