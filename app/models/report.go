package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	REPORT_KIND_STATUS_SUMMARY  = "status_summary"
	REPORT_KIND_MEETING_MINUTES = "meeting_minutes"
	REPORT_KIND_ACTION_ITEMS    = "action_items"
)

// Report is one AI-drafted document for a project: the raw source text the
// user supplied and the structured draft the assist endpoint returned.
type Report struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index" json:"project_id"`
	Kind        string         `gorm:"type:varchar(50)" json:"kind"`
	SourceText  string         `gorm:"type:text" json:"source_text"`
	Draft       string         `gorm:"type:text" json:"draft"`
	RequestedBy uint           `gorm:"index" json:"requested_by"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsValidReportKind reports whether kind names a supported drafting mode.
func IsValidReportKind(kind string) bool {
	switch kind {
	case REPORT_KIND_STATUS_SUMMARY, REPORT_KIND_MEETING_MINUTES, REPORT_KIND_ACTION_ITEMS:
		return true
	default:
		return false
	}
}
