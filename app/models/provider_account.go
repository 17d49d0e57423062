package models

import "time"

const (
	PROVIDER_KIND_CRM           = "crm"
	PROVIDER_KIND_COMMUNICATION = "communication"
	PROVIDER_KIND_STORAGE       = "storage"
)

// ProviderAccount stores an external OAuth identity (CRM, communication or
// file-storage provider) linked to a user. Tokens are opaque to this service;
// the integration endpoints themselves are externally owned.
type ProviderAccount struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"index" json:"user_id"`
	Provider       string     `gorm:"index:provider_uid,unique;type:varchar(50)" json:"provider"`
	ProviderUserID string     `gorm:"index:provider_uid,unique;type:varchar(191)" json:"provider_user_id"`
	Kind           string     `gorm:"type:varchar(50)" json:"kind"`
	AccessToken    string     `gorm:"type:text" json:"-"`
	RefreshToken   string     `gorm:"type:text" json:"-"`
	ExpiresAt      *time.Time `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// KindForProvider classifies the Goth provider names this service registers.
func KindForProvider(provider string) string {
	switch provider {
	case "salesforce":
		return PROVIDER_KIND_CRM
	case "slack":
		return PROVIDER_KIND_COMMUNICATION
	case "dropbox":
		return PROVIDER_KIND_STORAGE
	default:
		return ""
	}
}
