package models

import (
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	ORG_ROLE_OWNER  = "owner"
	ORG_ROLE_ADMIN  = "admin"
	ORG_ROLE_MEMBER = "member"
)

// Organization is the tenant boundary. Every project, member and usage
// counter is scoped to exactly one organization.
type Organization struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Slug           string         `gorm:"uniqueIndex;type:varchar(150)" json:"slug" validate:"required,min=2,max=150"`
	Plan           string         `gorm:"type:varchar(50);default:'starter'" json:"plan"`
	OwnerID        uint           `gorm:"index" json:"owner_id"`
	AIRequestsUsed int64          `gorm:"default:0" json:"ai_requests_used"`
	WidgetSaves    int64          `gorm:"default:0" json:"widget_saves"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Organization) Validate() error {
	v := validator.New()

	return v.Struct(o)
}

// OrganizationMember links a user to an organization with a role.
type OrganizationMember struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganizationID uint      `gorm:"index:org_user,unique" json:"organization_id"`
	UserID         uint      `gorm:"index:org_user,unique" json:"user_id"`
	Role           string    `gorm:"type:varchar(50);default:'member'" json:"role" validate:"oneof=owner admin member"`
	InvitedBy      uint      `json:"invited_by"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CanManage reports whether the member may administer organization settings,
// billing and membership.
func (m *OrganizationMember) CanManage() bool {
	return m.Role == ORG_ROLE_OWNER || m.Role == ORG_ROLE_ADMIN
}

// MakeSlug turns an organization name into a URL-safe slug.
func MakeSlug(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "workspace"
	}
	return slug
}
