package repository

import (
	"github.com/stratushq/stratus/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, *models.UserSettings, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// OrganizationRepository defines the interface for tenant-related operations
type OrganizationRepository interface {
	Create(org *models.Organization) error
	GetByID(id uint) (*models.Organization, error)
	GetBySlug(slug string) (*models.Organization, error)
	GetForUser(userID uint) (*models.Organization, *models.OrganizationMember, error)
	Update(org *models.Organization) error
	UpdatePlan(id uint, plan string) error
	AddMember(member *models.OrganizationMember) error
	RemoveMember(orgID, userID uint) error
	GetMember(orgID, userID uint) (*models.OrganizationMember, error)
	ListMembers(orgID uint) ([]models.OrganizationMember, error)
	CountMembers(orgID uint) (int64, error)
	SlugExists(slug string) (bool, error)
}

// ProjectRepository defines the interface for project-related operations
type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(id uint) (*models.Project, error)
	GetByUUID(uuid string) (*models.Project, error)
	GetByOrganization(orgID uint, offset, limit int) ([]models.Project, error)
	Update(project *models.Project) error
	Delete(id uint) error
	CountByOrganization(orgID uint) (int64, error)
	SetIndustry(projectID uint, industry string) error
	GetIndustry(projectID uint) (string, error)
}

// DashboardRepository persists the per-project widget configuration.
// One row per project; writes are atomic upserts keyed by project_id.
type DashboardRepository interface {
	// GetWidgets returns nil (not an empty list) when no configuration row
	// exists for the project yet.
	GetWidgets(projectID uint) ([]string, error)
	Upsert(projectID uint, widgets []string) error
	Exists(projectID uint) (bool, error)
	Delete(projectID uint) error
}

// ReportRepository defines the interface for AI report draft operations
type ReportRepository interface {
	Create(report *models.Report) error
	GetByID(id uint) (*models.Report, error)
	GetByProject(projectID uint, offset, limit int) ([]models.Report, error)
	Delete(id uint) error
	CountByOrganizationThisMonth(orgID uint) (int64, error)
}

// DocumentRepository defines the interface for stored-file metadata
type DocumentRepository interface {
	Create(doc *models.Document) error
	GetByUUID(uuid string) (*models.Document, error)
	GetByProject(projectID uint) ([]models.Document, error)
	Delete(id uint) error
	SumSizeByOrganization(orgID uint) (int64, error)
}

// SettingRepository defines the interface for application settings
type SettingRepository interface {
	Get() (*models.AppSettings, error)
	Save(settings *models.AppSettings) error
	GetValue(key string) (string, error)
	SetValue(key, value string) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Organization OrganizationRepository
	Project      ProjectRepository
	Dashboard    DashboardRepository
	Report       ReportRepository
	Document     DocumentRepository
	Setting      SettingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Organization: NewOrganizationRepository(db),
		Project:      NewProjectRepository(db),
		Dashboard:    NewDashboardRepository(db),
		Report:       NewReportRepository(db),
		Document:     NewDocumentRepository(db),
		Setting:      NewSettingRepository(db),
	}
}
