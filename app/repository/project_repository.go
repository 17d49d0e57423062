package repository

import (
	"errors"

	"github.com/stratushq/stratus/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// projectRepository implements the ProjectRepository interface
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) GetByUUID(uuid string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("uuid = ?", uuid).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) GetByOrganization(orgID uint, offset, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("organization_id = ?", orgID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete soft deletes a project by its ID
func (r *projectRepository) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}

func (r *projectRepository) CountByOrganization(orgID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("organization_id = ?", orgID).Count(&count).Error
	return count, err
}

// SetIndustry upserts the project's industry profile row (one per project).
func (r *projectRepository) SetIndustry(projectID uint, industry string) error {
	profile := models.IndustryProfile{ProjectID: projectID, Industry: industry}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"industry", "updated_at"}),
	}).Create(&profile).Error
}

// GetIndustry returns the recorded industry for a project, or "general" when
// no profile row exists.
func (r *projectRepository) GetIndustry(projectID uint) (string, error) {
	var profile models.IndustryProfile
	err := r.db.Where("project_id = ?", projectID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "general", nil
		}
		return "", err
	}
	return profile.Industry, nil
}
