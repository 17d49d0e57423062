package repository

import (
	"errors"

	"github.com/stratushq/stratus/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dashboardRepository implements the DashboardRepository interface
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository instance
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// GetWidgets returns the stored widget set for a project. A nil slice means
// no configuration row exists yet; an empty non-nil slice means the project
// is configured with zero widgets.
func (r *dashboardRepository) GetWidgets(projectID uint) ([]string, error) {
	var dashboard models.Dashboard
	err := r.db.Where("project_id = ?", projectID).First(&dashboard).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if dashboard.Widgets == nil {
		return []string{}, nil
	}
	return []string(dashboard.Widgets), nil
}

// Upsert writes the whole widget set in a single insert-or-update keyed by
// project_id, so concurrent saves cannot interleave a read and a stale write.
func (r *dashboardRepository) Upsert(projectID uint, widgets []string) error {
	if widgets == nil {
		widgets = []string{}
	}
	dashboard := models.Dashboard{
		ProjectID: projectID,
		Widgets:   models.WidgetList(widgets),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"widgets", "updated_at"}),
	}).Create(&dashboard).Error
}

// Exists reports whether a configuration row exists for the project.
func (r *dashboardRepository) Exists(projectID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Dashboard{}).Where("project_id = ?", projectID).Count(&count).Error
	return count > 0, err
}

// Delete removes the configuration row for a project.
func (r *dashboardRepository) Delete(projectID uint) error {
	return r.db.Where("project_id = ?", projectID).Delete(&models.Dashboard{}).Error
}
