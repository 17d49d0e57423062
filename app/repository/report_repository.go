package repository

import (
	"time"

	"github.com/stratushq/stratus/app/models"
	"gorm.io/gorm"
)

// reportRepository implements the ReportRepository interface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) GetByID(id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) GetByProject(projectID uint, offset, limit int) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Where("project_id = ?", projectID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&reports).Error
	return reports, err
}

func (r *reportRepository) Delete(id uint) error {
	return r.db.Delete(&models.Report{}, id).Error
}

// CountByOrganizationThisMonth counts AI drafts across all of the
// organization's projects since the start of the current calendar month.
// Feeds the AI-request side of the usage stats.
func (r *reportRepository) CountByOrganizationThisMonth(orgID uint) (int64, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var count int64
	err := r.db.Model(&models.Report{}).
		Joins("JOIN projects ON projects.id = reports.project_id").
		Where("projects.organization_id = ? AND reports.created_at >= ?", orgID, monthStart).
		Count(&count).Error
	return count, err
}
