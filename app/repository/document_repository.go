package repository

import (
	"github.com/stratushq/stratus/app/models"
	"gorm.io/gorm"
)

// documentRepository implements the DocumentRepository interface
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository instance
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

func (r *documentRepository) GetByUUID(uuid string) (*models.Document, error) {
	var doc models.Document
	if err := r.db.Where("uuid = ?", uuid).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) GetByProject(projectID uint) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *documentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Document{}, id).Error
}

// SumSizeByOrganization totals stored bytes across all of the organization's
// projects. Feeds the storage side of the usage stats.
func (r *documentRepository) SumSizeByOrganization(orgID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.Document{}).
		Joins("JOIN projects ON projects.id = documents.project_id").
		Where("projects.organization_id = ?", orgID).
		Select("COALESCE(SUM(documents.size), 0)").
		Scan(&total).Error
	return total, err
}
