package repository

import (
	"github.com/stratushq/stratus/app/models"
	"gorm.io/gorm"
)

// organizationRepository implements the OrganizationRepository interface
type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository instance
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

func (r *organizationRepository) GetByID(id uint) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetBySlug(slug string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// GetForUser returns the organization the user belongs to along with their
// membership. Users belong to exactly one organization.
func (r *organizationRepository) GetForUser(userID uint) (*models.Organization, *models.OrganizationMember, error) {
	var member models.OrganizationMember
	if err := r.db.Where("user_id = ?", userID).First(&member).Error; err != nil {
		return nil, nil, err
	}
	var org models.Organization
	if err := r.db.First(&org, member.OrganizationID).Error; err != nil {
		return nil, nil, err
	}
	return &org, &member, nil
}

func (r *organizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// UpdatePlan changes only the subscription plan column.
func (r *organizationRepository) UpdatePlan(id uint, plan string) error {
	return r.db.Model(&models.Organization{}).Where("id = ?", id).Update("plan", plan).Error
}

// AddMember inserts a new membership, or updates it when the struct carries
// an existing primary key (role changes reuse this path).
func (r *organizationRepository) AddMember(member *models.OrganizationMember) error {
	return r.db.Save(member).Error
}

func (r *organizationRepository) RemoveMember(orgID, userID uint) error {
	return r.db.Where("organization_id = ? AND user_id = ?", orgID, userID).
		Delete(&models.OrganizationMember{}).Error
}

func (r *organizationRepository) GetMember(orgID, userID uint) (*models.OrganizationMember, error) {
	var member models.OrganizationMember
	err := r.db.Where("organization_id = ? AND user_id = ?", orgID, userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *organizationRepository) ListMembers(orgID uint) ([]models.OrganizationMember, error) {
	var members []models.OrganizationMember
	err := r.db.Where("organization_id = ?", orgID).Order("created_at ASC").Find(&members).Error
	return members, err
}

func (r *organizationRepository) CountMembers(orgID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrganizationMember{}).Where("organization_id = ?", orgID).Count(&count).Error
	return count, err
}

func (r *organizationRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Organization{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
