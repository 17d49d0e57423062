package repository

import (
	"github.com/stratushq/stratus/app/models"
	"gorm.io/gorm"
)

// settingRepository implements the SettingRepository interface
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository instance
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// Get returns the in-memory application settings, loading them on first use.
func (r *settingRepository) Get() (*models.AppSettings, error) {
	settings := models.GetAppSettings()
	if settings == nil {
		if err := models.LoadSettings(r.db); err != nil {
			return nil, err
		}
		settings = models.GetAppSettings()
	}
	return settings, nil
}

// Save persists the settings and refreshes the in-memory copy.
func (r *settingRepository) Save(settings *models.AppSettings) error {
	return models.SaveSettings(r.db, settings)
}

// GetValue reads a single raw setting value by key.
func (r *settingRepository) GetValue(key string) (string, error) {
	var setting models.Setting
	if err := r.db.Where("setting_key = ?", key).First(&setting).Error; err != nil {
		return "", err
	}
	return setting.Value, nil
}

// SetValue upserts a single raw setting value by key.
func (r *settingRepository) SetValue(key, value string) error {
	var setting models.Setting
	err := r.db.Where("setting_key = ?", key).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		setting = models.Setting{Key: key, Value: value, Type: "string"}
		return r.db.Create(&setting).Error
	}
	if err != nil {
		return err
	}
	setting.Value = value
	return r.db.Save(&setting).Error
}
