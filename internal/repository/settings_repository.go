package repository

import (
	"pathxpress/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	GetAll() ([]models.ServiceSetting, error)
	Get(settingName string) (*models.ServiceSetting, error)
	Upsert(setting *models.ServiceSetting) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetAll() ([]models.ServiceSetting, error) {
	var settings []models.ServiceSetting
	err := r.db.Where("is_active = ?", true).Find(&settings).Error
	return settings, err
}

func (r *settingsRepository) Get(settingName string) (*models.ServiceSetting, error) {
	var setting models.ServiceSetting
	err := r.db.Where("setting_name = ? AND is_active = ?", settingName, true).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingsRepository) Upsert(setting *models.ServiceSetting) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"numeric_value", "text_value", "is_active", "updated_by", "updated_at"}),
	}).Create(setting).Error
}
