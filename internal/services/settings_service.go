package services

import (
	"time"

	"pathxpress/internal/models"
	"pathxpress/internal/redis"
	"pathxpress/internal/repository"
)

type SettingsService interface {
	// GetConfig returns the typed platform configuration, served from
	// the Redis cache when warm.
	GetConfig() (models.ServiceConfig, error)
	UpdateSetting(setting *models.ServiceSetting) error
	GetAll() ([]models.ServiceSetting, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	cache        *redis.Client
	cacheTTL     time.Duration
}

func NewSettingsService(settingsRepo repository.SettingsRepository, cache *redis.Client, cacheTTL time.Duration) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, cache: cache, cacheTTL: cacheTTL}
}

func (s *settingsService) GetConfig() (models.ServiceConfig, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetServiceConfig(); err == nil {
			return *cached, nil
		}
	}

	settings, err := s.settingsRepo.GetAll()
	if err != nil {
		return models.ServiceConfig{}, err
	}

	cfg := models.DefaultServiceConfig()
	for _, setting := range settings {
		switch setting.SettingName {
		case models.SettingCODFeePercent:
			cfg.CODFeePercent = setting.NumericValue
		case models.SettingCODMinFee:
			cfg.CODMinFee = setting.NumericValue
		case models.SettingCODMaxFee:
			cfg.CODMaxFee = setting.NumericValue
		case models.SettingVolumetricDivisor:
			if setting.NumericValue > 0 {
				cfg.VolumetricDivisor = setting.NumericValue
			}
		case models.SettingSDDCutoff:
			if setting.TextValue != "" {
				cfg.SDDCutoff = setting.TextValue
			}
		case models.SettingDefaultTaxPercent:
			cfg.DefaultTaxPercent = setting.NumericValue
		}
	}

	if s.cache != nil {
		s.cache.SetServiceConfig(&cfg, s.cacheTTL)
	}
	return cfg, nil
}

func (s *settingsService) UpdateSetting(setting *models.ServiceSetting) error {
	if err := s.settingsRepo.Upsert(setting); err != nil {
		return err
	}
	if s.cache != nil {
		return s.cache.InvalidateServiceConfig()
	}
	return nil
}

func (s *settingsService) GetAll() ([]models.ServiceSetting, error) {
	return s.settingsRepo.GetAll()
}
