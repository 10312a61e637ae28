package db

import (
	"github.com/terraincognita07/ciclo/internal/models"
	"gorm.io/gorm"
)

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

func (repo *SettingsRepository) Load() (models.Settings, error) {
	settings := models.DefaultSettings()
	if err := repo.database.Where(models.Settings{ID: models.SingletonID}).Attrs(models.DefaultSettings()).FirstOrCreate(&settings).Error; err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (repo *SettingsRepository) Save(settings *models.Settings) error {
	settings.ID = models.SingletonID
	return repo.database.Save(settings).Error
}
