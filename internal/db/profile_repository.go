package db

import (
	"github.com/terraincognita07/ciclo/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

// Load returns the singleton profile row, creating it with defaults if a
// previous data wipe removed it.
func (repo *ProfileRepository) Load() (models.Profile, error) {
	profile := models.Profile{ID: models.SingletonID}
	if err := repo.database.Where(models.Profile{ID: models.SingletonID}).FirstOrCreate(&profile).Error; err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

func (repo *ProfileRepository) Save(profile *models.Profile) error {
	profile.ID = models.SingletonID
	return repo.database.Save(profile).Error
}
