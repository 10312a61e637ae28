package db

import (
	"errors"

	"github.com/terraincognita07/ciclo/internal/models"
	"gorm.io/gorm"
)

type PeriodRepository struct {
	database *gorm.DB
}

func NewPeriodRepository(database *gorm.DB) *PeriodRepository {
	return &PeriodRepository{database: database}
}

func (repo *PeriodRepository) ListAll() ([]models.Period, error) {
	periods := make([]models.Period, 0)
	if err := repo.database.Order("start_date ASC, id ASC").Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (repo *PeriodRepository) FindByID(id string) (models.Period, bool, error) {
	period := models.Period{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&period)
	if result.Error != nil {
		return models.Period{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Period{}, false, nil
	}
	return period, true, nil
}

func (repo *PeriodRepository) Create(period *models.Period) error {
	if period.ID == "" {
		return errors.New("period id is required")
	}
	return repo.database.Create(period).Error
}

func (repo *PeriodRepository) Save(period *models.Period) error {
	return repo.database.Save(period).Error
}

func (repo *PeriodRepository) Delete(id string) (bool, error) {
	result := repo.database.Where("id = ?", id).Delete(&models.Period{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func replacePeriods(tx *gorm.DB, periods []models.Period) error {
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Period{}).Error; err != nil {
		return err
	}
	if len(periods) == 0 {
		return nil
	}
	return tx.Create(&periods).Error
}
