package db

import (
	"github.com/terraincognita07/ciclo/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

func (repo *DailyLogRepository) ListAll() ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.Order("date ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListRange returns logs with from <= date <= to. Dates are YYYY-MM-DD text so
// lexical order matches calendar order.
func (repo *DailyLogRepository) ListRange(from string, to string) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) FindByDate(date string) (models.DailyLog, bool, error) {
	entry := models.DailyLog{}
	result := repo.database.Where("date = ?", date).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.DailyLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyLog{}, false, nil
	}
	return entry, true, nil
}

// Upsert inserts entry or overwrites every column of the row with the same date.
func (repo *DailyLogRepository) Upsert(entry *models.DailyLog) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"mood", "flow", "symptoms", "notes", "sexual_activity", "updated_at"}),
	}).Create(entry).Error
}

func (repo *DailyLogRepository) DeleteByDate(date string) (bool, error) {
	result := repo.database.Where("date = ?", date).Delete(&models.DailyLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func replaceDailyLogs(tx *gorm.DB, logs []models.DailyLog) error {
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.DailyLog{}).Error; err != nil {
		return err
	}
	if len(logs) == 0 {
		return nil
	}
	return tx.Create(&logs).Error
}
