package db

import (
	"github.com/terraincognita07/ciclo/internal/models"
	"gorm.io/gorm"
)

type ReminderRepository struct {
	database *gorm.DB
}

func NewReminderRepository(database *gorm.DB) *ReminderRepository {
	return &ReminderRepository{database: database}
}

func (repo *ReminderRepository) ListAll() ([]models.Reminder, error) {
	reminders := make([]models.Reminder, 0)
	if err := repo.database.Order("time ASC, created_at ASC, id ASC").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (repo *ReminderRepository) ListEnabled() ([]models.Reminder, error) {
	reminders := make([]models.Reminder, 0)
	if err := repo.database.Where("enabled = ?", true).Order("time ASC, id ASC").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (repo *ReminderRepository) FindByID(id string) (models.Reminder, bool, error) {
	reminder := models.Reminder{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&reminder)
	if result.Error != nil {
		return models.Reminder{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Reminder{}, false, nil
	}
	return reminder, true, nil
}

func (repo *ReminderRepository) Create(reminder *models.Reminder) error {
	return repo.database.Create(reminder).Error
}

func (repo *ReminderRepository) Save(reminder *models.Reminder) error {
	return repo.database.Save(reminder).Error
}

func (repo *ReminderRepository) MarkFired(id string, firedOn string, disable bool) error {
	updates := map[string]any{"last_fired_on": firedOn}
	if disable {
		updates["enabled"] = false
	}
	return repo.database.Model(&models.Reminder{}).Where("id = ?", id).Updates(updates).Error
}

func (repo *ReminderRepository) Delete(id string) (bool, error) {
	result := repo.database.Where("id = ?", id).Delete(&models.Reminder{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func replaceReminders(tx *gorm.DB, reminders []models.Reminder) error {
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Reminder{}).Error; err != nil {
		return err
	}
	if len(reminders) == 0 {
		return nil
	}
	return tx.Create(&reminders).Error
}
