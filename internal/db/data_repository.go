package db

import (
	"github.com/terraincognita07/ciclo/internal/models"
	"gorm.io/gorm"
)

// DataRepository holds operations that span several tables and must be atomic.
type DataRepository struct {
	database *gorm.DB
}

func NewDataRepository(database *gorm.DB) *DataRepository {
	return &DataRepository{database: database}
}

// ClearAllData wipes every list and resets profile and settings to defaults.
func (repo *DataRepository) ClearAllData() error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := replacePeriods(tx, nil); err != nil {
			return err
		}
		if err := replaceDailyLogs(tx, nil); err != nil {
			return err
		}
		if err := replaceReminders(tx, nil); err != nil {
			return err
		}
		profile := models.Profile{ID: models.SingletonID}
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}
		settings := models.DefaultSettings()
		return tx.Save(&settings).Error
	})
}

// ReplaceAll swaps the whole dataset for snapshot in one transaction.
func (repo *DataRepository) ReplaceAll(snapshot models.DataSnapshot) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := replacePeriods(tx, snapshot.Periods); err != nil {
			return err
		}
		if err := replaceDailyLogs(tx, snapshot.DailyLogs); err != nil {
			return err
		}
		if err := replaceReminders(tx, snapshot.Reminders); err != nil {
			return err
		}
		profile := snapshot.Profile
		profile.ID = models.SingletonID
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}
		settings := snapshot.Settings
		settings.ID = models.SingletonID
		return tx.Save(&settings).Error
	})
}

// CompleteOnboarding stores profile and, when the period history is empty,
// seeds it with seed.
func (repo *DataRepository) CompleteOnboarding(profile models.Profile, seed *models.Period, notificationsEnabled bool) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if seed != nil {
			var count int64
			if err := tx.Model(&models.Period{}).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				if err := tx.Create(seed).Error; err != nil {
					return err
				}
			}
		}

		profile.ID = models.SingletonID
		profile.OnboardingCompleted = true
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}

		return tx.Model(&models.Settings{}).
			Where("id = ?", models.SingletonID).
			Update("notifications_enabled", notificationsEnabled).Error
	})
}
