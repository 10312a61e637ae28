package db

import "gorm.io/gorm"

type Repositories struct {
	Periods   *PeriodRepository
	DailyLogs *DailyLogRepository
	Reminders *ReminderRepository
	Profile   *ProfileRepository
	Settings  *SettingsRepository
	Data      *DataRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Periods:   NewPeriodRepository(database),
		DailyLogs: NewDailyLogRepository(database),
		Reminders: NewReminderRepository(database),
		Profile:   NewProfileRepository(database),
		Settings:  NewSettingsRepository(database),
		Data:      NewDataRepository(database),
	}
}
