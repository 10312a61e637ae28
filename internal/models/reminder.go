package models

import "time"

const (
	ReminderTypePill      = "pill"
	ReminderTypePeriod    = "period"
	ReminderTypeOvulation = "ovulation"
	ReminderTypeCustom    = "custom"

	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyCustom  = "custom"
)

type Reminder struct {
	ID             string `gorm:"primaryKey"`
	Type           string `gorm:"not null"`
	Title          string `gorm:"not null"`
	Time           string `gorm:"not null"`
	Frequency      string `gorm:"not null"`
	Enabled        bool   `gorm:"not null"`
	NotificationID string `gorm:"not null;default:''"`
	LastFiredOn    string `gorm:"not null;default:''"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
