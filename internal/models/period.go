package models

import "time"

// Period rows store dates as YYYY-MM-DD text; EndDate is nil while the period is ongoing.
type Period struct {
	ID        string  `gorm:"primaryKey"`
	StartDate string  `gorm:"not null;index"`
	EndDate   *string `gorm:"index"`
	Flow      string  `gorm:"not null;default:''"`
	Notes     string  `gorm:"not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
