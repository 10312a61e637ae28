package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

// Profile is a single-row table. Zero average lengths mean "compute from history".
type Profile struct {
	ID                  uint    `gorm:"primaryKey"`
	Name                string  `gorm:"not null;default:''"`
	Age                 int     `gorm:"not null;default:0"`
	Weight              float64 `gorm:"not null;default:0"`
	Height              float64 `gorm:"not null;default:0"`
	LastPeriodDate      *string
	AverageCycleLength  int  `gorm:"not null;default:0"`
	AveragePeriodLength int  `gorm:"not null;default:0"`
	OnboardingCompleted bool `gorm:"not null"`
	UpdatedAt           time.Time
}

func (Profile) TableName() string {
	return "profile"
}
