package models

import "time"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"

	SecurityTypePIN       = "pin"
	SecurityTypeBiometric = "biometric"

	DefaultLanguage = "es"
)

const SingletonID = 1

type Settings struct {
	ID                   uint   `gorm:"primaryKey"`
	Theme                string `gorm:"not null;default:light"`
	SecurityEnabled      bool   `gorm:"not null"`
	SecurityType         string `gorm:"not null;default:''"`
	PINHash              string `gorm:"column:pin_hash;not null;default:''"`
	NotificationsEnabled bool   `gorm:"not null"`
	Language             string `gorm:"not null;default:es"`
	UpdatedAt            time.Time
}

func (Settings) TableName() string {
	return "settings"
}

func DefaultSettings() Settings {
	return Settings{
		ID:                   SingletonID,
		Theme:                ThemeLight,
		NotificationsEnabled: true,
		Language:             DefaultLanguage,
	}
}
