package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/ciclo/internal/i18n"
	"github.com/terraincognita07/ciclo/internal/models"
)

var (
	ErrSettingsLoadFailed = errors.New("load settings failed")
	ErrSettingsSaveFailed = errors.New("save settings failed")
	ErrInvalidTheme       = errors.New("invalid theme")
	ErrInvalidLanguage    = errors.New("invalid language")
	ErrClearDataFailed    = errors.New("clear data failed")
)

type SettingsRepository interface {
	Load() (models.Settings, error)
	Save(settings *models.Settings) error
}

type ProfileRepository interface {
	Load() (models.Profile, error)
	Save(profile *models.Profile) error
}

type DataWiper interface {
	ClearAllData() error
}

type SettingsUpdate struct {
	Theme                *string
	NotificationsEnabled *bool
	Language             *string
}

type SettingsService struct {
	settings SettingsRepository
	profile  ProfileRepository
	data     DataWiper
}

func NewSettingsService(settings SettingsRepository, profile ProfileRepository, data DataWiper) *SettingsService {
	return &SettingsService{
		settings: settings,
		profile:  profile,
		data:     data,
	}
}

func (service *SettingsService) Load() (models.Settings, error) {
	settings, err := service.settings.Load()
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", ErrSettingsLoadFailed, err)
	}
	return settings, nil
}

func (service *SettingsService) Update(update SettingsUpdate) (models.Settings, error) {
	settings, err := service.Load()
	if err != nil {
		return models.Settings{}, err
	}

	if update.Theme != nil {
		theme := strings.ToLower(strings.TrimSpace(*update.Theme))
		switch theme {
		case models.ThemeLight, models.ThemeDark, models.ThemeAuto:
			settings.Theme = theme
		default:
			return models.Settings{}, fmt.Errorf("%w: %q", ErrInvalidTheme, *update.Theme)
		}
	}
	if update.Language != nil {
		language := strings.ToLower(strings.TrimSpace(*update.Language))
		switch language {
		case i18n.LangES, i18n.LangEN:
			settings.Language = language
		default:
			return models.Settings{}, fmt.Errorf("%w: %q", ErrInvalidLanguage, *update.Language)
		}
	}
	if update.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *update.NotificationsEnabled
	}

	if err := service.settings.Save(&settings); err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", ErrSettingsSaveFailed, err)
	}
	return settings, nil
}

// ClearAllData removes every period, log and reminder and resets profile and
// settings to their defaults.
func (service *SettingsService) ClearAllData() error {
	if err := service.data.ClearAllData(); err != nil {
		return fmt.Errorf("%w: %v", ErrClearDataFailed, err)
	}
	return nil
}
