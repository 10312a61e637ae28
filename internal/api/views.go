package api

import (
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/services"
)

type reminderView struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	TypeLabel      string  `json:"typeLabel"`
	Title          string  `json:"title"`
	Time           string  `json:"time"`
	Frequency      string  `json:"frequency"`
	FrequencyLabel string  `json:"frequencyLabel"`
	Enabled        bool    `json:"enabled"`
	NotificationID string  `json:"notificationId,omitempty"`
	NextTrigger    *string `json:"nextTrigger,omitempty"`
}

func (handler *Handler) reminderViewFrom(language string, reminder models.Reminder, now time.Time) reminderView {
	view := reminderView{
		ID:             reminder.ID,
		Type:           reminder.Type,
		TypeLabel:      handler.i18n.Translate(language, "reminder.type."+reminder.Type),
		Title:          reminder.Title,
		Time:           reminder.Time,
		Frequency:      reminder.Frequency,
		FrequencyLabel: handler.i18n.Translate(language, "reminder.frequency."+reminder.Frequency),
		Enabled:        reminder.Enabled,
		NotificationID: reminder.NotificationID,
	}
	if reminder.Enabled {
		if next, err := services.NextTrigger(reminder, now); err == nil {
			formatted := next.Format(time.RFC3339)
			view.NextTrigger = &formatted
		}
	}
	return view
}

// settingsView is the public form of the settings row; the PIN hash stays server side.
type settingsView struct {
	Theme                string `json:"theme"`
	SecurityEnabled      bool   `json:"securityEnabled"`
	SecurityType         string `json:"securityType,omitempty"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	Language             string `json:"language"`
}

func settingsViewFrom(settings models.Settings) settingsView {
	return settingsView{
		Theme:                settings.Theme,
		SecurityEnabled:      settings.SecurityEnabled,
		SecurityType:         settings.SecurityType,
		NotificationsEnabled: settings.NotificationsEnabled,
		Language:             settings.Language,
	}
}

type profileView struct {
	Name                string  `json:"name"`
	Age                 int     `json:"age"`
	Weight              float64 `json:"weight"`
	Height              float64 `json:"height"`
	LastPeriodDate      string  `json:"lastPeriodDate,omitempty"`
	AverageCycleLength  int     `json:"averageCycleLength"`
	AveragePeriodLength int     `json:"averagePeriodLength"`
	OnboardingCompleted bool    `json:"onboardingCompleted"`
}

func profileViewFrom(profile models.Profile) profileView {
	view := profileView{
		Name:                profile.Name,
		Age:                 profile.Age,
		Weight:              profile.Weight,
		Height:              profile.Height,
		AverageCycleLength:  profile.AverageCycleLength,
		AveragePeriodLength: profile.AveragePeriodLength,
		OnboardingCompleted: profile.OnboardingCompleted,
	}
	if profile.LastPeriodDate != nil {
		view.LastPeriodDate = *profile.LastPeriodDate
	}
	return view
}
