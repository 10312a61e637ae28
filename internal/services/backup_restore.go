package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/i18n"
	"github.com/terraincognita07/ciclo/internal/models"
)

// RestoreBackup validates every record of backup and then replaces all stored
// data with it in one transaction. The first invalid record aborts the restore
// with a *cycle.RecordError and nothing is written. The current PIN lock is
// kept because backups never carry it.
func (service *ExportService) RestoreBackup(backup Backup, today cycle.Date) error {
	periodRows, err := restorePeriods(backup.Periods, today)
	if err != nil {
		return err
	}
	logs, err := restoreDailyLogs(backup.DailyLogs)
	if err != nil {
		return err
	}
	reminders, err := restoreReminders(backup.Reminders)
	if err != nil {
		return err
	}
	profile, err := restoreProfile(backup.Profile)
	if err != nil {
		return err
	}

	current, err := service.settings.Load()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsLoadFailed, err)
	}
	settings := restoreSettings(backup.Settings, current)

	snapshot := models.DataSnapshot{
		Periods:   periodRows,
		DailyLogs: logs,
		Reminders: reminders,
		Profile:   profile,
		Settings:  settings,
	}
	if err := service.data.ReplaceAll(snapshot); err != nil {
		return fmt.Errorf("%w: %v", ErrRestoreFailed, err)
	}
	return nil
}

func restorePeriods(records []BackupPeriod, today cycle.Date) ([]models.Period, error) {
	periods := make([]cycle.Period, 0, len(records))
	rows := make([]models.Period, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, record := range records {
		if strings.TrimSpace(record.ID) == "" {
			record.ID = newRecordID()
		}
		if _, duplicate := seen[record.ID]; duplicate {
			return nil, &cycle.RecordError{RecordID: record.ID, Field: "id", Value: record.ID, Err: ErrDuplicateRecordID}
		}
		seen[record.ID] = struct{}{}

		period, err := cycle.ParsePeriodRecord(record.PeriodRecord)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
		rows = append(rows, periodModelFrom(period, SanitizeText(record.Notes, maxNotesLength)))
	}

	slices.SortStableFunc(periods, func(a cycle.Period, b cycle.Period) int {
		return a.Start.Compare(b.Start)
	})
	if err := ValidatePeriodHistory(periods, today); err != nil {
		return nil, err
	}
	return rows, nil
}

func restoreDailyLogs(records []BackupDailyLog) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, record := range records {
		date, err := cycle.ParseDate(record.Date)
		if err != nil {
			return nil, &cycle.RecordError{RecordID: record.Date, Field: "date", Value: record.Date, Err: cycle.ErrInvalidDate}
		}
		key := date.String()
		if _, duplicate := seen[key]; duplicate {
			return nil, &cycle.RecordError{RecordID: key, Field: "date", Value: record.Date, Err: ErrDuplicateLogDate}
		}
		seen[key] = struct{}{}

		entry := models.DailyLog{Date: key, Symptoms: []string{}}
		symptoms := record.Symptoms
		input := DayLogInput{
			Mood:           &record.Mood,
			Flow:           &record.Flow,
			Symptoms:       &symptoms,
			Notes:          &record.Notes,
			SexualActivity: record.SexualActivity,
		}
		if err := applyDayLogInput(&entry, input); err != nil {
			return nil, &cycle.RecordError{RecordID: key, Field: "dailyLog", Err: err}
		}
		logs = append(logs, entry)
	}
	return logs, nil
}

func restoreReminders(records []BackupReminder) ([]models.Reminder, error) {
	reminders := make([]models.Reminder, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, record := range records {
		reminder := models.Reminder{ID: strings.TrimSpace(record.ID)}
		if reminder.ID == "" {
			reminder.ID = newRecordID()
		}
		if _, duplicate := seen[reminder.ID]; duplicate {
			return nil, &cycle.RecordError{RecordID: reminder.ID, Field: "id", Value: reminder.ID, Err: ErrDuplicateRecordID}
		}
		seen[reminder.ID] = struct{}{}

		input := ReminderInput{
			Type:      &record.Type,
			Title:     &record.Title,
			Time:      &record.Time,
			Frequency: &record.Frequency,
			Enabled:   &record.Enabled,
		}
		if err := applyReminderInput(&reminder, input); err != nil {
			return nil, &cycle.RecordError{RecordID: reminder.ID, Field: "reminder", Err: err}
		}
		armReminder(&reminder)
		reminders = append(reminders, reminder)
	}
	return reminders, nil
}

func restoreProfile(record BackupProfile) (models.Profile, error) {
	profile := models.Profile{
		ID:                  models.SingletonID,
		Name:                SanitizeText(record.Name, maxProfileNameLength),
		Age:                 record.Age,
		Weight:              record.Weight,
		Height:              record.Height,
		AverageCycleLength:  record.AverageCycleLength,
		AveragePeriodLength: record.AveragePeriodLength,
		OnboardingCompleted: record.OnboardingCompleted,
	}
	if record.Age < 0 || record.Age > maxProfileAge {
		return models.Profile{}, &cycle.RecordError{RecordID: "profile", Field: "age", Value: fmt.Sprint(record.Age), Err: ErrInvalidProfileAge}
	}
	if record.Weight < 0 || record.Weight > maxProfileWeight {
		return models.Profile{}, &cycle.RecordError{RecordID: "profile", Field: "weight", Value: fmt.Sprint(record.Weight), Err: ErrInvalidProfileWeight}
	}
	if record.Height < 0 || record.Height > maxProfileHeight {
		return models.Profile{}, &cycle.RecordError{RecordID: "profile", Field: "height", Value: fmt.Sprint(record.Height), Err: ErrInvalidProfileHeight}
	}
	if err := validateConfiguredAverages(record.AverageCycleLength, record.AveragePeriodLength); err != nil {
		return models.Profile{}, &cycle.RecordError{RecordID: "profile", Field: "averageCycleLength", Err: err}
	}
	if raw := strings.TrimSpace(record.LastPeriodDate); raw != "" {
		date, err := cycle.ParseDate(raw)
		if err != nil {
			return models.Profile{}, &cycle.RecordError{RecordID: "profile", Field: "lastPeriodDate", Value: raw, Err: cycle.ErrInvalidDate}
		}
		formatted := date.String()
		profile.LastPeriodDate = &formatted
	}
	return profile, nil
}

// restoreSettings takes the preferences from the backup, falling back to
// defaults for unknown values, and keeps the security fields of current.
func restoreSettings(record BackupSettings, current models.Settings) models.Settings {
	settings := models.DefaultSettings()
	settings.SecurityEnabled = current.SecurityEnabled
	settings.SecurityType = current.SecurityType
	settings.PINHash = current.PINHash
	settings.NotificationsEnabled = record.NotificationsEnabled

	switch theme := strings.ToLower(strings.TrimSpace(record.Theme)); theme {
	case models.ThemeLight, models.ThemeDark, models.ThemeAuto:
		settings.Theme = theme
	}
	switch language := strings.ToLower(strings.TrimSpace(record.Language)); language {
	case i18n.LangES, i18n.LangEN:
		settings.Language = language
	}
	return settings
}
