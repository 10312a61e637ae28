package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/models"
)

const backupExportDateLayout = time.RFC3339

var (
	ErrExportFailed      = errors.New("export failed")
	ErrRestoreFailed     = errors.New("restore failed")
	ErrDuplicateRecordID = errors.New("duplicate record id")
	ErrDuplicateLogDate  = errors.New("duplicate daily log date")
)

var PeriodsCSVHeaders = []string{"Start", "End", "Length", "Flow", "Notes"}

// DailyLogsCSVHeaders lists the fixed columns followed by one yes/no column per
// built-in symptom.
func DailyLogsCSVHeaders() []string {
	headers := []string{"Date", "Flow", "Mood", "Sexual activity"}
	for _, symptom := range models.DefaultBuiltinSymptoms() {
		headers = append(headers, symptom.Key)
	}
	return append(headers, "Notes")
}

type BackupPeriod struct {
	cycle.PeriodRecord
	Notes string `json:"notes,omitempty"`
}

type BackupDailyLog struct {
	Date           string   `json:"date"`
	Mood           string   `json:"mood,omitempty"`
	Flow           string   `json:"flow,omitempty"`
	Symptoms       []string `json:"symptoms"`
	Notes          string   `json:"notes,omitempty"`
	SexualActivity *bool    `json:"sexualActivity,omitempty"`
}

type BackupReminder struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Time      string `json:"time"`
	Frequency string `json:"frequency"`
	Enabled   bool   `json:"enabled"`
}

type BackupProfile struct {
	Name                string  `json:"name"`
	Age                 int     `json:"age"`
	Weight              float64 `json:"weight"`
	Height              float64 `json:"height"`
	LastPeriodDate      string  `json:"lastPeriodDate,omitempty"`
	AverageCycleLength  int     `json:"averageCycleLength"`
	AveragePeriodLength int     `json:"averagePeriodLength"`
	OnboardingCompleted bool    `json:"onboardingCompleted"`
}

// BackupSettings never carries the PIN lock.
type BackupSettings struct {
	Theme                string `json:"theme"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	Language             string `json:"language"`
}

type Backup struct {
	Periods    []BackupPeriod   `json:"periods"`
	DailyLogs  []BackupDailyLog `json:"dailyLogs"`
	Reminders  []BackupReminder `json:"reminders"`
	Profile    BackupProfile    `json:"profile"`
	Settings   BackupSettings   `json:"settings"`
	ExportDate string           `json:"exportDate"`
}

type ExportPeriodReader interface {
	ListAll() ([]models.Period, error)
}

type ExportReminderReader interface {
	ListAll() ([]models.Reminder, error)
}

type RestoreRepository interface {
	ReplaceAll(snapshot models.DataSnapshot) error
}

type ExportService struct {
	periods   ExportPeriodReader
	logs      DayLogLister
	reminders ExportReminderReader
	profile   ProfileReader
	settings  SettingsReader
	data      RestoreRepository
}

func NewExportService(
	periods ExportPeriodReader,
	logs DayLogLister,
	reminders ExportReminderReader,
	profile ProfileReader,
	settings SettingsReader,
	data RestoreRepository,
) *ExportService {
	return &ExportService{
		periods:   periods,
		logs:      logs,
		reminders: reminders,
		profile:   profile,
		settings:  settings,
		data:      data,
	}
}

func (service *ExportService) BuildBackup(now time.Time) (Backup, error) {
	periods, err := service.periods.ListAll()
	if err != nil {
		return Backup{}, fmt.Errorf("%w: periods: %v", ErrExportFailed, err)
	}
	logs, err := service.logs.ListAll()
	if err != nil {
		return Backup{}, fmt.Errorf("%w: daily logs: %v", ErrExportFailed, err)
	}
	reminders, err := service.reminders.ListAll()
	if err != nil {
		return Backup{}, fmt.Errorf("%w: reminders: %v", ErrExportFailed, err)
	}
	profile, err := service.profile.Load()
	if err != nil {
		return Backup{}, fmt.Errorf("%w: profile: %v", ErrExportFailed, err)
	}
	settings, err := service.settings.Load()
	if err != nil {
		return Backup{}, fmt.Errorf("%w: settings: %v", ErrExportFailed, err)
	}

	backup := Backup{
		Periods:   make([]BackupPeriod, 0, len(periods)),
		DailyLogs: make([]BackupDailyLog, 0, len(logs)),
		Reminders: make([]BackupReminder, 0, len(reminders)),
		Profile: BackupProfile{
			Name:                profile.Name,
			Age:                 profile.Age,
			Weight:              profile.Weight,
			Height:              profile.Height,
			AverageCycleLength:  profile.AverageCycleLength,
			AveragePeriodLength: profile.AveragePeriodLength,
			OnboardingCompleted: profile.OnboardingCompleted,
		},
		Settings: BackupSettings{
			Theme:                settings.Theme,
			NotificationsEnabled: settings.NotificationsEnabled,
			Language:             settings.Language,
		},
		ExportDate: now.Format(backupExportDateLayout),
	}
	if profile.LastPeriodDate != nil {
		backup.Profile.LastPeriodDate = *profile.LastPeriodDate
	}
	for _, period := range periods {
		backup.Periods = append(backup.Periods, BackupPeriod{
			PeriodRecord: periodRecordFromModel(period),
			Notes:        period.Notes,
		})
	}
	for _, entry := range logs {
		view := dayLogViewFrom(entry)
		backup.DailyLogs = append(backup.DailyLogs, BackupDailyLog(view))
	}
	for _, reminder := range reminders {
		backup.Reminders = append(backup.Reminders, BackupReminder{
			ID:        reminder.ID,
			Type:      reminder.Type,
			Title:     reminder.Title,
			Time:      reminder.Time,
			Frequency: reminder.Frequency,
			Enabled:   reminder.Enabled,
		})
	}
	return backup, nil
}

// WritePeriodsCSV writes one row per period, oldest first.
func (service *ExportService) WritePeriodsCSV(w io.Writer) error {
	rows, err := service.periods.ListAll()
	if err != nil {
		return fmt.Errorf("%w: periods: %v", ErrExportFailed, err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(PeriodsCSVHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		end := ""
		length := ""
		if row.EndDate != nil {
			end = *row.EndDate
			if period, err := cycle.ParsePeriodRecord(periodRecordFromModel(row)); err == nil {
				if days, ok := period.Length().Get(); ok {
					length = strconv.Itoa(days)
				}
			}
		}
		if err := writer.Write([]string{row.StartDate, end, length, csvFlowLabel(row.Flow), row.Notes}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteDailyLogsCSV writes the daily logs inside exportRange, oldest first.
func (service *ExportService) WriteDailyLogsCSV(w io.Writer, exportRange ExportRange) error {
	logs, err := service.logs.ListAll()
	if err != nil {
		return fmt.Errorf("%w: daily logs: %v", ErrExportFailed, err)
	}

	symptoms := models.DefaultBuiltinSymptoms()
	writer := csv.NewWriter(w)
	if err := writer.Write(DailyLogsCSVHeaders()); err != nil {
		return err
	}
	for _, entry := range logs {
		date, err := cycle.ParseDate(entry.Date)
		if err != nil || !exportRange.Contains(date) {
			continue
		}

		columns := []string{entry.Date, csvFlowLabel(entry.Flow), entry.Mood, csvOptionalYesNo(entry.SexualActivity)}
		for _, symptom := range symptoms {
			columns = append(columns, csvYesNo(slices.Contains(entry.Symptoms, symptom.Key)))
		}
		columns = append(columns, entry.Notes)
		if err := writer.Write(columns); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func csvOptionalYesNo(value *bool) string {
	if value == nil {
		return ""
	}
	return csvYesNo(*value)
}

func csvFlowLabel(flow string) string {
	switch cycle.Flow(strings.ToLower(strings.TrimSpace(flow))) {
	case cycle.FlowLight:
		return "Light"
	case cycle.FlowMedium:
		return "Medium"
	case cycle.FlowHeavy:
		return "Heavy"
	default:
		return ""
	}
}
