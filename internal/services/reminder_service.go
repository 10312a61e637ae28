package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
)

const maxReminderTitleLength = 80

var (
	ErrReminderNotFound         = errors.New("reminder not found")
	ErrReminderLoadFailed       = errors.New("load reminders failed")
	ErrReminderSaveFailed       = errors.New("save reminder failed")
	ErrInvalidReminderType      = errors.New("invalid reminder type")
	ErrInvalidReminderFrequency = errors.New("invalid reminder frequency")
	ErrInvalidReminderTime      = errors.New("invalid reminder time")
	ErrReminderTitleRequired    = errors.New("reminder title is required")
)

type ReminderRepository interface {
	ListAll() ([]models.Reminder, error)
	FindByID(id string) (models.Reminder, bool, error)
	Create(reminder *models.Reminder) error
	Save(reminder *models.Reminder) error
	Delete(id string) (bool, error)
}

// ReminderInput is used for create (all fields) and update (nil keeps the stored value).
type ReminderInput struct {
	Type      *string
	Title     *string
	Time      *string
	Frequency *string
	Enabled   *bool
}

type ReminderService struct {
	reminders ReminderRepository
}

func NewReminderService(reminders ReminderRepository) *ReminderService {
	return &ReminderService{reminders: reminders}
}

func (service *ReminderService) List() ([]models.Reminder, error) {
	reminders, err := service.reminders.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReminderLoadFailed, err)
	}
	return reminders, nil
}

func (service *ReminderService) Create(input ReminderInput) (models.Reminder, error) {
	reminder := models.Reminder{
		ID:      newRecordID(),
		Enabled: true,
	}
	if input.Type == nil || input.Time == nil || input.Frequency == nil {
		return models.Reminder{}, ErrInvalidReminderType
	}
	if err := applyReminderInput(&reminder, input); err != nil {
		return models.Reminder{}, err
	}
	armReminder(&reminder)

	if err := service.reminders.Create(&reminder); err != nil {
		return models.Reminder{}, fmt.Errorf("%w: %v", ErrReminderSaveFailed, err)
	}
	return reminder, nil
}

func (service *ReminderService) Update(id string, input ReminderInput) (models.Reminder, error) {
	reminder, found, err := service.reminders.FindByID(id)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("%w: %v", ErrReminderLoadFailed, err)
	}
	if !found {
		return models.Reminder{}, ErrReminderNotFound
	}

	if err := applyReminderInput(&reminder, input); err != nil {
		return models.Reminder{}, err
	}
	armReminder(&reminder)

	if err := service.reminders.Save(&reminder); err != nil {
		return models.Reminder{}, fmt.Errorf("%w: %v", ErrReminderSaveFailed, err)
	}
	return reminder, nil
}

func (service *ReminderService) Toggle(id string) (models.Reminder, error) {
	reminder, found, err := service.reminders.FindByID(id)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("%w: %v", ErrReminderLoadFailed, err)
	}
	if !found {
		return models.Reminder{}, ErrReminderNotFound
	}
	enabled := !reminder.Enabled
	return service.Update(id, ReminderInput{Enabled: &enabled})
}

func (service *ReminderService) Delete(id string) error {
	deleted, err := service.reminders.Delete(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReminderSaveFailed, err)
	}
	if !deleted {
		return ErrReminderNotFound
	}
	return nil
}

func applyReminderInput(reminder *models.Reminder, input ReminderInput) error {
	if input.Type != nil {
		reminderType := strings.ToLower(strings.TrimSpace(*input.Type))
		if !IsValidReminderType(reminderType) {
			return fmt.Errorf("%w: %q", ErrInvalidReminderType, *input.Type)
		}
		reminder.Type = reminderType
	}
	if input.Frequency != nil {
		frequency := strings.ToLower(strings.TrimSpace(*input.Frequency))
		if !IsValidReminderFrequency(frequency) {
			return fmt.Errorf("%w: %q", ErrInvalidReminderFrequency, *input.Frequency)
		}
		reminder.Frequency = frequency
	}
	if input.Time != nil {
		if _, _, err := ParseReminderTime(*input.Time); err != nil {
			return err
		}
		reminder.Time = strings.TrimSpace(*input.Time)
	}
	if input.Title != nil {
		reminder.Title = SanitizeText(*input.Title, maxReminderTitleLength)
	}
	if reminder.Title == "" {
		return ErrReminderTitleRequired
	}
	if input.Enabled != nil {
		reminder.Enabled = *input.Enabled
	}
	return nil
}

// armReminder assigns a schedule handle to an enabled reminder and clears it
// when the reminder is switched off. A changed schedule may fire again today.
func armReminder(reminder *models.Reminder) {
	if !reminder.Enabled {
		reminder.NotificationID = ""
		return
	}
	reminder.NotificationID = newRecordID()
	reminder.LastFiredOn = ""
}

func IsValidReminderType(value string) bool {
	switch value {
	case models.ReminderTypePill, models.ReminderTypePeriod, models.ReminderTypeOvulation, models.ReminderTypeCustom:
		return true
	default:
		return false
	}
}

func IsValidReminderFrequency(value string) bool {
	switch value {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyCustom:
		return true
	default:
		return false
	}
}

// ParseReminderTime parses a 24h "HH:MM" value.
func ParseReminderTime(raw string) (int, int, error) {
	value := strings.TrimSpace(raw)
	hourPart, minutePart, found := strings.Cut(value, ":")
	if !found || len(hourPart) != 2 || len(minutePart) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidReminderTime, raw)
	}
	hour, hourErr := strconv.Atoi(hourPart)
	minute, minuteErr := strconv.Atoi(minutePart)
	if hourErr != nil || minuteErr != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidReminderTime, raw)
	}
	return hour, minute, nil
}

// NextTrigger returns the next instant after now at which reminder fires:
// daily at its time, weekly on Mondays, monthly on the 1st, and custom once,
// today if the time has not passed yet, otherwise tomorrow.
func NextTrigger(reminder models.Reminder, now time.Time) (time.Time, error) {
	hour, minute, err := ParseReminderTime(reminder.Time)
	if err != nil {
		return time.Time{}, err
	}

	location := now.Location()
	at := func(day time.Time) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, location)
	}
	candidate := at(now)

	switch reminder.Frequency {
	case models.FrequencyDaily, models.FrequencyCustom:
		if !candidate.After(now) {
			candidate = at(now.AddDate(0, 0, 1))
		}
	case models.FrequencyWeekly:
		offset := (int(time.Monday) - int(now.Weekday()) + 7) % 7
		candidate = at(now.AddDate(0, 0, offset))
		if !candidate.After(now) {
			candidate = at(now.AddDate(0, 0, offset+7))
		}
	case models.FrequencyMonthly:
		candidate = time.Date(now.Year(), now.Month(), 1, hour, minute, 0, 0, location)
		if !candidate.After(now) {
			candidate = time.Date(now.Year(), now.Month()+1, 1, hour, minute, 0, 0, location)
		}
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidReminderFrequency, reminder.Frequency)
	}
	return candidate, nil
}

// DueOccurrence reports whether reminder has an occurrence on now's calendar
// day that has already passed, was scheduled after the reminder was last
// changed and has not fired yet.
func DueOccurrence(reminder models.Reminder, now time.Time) (time.Time, bool) {
	if !reminder.Enabled {
		return time.Time{}, false
	}
	hour, minute, err := ParseReminderTime(reminder.Time)
	if err != nil {
		return time.Time{}, false
	}

	switch reminder.Frequency {
	case models.FrequencyWeekly:
		if now.Weekday() != time.Monday {
			return time.Time{}, false
		}
	case models.FrequencyMonthly:
		if now.Day() != 1 {
			return time.Time{}, false
		}
	case models.FrequencyDaily, models.FrequencyCustom:
	default:
		return time.Time{}, false
	}

	occurrence := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if now.Before(occurrence) {
		return time.Time{}, false
	}
	if !reminder.UpdatedAt.IsZero() && !occurrence.After(reminder.UpdatedAt) {
		return time.Time{}, false
	}
	if reminder.LastFiredOn == occurrence.Format("2006-01-02") {
		return time.Time{}, false
	}
	return occurrence, true
}
