package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/models"
)

var (
	ErrDayLogLoadFailed   = errors.New("load day log failed")
	ErrDayLogSaveFailed   = errors.New("save day log failed")
	ErrDayLogNotFound     = errors.New("day log not found")
	ErrDayInFuture        = errors.New("cannot log a future day")
	ErrInvalidMood        = errors.New("invalid mood")
	ErrInvalidSymptom     = errors.New("invalid symptom")
	ErrInvalidDayLogFlow  = errors.New("invalid flow")
	ErrDayLogInputMissing = errors.New("day log input is empty")
)

type DayLogRepository interface {
	DayLogReader
	Upsert(entry *models.DailyLog) error
	DeleteByDate(date string) (bool, error)
}

// DayLogInput carries a partial update. Nil fields keep the stored value.
type DayLogInput struct {
	Mood           *string
	Flow           *string
	Symptoms       *[]string
	Notes          *string
	SexualActivity *bool
}

func (input DayLogInput) empty() bool {
	return input.Mood == nil && input.Flow == nil && input.Symptoms == nil && input.Notes == nil && input.SexualActivity == nil
}

type DayLogView struct {
	Date           string   `json:"date"`
	Mood           string   `json:"mood,omitempty"`
	Flow           string   `json:"flow,omitempty"`
	Symptoms       []string `json:"symptoms"`
	Notes          string   `json:"notes,omitempty"`
	SexualActivity *bool    `json:"sexualActivity,omitempty"`
}

func dayLogViewFrom(entry models.DailyLog) DayLogView {
	symptoms := entry.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	return DayLogView{
		Date:           entry.Date,
		Mood:           entry.Mood,
		Flow:           entry.Flow,
		Symptoms:       symptoms,
		Notes:          entry.Notes,
		SexualActivity: entry.SexualActivity,
	}
}

type DayService struct {
	logs DayLogRepository
}

func NewDayService(logs DayLogRepository) *DayService {
	return &DayService{logs: logs}
}

func (service *DayService) FetchRange(from cycle.Date, to cycle.Date) ([]DayLogView, error) {
	entries, err := service.logs.ListRange(from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDayLogLoadFailed, err)
	}
	views := make([]DayLogView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, dayLogViewFrom(entry))
	}
	return views, nil
}

// UpsertLog merges input into the log stored for date, creating it if needed.
func (service *DayService) UpsertLog(date cycle.Date, input DayLogInput, today cycle.Date) (DayLogView, error) {
	if input.empty() {
		return DayLogView{}, ErrDayLogInputMissing
	}
	if date.After(today) {
		return DayLogView{}, ErrDayInFuture
	}

	entry, found, err := service.logs.FindByDate(date.String())
	if err != nil {
		return DayLogView{}, fmt.Errorf("%w: %v", ErrDayLogLoadFailed, err)
	}
	if !found {
		entry = models.DailyLog{Date: date.String(), Symptoms: []string{}}
	}

	if err := applyDayLogInput(&entry, input); err != nil {
		return DayLogView{}, err
	}
	if err := service.logs.Upsert(&entry); err != nil {
		return DayLogView{}, fmt.Errorf("%w: %v", ErrDayLogSaveFailed, err)
	}
	return dayLogViewFrom(entry), nil
}

func (service *DayService) DeleteLog(date cycle.Date) error {
	deleted, err := service.logs.DeleteByDate(date.String())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDayLogSaveFailed, err)
	}
	if !deleted {
		return ErrDayLogNotFound
	}
	return nil
}

func applyDayLogInput(entry *models.DailyLog, input DayLogInput) error {
	if input.Mood != nil {
		mood, err := NormalizeMood(*input.Mood)
		if err != nil {
			return err
		}
		entry.Mood = mood
	}
	if input.Flow != nil {
		flow, err := cycle.ParseFlow(*input.Flow)
		if err != nil {
			return ErrInvalidDayLogFlow
		}
		entry.Flow = string(flow)
	}
	if input.Symptoms != nil {
		symptoms, err := NormalizeSymptoms(*input.Symptoms)
		if err != nil {
			return err
		}
		entry.Symptoms = symptoms
	}
	if input.Notes != nil {
		entry.Notes = SanitizeText(*input.Notes, maxNotesLength)
	}
	if input.SexualActivity != nil {
		value := *input.SexualActivity
		entry.SexualActivity = &value
	}
	return nil
}

// NormalizeMood accepts a known mood key or an empty string to clear it.
func NormalizeMood(raw string) (string, error) {
	mood := strings.ToLower(strings.TrimSpace(raw))
	if mood == "" || slices.Contains(models.Moods(), mood) {
		return mood, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMood, raw)
}

// NormalizeSymptoms deduplicates symptom keys, keeping first-seen order.
func NormalizeSymptoms(raw []string) ([]string, error) {
	result := make([]string, 0, len(raw))
	for _, value := range raw {
		key := strings.ToLower(strings.TrimSpace(value))
		if key == "" {
			continue
		}
		if !models.IsBuiltinSymptom(key) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSymptom, value)
		}
		if !slices.Contains(result, key) {
			result = append(result, key)
		}
	}
	return result, nil
}
