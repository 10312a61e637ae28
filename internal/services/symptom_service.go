package services

import (
	"fmt"
	"sort"

	"github.com/terraincognita07/ciclo/internal/models"
)

type SymptomView struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type SymptomFrequency struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	Count     int    `json:"count"`
	TotalDays int    `json:"totalDays"`
}

type SymptomService struct {
	logs       DayLogLister
	translator Translator
}

func NewSymptomService(logs DayLogLister, translator Translator) *SymptomService {
	return &SymptomService{
		logs:       logs,
		translator: translator,
	}
}

// ListSymptoms returns the built-in catalog in display order with labels in language.
func (service *SymptomService) ListSymptoms(language string) []SymptomView {
	builtin := models.DefaultBuiltinSymptoms()
	views := make([]SymptomView, 0, len(builtin))
	for _, symptom := range builtin {
		views = append(views, SymptomView{
			Key:   symptom.Key,
			Label: service.translator.Translate(language, "symptom."+symptom.Key),
			Icon:  symptom.Icon,
			Color: symptom.Color,
		})
	}
	return views
}

// Frequencies counts how often each symptom was logged, over the days that
// have any data at all.
func (service *SymptomService) Frequencies(language string) ([]SymptomFrequency, error) {
	logs, err := service.logs.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDayLogLoadFailed, err)
	}
	return CalculateSymptomFrequencies(logs, func(key string) string {
		return service.translator.Translate(language, "symptom."+key)
	}), nil
}

func CalculateSymptomFrequencies(logs []models.DailyLog, label func(key string) string) []SymptomFrequency {
	totalDays := 0
	counts := make(map[string]int)
	for _, entry := range logs {
		if !DayHasData(entry) {
			continue
		}
		totalDays++
		for _, key := range entry.Symptoms {
			counts[key]++
		}
	}
	if len(counts) == 0 {
		return []SymptomFrequency{}
	}

	icons := make(map[string]string)
	for _, symptom := range models.DefaultBuiltinSymptoms() {
		icons[symptom.Key] = symptom.Icon
	}

	result := make([]SymptomFrequency, 0, len(counts))
	for key, count := range counts {
		result = append(result, SymptomFrequency{
			Key:       key,
			Label:     label(key),
			Icon:      icons[key],
			Count:     count,
			TotalDays: totalDays,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count == result[j].Count {
			return result[i].Key < result[j].Key
		}
		return result[i].Count > result[j].Count
	})
	return result
}
