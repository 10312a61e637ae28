package services

import (
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/models"
)

const maxNotesLength = 2000

var plainTextPolicy = bluemonday.StrictPolicy()

// SanitizeText strips markup from user-entered text and trims it to limit runes.
// Entities escaped by the policy are decoded again since output is never HTML.
func SanitizeText(raw string, limit int) string {
	cleaned := strings.TrimSpace(html.UnescapeString(plainTextPolicy.Sanitize(raw)))
	if limit > 0 {
		runes := []rune(cleaned)
		if len(runes) > limit {
			cleaned = strings.TrimSpace(string(runes[:limit]))
		}
	}
	return cleaned
}

func newRecordID() string {
	return uuid.NewString()
}

func DayHasData(entry models.DailyLog) bool {
	if entry.Mood != "" || entry.Flow != "" {
		return true
	}
	if len(entry.Symptoms) > 0 {
		return true
	}
	if strings.TrimSpace(entry.Notes) != "" {
		return true
	}
	return entry.SexualActivity != nil
}

func periodRecordFromModel(period models.Period) cycle.PeriodRecord {
	record := cycle.PeriodRecord{
		ID:        period.ID,
		StartDate: period.StartDate,
		Flow:      period.Flow,
	}
	if period.EndDate != nil {
		record.EndDate = *period.EndDate
	}
	return record
}

// PeriodsFromModels converts stored rows into engine periods, failing on the
// first row with a malformed date.
func PeriodsFromModels(rows []models.Period) ([]cycle.Period, error) {
	records := make([]cycle.PeriodRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, periodRecordFromModel(row))
	}
	return cycle.ParsePeriodRecords(records)
}

func periodModelFrom(period cycle.Period, notes string) models.Period {
	row := models.Period{
		ID:        period.ID,
		StartDate: period.Start.String(),
		Flow:      string(period.Flow),
		Notes:     notes,
	}
	if end, ok := period.End.Get(); ok {
		value := end.String()
		row.EndDate = &value
	}
	return row
}

func optionalDateString(value cycle.Option[cycle.Date]) *string {
	date, ok := value.Get()
	if !ok {
		return nil
	}
	formatted := date.String()
	return &formatted
}
