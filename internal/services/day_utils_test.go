package services

import (
	"strings"
	"testing"

	"github.com/terraincognita07/ciclo/internal/models"
)

func TestDayHasData(t *testing.T) {
	t.Parallel()

	falseValue := false
	tests := []struct {
		name  string
		entry models.DailyLog
		want  bool
	}{
		{name: "mood present", entry: models.DailyLog{Mood: models.MoodCalm}, want: true},
		{name: "symptoms present", entry: models.DailyLog{Symptoms: []string{"acne"}}, want: true},
		{name: "notes present", entry: models.DailyLog{Notes: "note"}, want: true},
		{name: "flow present", entry: models.DailyLog{Flow: "light"}, want: true},
		{name: "sexual activity answered", entry: models.DailyLog{SexualActivity: &falseValue}, want: true},
		{name: "blank notes only", entry: models.DailyLog{Notes: "   "}, want: false},
		{name: "empty entry", entry: models.DailyLog{Symptoms: []string{}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayHasData(tt.entry); got != tt.want {
				t.Fatalf("DayHasData() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	if got := SanitizeText("  <img src=x onerror=alert(1)>hola <b>mundo</b>  ", 0); got != "hola mundo" {
		t.Fatalf("expected markup stripped, got %q", got)
	}
	if got := SanitizeText(strings.Repeat("ñ", 10), 4); got != "ññññ" {
		t.Fatalf("expected rune-aware truncation, got %q", got)
	}
}

func TestPeriodsFromModelsRoundTrip(t *testing.T) {
	t.Parallel()

	rows := []models.Period{
		periodRow("a", "2024-01-01", "2024-01-05"),
		periodRow("b", "2024-01-29", ""),
	}
	periods, err := PeriodsFromModels(rows)
	if err != nil {
		t.Fatalf("PeriodsFromModels() unexpected error: %v", err)
	}
	if len(periods) != 2 || !periods[0].Completed() || periods[1].Completed() {
		t.Fatalf("unexpected periods: %+v", periods)
	}

	back := periodModelFrom(periods[0], "n")
	if back.StartDate != "2024-01-01" || back.EndDate == nil || *back.EndDate != "2024-01-05" || back.Notes != "n" {
		t.Fatalf("unexpected round trip row: %+v", back)
	}
	if open := periodModelFrom(periods[1], ""); open.EndDate != nil {
		t.Fatalf("expected open period to keep nil end, got %v", *open.EndDate)
	}
}

func TestSanitizeTextKeepsPlainPunctuation(t *testing.T) {
	t.Parallel()

	if got := SanitizeText(`don't & "maybe"`, 0); got != `don't & "maybe"` {
		t.Fatalf("expected punctuation preserved, got %q", got)
	}
}
