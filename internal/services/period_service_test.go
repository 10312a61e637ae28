package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/ciclo/internal/cycle"
)

func TestLogPeriodStartsThenEnds(t *testing.T) {
	t.Parallel()

	repo := newPeriodRepositoryStub(periodRow("old", "2024-01-01", "2024-01-05"))
	service := NewPeriodService(repo)
	today := mustDate("2024-02-02")

	started, err := service.LogPeriod(mustDate("2024-01-29"), cycle.FlowHeavy, today)
	if err != nil {
		t.Fatalf("LogPeriod() start unexpected error: %v", err)
	}
	if started.Action != PeriodStarted || started.Period.Completed() {
		t.Fatalf("expected an active started period, got %+v", started)
	}
	if started.Period.ID == "" {
		t.Fatalf("expected generated period id")
	}

	ended, err := service.LogPeriod(mustDate("2024-02-02"), cycle.FlowUnset, today)
	if err != nil {
		t.Fatalf("LogPeriod() end unexpected error: %v", err)
	}
	if ended.Action != PeriodEnded {
		t.Fatalf("expected ended action, got %q", ended.Action)
	}
	length, ok := ended.Period.Length().Get()
	if !ok || length != 4 {
		t.Fatalf("expected period length 4, got %d (ok=%v)", length, ok)
	}

	stored := repo.rows[started.Period.ID]
	if stored.EndDate == nil || *stored.EndDate != "2024-02-02" {
		t.Fatalf("expected stored end 2024-02-02, got %v", stored.EndDate)
	}
	if stored.Flow != "heavy" {
		t.Fatalf("expected stored flow heavy, got %q", stored.Flow)
	}
}

func TestStartPeriodValidation(t *testing.T) {
	t.Parallel()

	today := mustDate("2024-03-10")
	tests := []struct {
		name     string
		existing []string
		input    PeriodInput
		want     error
	}{
		{
			name:  "start in future",
			input: PeriodInput{Start: mustDate("2024-03-11")},
			want:  ErrPeriodInFuture,
		},
		{
			name:  "end before start",
			input: PeriodInput{Start: mustDate("2024-03-05"), End: cycle.Some(mustDate("2024-03-04"))},
			want:  ErrPeriodEndBeforeStart,
		},
		{
			name:  "end in future",
			input: PeriodInput{Start: mustDate("2024-03-05"), End: cycle.Some(mustDate("2024-03-12"))},
			want:  ErrPeriodInFuture,
		},
		{
			name:     "second active period",
			existing: []string{"active"},
			input:    PeriodInput{Start: mustDate("2024-03-09")},
			want:     ErrActivePeriodExists,
		},
		{
			name:     "overlaps completed period",
			existing: []string{"completed"},
			input:    PeriodInput{Start: mustDate("2024-02-03"), End: cycle.Some(mustDate("2024-02-08"))},
			want:     ErrPeriodOverlap,
		},
		{
			name:     "overlaps active period through today",
			existing: []string{"active"},
			input:    PeriodInput{Start: mustDate("2024-03-08"), End: cycle.Some(mustDate("2024-03-09"))},
			want:     ErrPeriodOverlap,
		},
		{
			name:     "disjoint completed period",
			existing: []string{"completed"},
			input:    PeriodInput{Start: mustDate("2024-02-10"), End: cycle.Some(mustDate("2024-02-14"))},
			want:     nil,
		},
	}

	fixtures := map[string][]string{
		"active":    {"a", "2024-03-01", ""},
		"completed": {"c", "2024-02-01", "2024-02-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newPeriodRepositoryStub()
			for _, name := range tt.existing {
				fixture := fixtures[name]
				repo.rows[fixture[0]] = periodRow(fixture[0], fixture[1], fixture[2])
			}
			service := NewPeriodService(repo)

			_, err := service.StartPeriod(tt.input, today)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEndPeriodRejectsCompletedAndEarlyEnd(t *testing.T) {
	t.Parallel()

	repo := newPeriodRepositoryStub(
		periodRow("done", "2024-01-01", "2024-01-05"),
		periodRow("open", "2024-01-29", ""),
	)
	service := NewPeriodService(repo)
	today := mustDate("2024-02-03")

	if _, err := service.EndPeriod("done", today, today); !errors.Is(err, ErrNoActivePeriod) {
		t.Fatalf("expected ErrNoActivePeriod, got %v", err)
	}
	if _, err := service.EndPeriod("open", mustDate("2024-01-28"), today); !errors.Is(err, ErrPeriodEndBeforeStart) {
		t.Fatalf("expected ErrPeriodEndBeforeStart, got %v", err)
	}
	if _, err := service.EndPeriod("missing", today, today); !errors.Is(err, ErrPeriodNotFound) {
		t.Fatalf("expected ErrPeriodNotFound, got %v", err)
	}
	if repo.rows["open"].EndDate != nil {
		t.Fatalf("expected failed end to leave period open")
	}
}

func TestUpdatePeriodKeepsIDAndSanitizesNotes(t *testing.T) {
	t.Parallel()

	repo := newPeriodRepositoryStub(periodRow("p1", "2024-01-01", "2024-01-05"))
	service := NewPeriodService(repo)

	updated, err := service.UpdatePeriod("p1", PeriodInput{
		Start: mustDate("2024-01-02"),
		End:   cycle.Some(mustDate("2024-01-06")),
		Flow:  cycle.FlowLight,
		Notes: "<b>tired</b>",
	}, mustDate("2024-02-01"))
	if err != nil {
		t.Fatalf("UpdatePeriod() unexpected error: %v", err)
	}
	if updated.ID != "p1" {
		t.Fatalf("expected id p1, got %q", updated.ID)
	}
	stored := repo.rows["p1"]
	if stored.StartDate != "2024-01-02" || stored.Notes != "tired" {
		t.Fatalf("unexpected stored row: %+v", stored)
	}

	if _, err := service.UpdatePeriod("missing", PeriodInput{Start: mustDate("2024-01-02")}, mustDate("2024-02-01")); !errors.Is(err, ErrPeriodNotFound) {
		t.Fatalf("expected ErrPeriodNotFound, got %v", err)
	}
}

func TestDeletePeriod(t *testing.T) {
	t.Parallel()

	repo := newPeriodRepositoryStub(periodRow("p1", "2024-01-01", "2024-01-05"))
	service := NewPeriodService(repo)

	if err := service.DeletePeriod("p1"); err != nil {
		t.Fatalf("DeletePeriod() unexpected error: %v", err)
	}
	if err := service.DeletePeriod("p1"); !errors.Is(err, ErrPeriodNotFound) {
		t.Fatalf("expected ErrPeriodNotFound on second delete, got %v", err)
	}
}

func TestLoadPeriodsWrapsMalformedRows(t *testing.T) {
	t.Parallel()

	repo := newPeriodRepositoryStub(periodRow("bad", "2024-13-01", ""))
	service := NewPeriodService(repo)

	_, err := service.LoadPeriods()
	if !errors.Is(err, ErrPeriodLoadFailed) {
		t.Fatalf("expected ErrPeriodLoadFailed, got %v", err)
	}
	var recordErr *cycle.RecordError
	if !errors.As(err, &recordErr) || recordErr.RecordID != "bad" {
		t.Fatalf("expected record error for bad, got %v", err)
	}
}

func TestValidatePeriodHistory(t *testing.T) {
	t.Parallel()

	today := mustDate("2024-03-01")
	valid := []cycle.Period{
		{ID: "a", Start: mustDate("2024-01-01"), End: cycle.Some(mustDate("2024-01-05"))},
		{ID: "b", Start: mustDate("2024-01-29"), End: cycle.Some(mustDate("2024-02-02"))},
		{ID: "c", Start: mustDate("2024-02-27")},
	}
	if err := ValidatePeriodHistory(valid, today); err != nil {
		t.Fatalf("expected valid history, got %v", err)
	}

	overlapping := append(valid[:2:2], cycle.Period{ID: "d", Start: mustDate("2024-02-01"), End: cycle.Some(mustDate("2024-02-03"))})
	err := ValidatePeriodHistory(overlapping, today)
	var recordErr *cycle.RecordError
	if !errors.As(err, &recordErr) || recordErr.RecordID != "d" || !errors.Is(err, ErrPeriodOverlap) {
		t.Fatalf("expected overlap record error for d, got %v", err)
	}
}
