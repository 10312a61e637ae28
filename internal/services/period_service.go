package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/models"
)

var (
	ErrPeriodNotFound       = errors.New("period not found")
	ErrActivePeriodExists   = errors.New("another period is still active")
	ErrNoActivePeriod       = errors.New("no active period")
	ErrPeriodEndBeforeStart = errors.New("period end date before start date")
	ErrPeriodInFuture       = errors.New("period date in the future")
	ErrPeriodOverlap        = errors.New("period overlaps another period")
	ErrPeriodLoadFailed     = errors.New("load periods failed")
	ErrPeriodSaveFailed     = errors.New("save period failed")
)

type PeriodRepository interface {
	ListAll() ([]models.Period, error)
	FindByID(id string) (models.Period, bool, error)
	Create(period *models.Period) error
	Save(period *models.Period) error
	Delete(id string) (bool, error)
}

type PeriodInput struct {
	Start cycle.Date
	End   cycle.Option[cycle.Date]
	Flow  cycle.Flow
	Notes string
}

type PeriodLogAction string

const (
	PeriodStarted PeriodLogAction = "started"
	PeriodEnded   PeriodLogAction = "ended"
)

type PeriodLogResult struct {
	Action PeriodLogAction `json:"action"`
	Period cycle.Period    `json:"period"`
}

type PeriodService struct {
	periods PeriodRepository
}

func NewPeriodService(periods PeriodRepository) *PeriodService {
	return &PeriodService{periods: periods}
}

func (service *PeriodService) LoadPeriods() ([]cycle.Period, error) {
	rows, err := service.periods.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPeriodLoadFailed, err)
	}
	periods, err := PeriodsFromModels(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPeriodLoadFailed, err)
	}
	return periods, nil
}

// LogPeriod is the one-tap action: it ends the active period on date, or
// starts a new period on date when none is active.
func (service *PeriodService) LogPeriod(date cycle.Date, flow cycle.Flow, today cycle.Date) (PeriodLogResult, error) {
	periods, err := service.LoadPeriods()
	if err != nil {
		return PeriodLogResult{}, err
	}

	if active, ok := cycle.CurrentPeriod(periods).Get(); ok {
		ended, err := service.EndPeriod(active.ID, date, today)
		if err != nil {
			return PeriodLogResult{}, err
		}
		return PeriodLogResult{Action: PeriodEnded, Period: ended}, nil
	}

	started, err := service.StartPeriod(PeriodInput{Start: date, Flow: flow}, today)
	if err != nil {
		return PeriodLogResult{}, err
	}
	return PeriodLogResult{Action: PeriodStarted, Period: started}, nil
}

func (service *PeriodService) StartPeriod(input PeriodInput, today cycle.Date) (cycle.Period, error) {
	periods, err := service.LoadPeriods()
	if err != nil {
		return cycle.Period{}, err
	}

	candidate := cycle.Period{
		ID:    newRecordID(),
		Start: input.Start,
		End:   input.End,
		Flow:  input.Flow,
	}
	if err := validatePeriodWrite(candidate, periods, today); err != nil {
		return cycle.Period{}, err
	}

	row := periodModelFrom(candidate, SanitizeText(input.Notes, maxNotesLength))
	if err := service.periods.Create(&row); err != nil {
		return cycle.Period{}, fmt.Errorf("%w: %v", ErrPeriodSaveFailed, err)
	}
	return candidate, nil
}

func (service *PeriodService) EndPeriod(id string, end cycle.Date, today cycle.Date) (cycle.Period, error) {
	row, found, err := service.periods.FindByID(id)
	if err != nil {
		return cycle.Period{}, fmt.Errorf("%w: %v", ErrPeriodLoadFailed, err)
	}
	if !found {
		return cycle.Period{}, ErrPeriodNotFound
	}
	if row.EndDate != nil {
		return cycle.Period{}, ErrNoActivePeriod
	}

	periods, err := service.LoadPeriods()
	if err != nil {
		return cycle.Period{}, err
	}
	current, err := cycle.ParsePeriodRecord(periodRecordFromModel(row))
	if err != nil {
		return cycle.Period{}, fmt.Errorf("%w: %w", ErrPeriodLoadFailed, err)
	}
	current.End = cycle.Some(end)
	if err := validatePeriodWrite(current, periods, today); err != nil {
		return cycle.Period{}, err
	}

	row.EndDate = optionalDateString(current.End)
	if err := service.periods.Save(&row); err != nil {
		return cycle.Period{}, fmt.Errorf("%w: %v", ErrPeriodSaveFailed, err)
	}
	return current, nil
}

func (service *PeriodService) UpdatePeriod(id string, input PeriodInput, today cycle.Date) (cycle.Period, error) {
	row, found, err := service.periods.FindByID(id)
	if err != nil {
		return cycle.Period{}, fmt.Errorf("%w: %v", ErrPeriodLoadFailed, err)
	}
	if !found {
		return cycle.Period{}, ErrPeriodNotFound
	}

	periods, err := service.LoadPeriods()
	if err != nil {
		return cycle.Period{}, err
	}
	updated := cycle.Period{ID: id, Start: input.Start, End: input.End, Flow: input.Flow}
	if err := validatePeriodWrite(updated, periods, today); err != nil {
		return cycle.Period{}, err
	}

	replacement := periodModelFrom(updated, SanitizeText(input.Notes, maxNotesLength))
	replacement.CreatedAt = row.CreatedAt
	if err := service.periods.Save(&replacement); err != nil {
		return cycle.Period{}, fmt.Errorf("%w: %v", ErrPeriodSaveFailed, err)
	}
	return updated, nil
}

func (service *PeriodService) DeletePeriod(id string) error {
	deleted, err := service.periods.Delete(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPeriodSaveFailed, err)
	}
	if !deleted {
		return ErrPeriodNotFound
	}
	return nil
}

// validatePeriodWrite checks candidate against every other stored period. An
// ongoing period occupies the days from its start through today.
func validatePeriodWrite(candidate cycle.Period, existing []cycle.Period, today cycle.Date) error {
	if candidate.Start.After(today) {
		return ErrPeriodInFuture
	}
	if end, ok := candidate.End.Get(); ok {
		if end.Before(candidate.Start) {
			return ErrPeriodEndBeforeStart
		}
		if end.After(today) {
			return ErrPeriodInFuture
		}
	}

	candidateEnd := occupiedUntil(candidate, today)
	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		if !candidate.Completed() && !other.Completed() {
			return ErrActivePeriodExists
		}
		otherEnd := occupiedUntil(other, today)
		if !candidate.Start.After(otherEnd) && !other.Start.After(candidateEnd) {
			return ErrPeriodOverlap
		}
	}
	return nil
}

func occupiedUntil(period cycle.Period, today cycle.Date) cycle.Date {
	if end, ok := period.End.Get(); ok {
		return end
	}
	if today.Before(period.Start) {
		return period.Start
	}
	return today
}

// ValidatePeriodHistory applies the write rules to a whole history, as a
// restore does before replacing stored data.
func ValidatePeriodHistory(periods []cycle.Period, today cycle.Date) error {
	for index, period := range periods {
		if err := validatePeriodWrite(period, periods[:index], today); err != nil {
			return &cycle.RecordError{RecordID: period.ID, Field: "startDate", Value: period.Start.String(), Err: err}
		}
	}
	return nil
}
