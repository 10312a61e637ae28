package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/models"
)

const (
	onboardingMaxLookbackDays = 90

	MinCycleLength         = 15
	MaxCycleLength         = 90
	MinPeriodLength        = 1
	MaxPeriodLength        = 14
	minFollicularGapLength = 8
)

var (
	ErrOnboardingDateRequired = errors.New("last period date is required")
	ErrOnboardingDateInFuture = errors.New("last period date in the future")
	ErrOnboardingDateTooOld   = errors.New("last period date too old")
	ErrInvalidCycleLength     = errors.New("invalid cycle length")
	ErrInvalidPeriodLength    = errors.New("invalid period length")
	ErrPeriodTooLongForCycle  = errors.New("period length too long for cycle length")
	ErrOnboardingSaveFailed   = errors.New("complete onboarding failed")
)

type OnboardingRepository interface {
	CompleteOnboarding(profile models.Profile, seed *models.Period, notificationsEnabled bool) error
}

type OnboardingInput struct {
	Name                 string
	LastPeriodDate       cycle.Date
	CycleLength          int
	PeriodLength         int
	NotificationsEnabled bool
}

type OnboardingState struct {
	Completed      bool       `json:"completed"`
	MinDate        cycle.Date `json:"minDate"`
	MaxDate        cycle.Date `json:"maxDate"`
	DefaultCycle   int        `json:"defaultCycleLength"`
	DefaultPeriod  int        `json:"defaultPeriodLength"`
	LastPeriodDate string     `json:"lastPeriodDate,omitempty"`
}

type OnboardingService struct {
	profile ProfileReader
	data    OnboardingRepository
}

func NewOnboardingService(profile ProfileReader, data OnboardingRepository) *OnboardingService {
	return &OnboardingService{profile: profile, data: data}
}

// OnboardingDateBounds returns the oldest and newest accepted last period dates.
func OnboardingDateBounds(today cycle.Date) (cycle.Date, cycle.Date) {
	return today.AddDays(-onboardingMaxLookbackDays), today
}

func (service *OnboardingService) State(today cycle.Date) (OnboardingState, error) {
	profile, err := service.profile.Load()
	if err != nil {
		return OnboardingState{}, fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	minDate, maxDate := OnboardingDateBounds(today)
	state := OnboardingState{
		Completed:     profile.OnboardingCompleted,
		MinDate:       minDate,
		MaxDate:       maxDate,
		DefaultCycle:  models.DefaultCycleLength,
		DefaultPeriod: models.DefaultPeriodLength,
	}
	if profile.LastPeriodDate != nil {
		state.LastPeriodDate = *profile.LastPeriodDate
	}
	return state, nil
}

func ValidateOnboardingInput(input OnboardingInput, today cycle.Date) error {
	if input.LastPeriodDate.IsZero() {
		return ErrOnboardingDateRequired
	}
	minDate, maxDate := OnboardingDateBounds(today)
	if input.LastPeriodDate.After(maxDate) {
		return ErrOnboardingDateInFuture
	}
	if input.LastPeriodDate.Before(minDate) {
		return ErrOnboardingDateTooOld
	}
	return ValidateCycleSettings(input.CycleLength, input.PeriodLength)
}

// ValidateCycleSettings checks a configured cycle and period length pair.
func ValidateCycleSettings(cycleLength int, periodLength int) error {
	if cycleLength < MinCycleLength || cycleLength > MaxCycleLength {
		return ErrInvalidCycleLength
	}
	if periodLength < MinPeriodLength || periodLength > MaxPeriodLength {
		return ErrInvalidPeriodLength
	}
	if cycleLength-periodLength < minFollicularGapLength {
		return ErrPeriodTooLongForCycle
	}
	return nil
}

// Complete stores the profile and seeds the history with the last period. The
// seed ends periodLength days after it started, or stays open when that end
// has not been reached yet.
func (service *OnboardingService) Complete(input OnboardingInput, today cycle.Date) (models.Profile, error) {
	if err := ValidateOnboardingInput(input, today); err != nil {
		return models.Profile{}, err
	}

	profile, err := service.profile.Load()
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}

	lastPeriod := input.LastPeriodDate.String()
	if name := SanitizeText(input.Name, maxProfileNameLength); name != "" {
		profile.Name = name
	}
	profile.LastPeriodDate = &lastPeriod
	profile.AverageCycleLength = input.CycleLength
	profile.AveragePeriodLength = input.PeriodLength

	seed := cycle.Period{
		ID:    newRecordID(),
		Start: input.LastPeriodDate,
		Flow:  cycle.FlowMedium,
	}
	if end := input.LastPeriodDate.AddDays(input.PeriodLength); !end.After(today) {
		seed.End = cycle.Some(end)
	}
	seedRow := periodModelFrom(seed, "")

	if err := service.data.CompleteOnboarding(profile, &seedRow, input.NotificationsEnabled); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrOnboardingSaveFailed, err)
	}
	profile.OnboardingCompleted = true
	return profile, nil
}
