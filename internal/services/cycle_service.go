package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/models"
)

var ErrProfileLoadFailed = errors.New("load profile failed")

type PeriodLoader interface {
	LoadPeriods() ([]cycle.Period, error)
}

type ProfileReader interface {
	Load() (models.Profile, error)
}

type DayLogReader interface {
	ListRange(from string, to string) ([]models.DailyLog, error)
	FindByDate(date string) (models.DailyLog, bool, error)
}

type HomeStatus string

const (
	StatusPeriodActive  HomeStatus = "period_active"
	StatusFertileWindow HomeStatus = "fertile_window"
	StatusFollicular    HomeStatus = "follicular"
)

type HomeView struct {
	Greeting            string                     `json:"greeting"`
	Status              HomeStatus                 `json:"status"`
	CycleDay            int                        `json:"cycleDay"`
	Today               cycle.PhaseInfo            `json:"today"`
	DaysUntilNextPeriod int                        `json:"daysUntilNextPeriod"`
	DaysUntilOvulation  int                        `json:"daysUntilOvulation"`
	InFertileWindow     bool                       `json:"inFertileWindow"`
	ActivePeriod        cycle.Option[cycle.Period] `json:"activePeriod"`
	NextPeriod          cycle.Option[cycle.Date]   `json:"nextPeriod"`
	Ovulation           cycle.Option[cycle.Date]   `json:"ovulation"`
	FertileWindow       cycle.Option[cycle.Window] `json:"fertileWindow"`
	Averages            cycle.Averages             `json:"averages"`
	OnboardingCompleted bool                       `json:"onboardingCompleted"`
	ProfileName         string                     `json:"profileName,omitempty"`
	ReferenceDate       cycle.Date                 `json:"referenceDate"`
	LastCompletedPeriod cycle.Option[cycle.Period] `json:"lastCompletedPeriod"`
}

type DayDetails struct {
	Date   cycle.Date      `json:"date"`
	Phase  cycle.PhaseInfo `json:"phase"`
	Log    *DayLogView     `json:"log"`
	Future bool            `json:"future"`
}

type CycleService struct {
	periods PeriodLoader
	profile ProfileReader
	logs    DayLogReader
}

func NewCycleService(periods PeriodLoader, profile ProfileReader, logs DayLogReader) *CycleService {
	return &CycleService{
		periods: periods,
		profile: profile,
		logs:    logs,
	}
}

// LoadContext returns the period history together with the averages every
// screen uses: profile values when configured, otherwise computed.
func (service *CycleService) LoadContext() ([]cycle.Period, cycle.Averages, models.Profile, error) {
	periods, err := service.periods.LoadPeriods()
	if err != nil {
		return nil, cycle.Averages{}, models.Profile{}, err
	}
	profile, err := service.profile.Load()
	if err != nil {
		return nil, cycle.Averages{}, models.Profile{}, fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	averages := cycle.ResolveAverages(profile.AverageCycleLength, profile.AveragePeriodLength, periods)
	return periods, averages, profile, nil
}

func (service *CycleService) Home(today cycle.Date, hour int) (HomeView, error) {
	periods, averages, profile, err := service.LoadContext()
	if err != nil {
		return HomeView{}, err
	}

	summary := cycle.Summarize(periods, averages, today)
	return HomeView{
		Greeting:            GreetingKey(hour),
		Status:              homeStatus(summary),
		CycleDay:            summary.CycleDay,
		Today:               summary.Today,
		DaysUntilNextPeriod: summary.DaysUntilNextPeriod,
		DaysUntilOvulation:  summary.DaysUntilOvulation,
		InFertileWindow:     summary.InFertileWindow,
		ActivePeriod:        summary.ActivePeriod,
		NextPeriod:          summary.NextPeriod,
		Ovulation:           summary.Ovulation,
		FertileWindow:       summary.FertileWindow,
		Averages:            averages,
		OnboardingCompleted: profile.OnboardingCompleted,
		ProfileName:         profile.Name,
		ReferenceDate:       today,
		LastCompletedPeriod: summary.LastCompletedPeriod,
	}, nil
}

func homeStatus(summary cycle.Summary) HomeStatus {
	switch {
	case summary.ActivePeriod.IsSome():
		return StatusPeriodActive
	case summary.InFertileWindow:
		return StatusFertileWindow
	default:
		return StatusFollicular
	}
}

// GreetingKey picks the i18n key for the time of day: morning before noon,
// afternoon before 19:00, evening otherwise.
func GreetingKey(hour int) string {
	switch {
	case hour >= 0 && hour < 12:
		return "greeting.morning"
	case hour >= 12 && hour < 19:
		return "greeting.afternoon"
	default:
		return "greeting.evening"
	}
}

func (service *CycleService) DayDetails(date cycle.Date, today cycle.Date) (DayDetails, error) {
	periods, averages, _, err := service.LoadContext()
	if err != nil {
		return DayDetails{}, err
	}

	details := DayDetails{
		Date:   date,
		Phase:  cycle.PhaseForDate(date, periods, averages.CycleLength, averages.PeriodLength),
		Future: date.After(today),
	}

	entry, found, err := service.logs.FindByDate(date.String())
	if err != nil {
		return DayDetails{}, fmt.Errorf("%w: %v", ErrDayLogLoadFailed, err)
	}
	if found {
		view := dayLogViewFrom(entry)
		details.Log = &view
	}
	return details, nil
}
