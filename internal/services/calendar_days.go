package services

import (
	"fmt"

	"github.com/terraincognita07/ciclo/internal/cycle"
)

type CalendarDayState struct {
	Date      cycle.Date  `json:"date"`
	Day       int         `json:"day"`
	Phase     cycle.Phase `json:"phase"`
	CycleDay  int         `json:"cycleDay"`
	InMonth   bool        `json:"inMonth"`
	IsToday   bool        `json:"isToday"`
	IsFuture  bool        `json:"isFuture"`
	HasData   bool        `json:"hasData"`
	Predicted bool        `json:"predicted"`
	// ExpectedPeriod marks future days inside the predicted next period.
	ExpectedPeriod bool `json:"expectedPeriod"`
}

type CalendarMonth struct {
	Month         string                     `json:"month"`
	Days          []CalendarDayState         `json:"days"`
	NextPeriod    cycle.Option[cycle.Date]   `json:"nextPeriod"`
	FertileWindow cycle.Option[cycle.Window] `json:"fertileWindow"`
	Averages      cycle.Averages             `json:"averages"`
}

// CalendarMonth builds a Sunday-first grid of whole weeks covering the month
// that contains month.
func (service *CycleService) CalendarMonth(month cycle.Date, today cycle.Date) (CalendarMonth, error) {
	periods, averages, _, err := service.LoadContext()
	if err != nil {
		return CalendarMonth{}, err
	}

	monthStart := month.FirstOfMonth()
	monthEnd := month.LastOfMonth()
	gridStart := monthStart.AddDays(-int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDays(6 - int(monthEnd.Weekday()))

	logs, err := service.logs.ListRange(gridStart.String(), gridEnd.String())
	if err != nil {
		return CalendarMonth{}, fmt.Errorf("%w: %v", ErrDayLogLoadFailed, err)
	}
	hasData := make(map[string]bool, len(logs))
	for _, entry := range logs {
		hasData[entry.Date] = hasData[entry.Date] || DayHasData(entry)
	}

	nextPeriod := cycle.PredictNextPeriodDate(periods, averages.CycleLength)
	expected := cycle.None[cycle.Window]()
	if next, ok := nextPeriod.Get(); ok {
		expected = cycle.Some(cycle.Window{Start: next, End: next.AddDays(averages.PeriodLength - 1)})
	}

	phases := cycle.PhasesBetween(gridStart, gridEnd, periods, averages)
	days := make([]CalendarDayState, 0, len(phases))
	for _, day := range phases {
		state := CalendarDayState{
			Date:      day.Date,
			Day:       day.Date.Day(),
			Phase:     day.Phase,
			CycleDay:  day.DayOfCycle,
			InMonth:   day.Date.Month() == monthStart.Month() && day.Date.Year() == monthStart.Year(),
			IsToday:   day.Date.Equal(today),
			IsFuture:  day.Date.After(today),
			HasData:   hasData[day.Date.String()],
			Predicted: day.Date.After(today) && day.Phase != cycle.PhaseNormal,
		}
		if window, ok := expected.Get(); ok && state.IsFuture && window.Contains(day.Date) {
			state.ExpectedPeriod = true
		}
		days = append(days, state)
	}

	return CalendarMonth{
		Month:         fmt.Sprintf("%04d-%02d", monthStart.Year(), int(monthStart.Month())),
		Days:          days,
		NextPeriod:    nextPeriod,
		FertileWindow: cycle.FertileWindow(periods, averages.CycleLength),
		Averages:      averages,
	}, nil
}
