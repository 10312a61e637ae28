// Package cycle derives cycle statistics and predictions from a history of
// recorded periods. Every function is pure: inputs are never mutated, nothing
// is cached between calls and "today" is always an explicit argument.
package cycle

import (
	"math"
	"sort"
)

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5

	// MaxValidCycleLength is the exclusive ceiling for a start-to-start gap to
	// count towards the average. Longer gaps usually mean a missed log.
	MaxValidCycleLength = 45

	// LutealPhaseDays and FertileDaysBeforeOvulation are fixed modelling
	// simplifications: ovulation is 14 days before the next period and the
	// fertile window opens 5 days before it.
	LutealPhaseDays            = 14
	FertileDaysBeforeOvulation = 5
)

type Phase string

const (
	PhasePeriod    Phase = "period"
	PhaseFertile   Phase = "fertile"
	PhaseOvulation Phase = "ovulation"
	PhaseNormal    Phase = "normal"
)

type PhaseInfo struct {
	Phase      Phase `json:"phase"`
	DayOfCycle int   `json:"dayOfCycle"`
}

// Window is an inclusive date range.
type Window struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

func (w Window) Contains(date Date) bool {
	return !date.Before(w.Start) && !date.After(w.End)
}

func sortedByStart(periods []Period) []Period {
	sorted := make([]Period, len(periods))
	copy(sorted, periods)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	return sorted
}

func roundedMean(total int, count int) int {
	return int(math.Round(float64(total) / float64(count)))
}

func AverageCycleLength(periods []Period) int {
	if len(periods) < 2 {
		return DefaultCycleLength
	}

	lengths := CycleLengths(periods)
	if len(lengths) == 0 {
		return DefaultCycleLength
	}

	total := 0
	for _, length := range lengths {
		total += length
	}
	return roundedMean(total, len(lengths))
}

// AveragePeriodLength averages End - Start over completed periods. Unlike cycle
// lengths no outliers are dropped.
func AveragePeriodLength(periods []Period) int {
	total := 0
	count := 0
	for _, period := range periods {
		length, ok := period.Length().Get()
		if !ok {
			continue
		}
		total += length
		count++
	}
	if count == 0 {
		return DefaultPeriodLength
	}
	return roundedMean(total, count)
}

// CurrentPeriod returns the first period, in input order, that has no end date.
// Callers guarantee there is at most one; if not, the first one wins.
func CurrentPeriod(periods []Period) Option[Period] {
	for _, period := range periods {
		if !period.Completed() {
			return Some(period)
		}
	}
	return None[Period]()
}

func LastCompletedPeriod(periods []Period) Option[Period] {
	var latest Period
	found := false
	for _, period := range periods {
		if !period.Completed() {
			continue
		}
		if !found || period.Start.After(latest.Start) {
			latest = period
			found = true
		}
	}
	if !found {
		return None[Period]()
	}
	return Some(latest)
}

// cycleAnchor is the start of the active period, or else of the most recent
// completed period.
func cycleAnchor(periods []Period) (Date, bool, bool) {
	if active, ok := CurrentPeriod(periods).Get(); ok {
		return active.Start, true, true
	}
	if last, ok := LastCompletedPeriod(periods).Get(); ok {
		return last.Start, false, true
	}
	return Date{}, false, false
}

// CurrentCycleDay is 1-based. During an active period it keeps counting past
// averageCycleLength. Otherwise the day wraps every averageCycleLength days from
// the last completed period. A reference date before the anchor is projected
// backwards with the same wrap so the result is never below 1.
func CurrentCycleDay(periods []Period, averageCycleLength int, referenceDate Date) int {
	anchor, active, ok := cycleAnchor(periods)
	if !ok {
		return 1
	}

	modulus := averageCycleLength
	if modulus <= 0 {
		modulus = DefaultCycleLength
	}

	elapsed := referenceDate.DaysSince(anchor)
	if active && elapsed >= 0 {
		return elapsed + 1
	}
	return euclideanMod(elapsed, modulus) + 1
}

func euclideanMod(value int, modulus int) int {
	result := value % modulus
	if result < 0 {
		result += modulus
	}
	return result
}

func PredictNextPeriodDate(periods []Period, averageCycleLength int) Option[Date] {
	anchor, _, ok := cycleAnchor(periods)
	if !ok {
		return None[Date]()
	}
	return Some(anchor.AddDays(averageCycleLength))
}

func PredictOvulationDate(periods []Period, averageCycleLength int) Option[Date] {
	next, ok := PredictNextPeriodDate(periods, averageCycleLength).Get()
	if !ok {
		return None[Date]()
	}
	return Some(next.AddDays(-LutealPhaseDays))
}

func FertileWindow(periods []Period, averageCycleLength int) Option[Window] {
	ovulation, ok := PredictOvulationDate(periods, averageCycleLength).Get()
	if !ok {
		return None[Window]()
	}
	return Some(Window{
		Start: ovulation.AddDays(-FertileDaysBeforeOvulation),
		End:   ovulation,
	})
}

func DaysUntilNextPeriod(periods []Period, averageCycleLength int, referenceDate Date) int {
	return daysUntil(PredictNextPeriodDate(periods, averageCycleLength), referenceDate)
}

func DaysUntilOvulation(periods []Period, averageCycleLength int, referenceDate Date) int {
	return daysUntil(PredictOvulationDate(periods, averageCycleLength), referenceDate)
}

func daysUntil(target Option[Date], referenceDate Date) int {
	date, ok := target.Get()
	if !ok {
		return 0
	}
	return max(0, date.DaysSince(referenceDate))
}

func IsInFertileWindow(periods []Period, averageCycleLength int, referenceDate Date) bool {
	window, ok := FertileWindow(periods, averageCycleLength).Get()
	if !ok {
		return false
	}
	return window.Contains(referenceDate)
}

// OvulationCycleDay is the 1-based cycle day on which ovulation is expected.
// It is the day PredictOvulationDate lands on, counted from the cycle start:
// start + (L - 14) days is cycle day L - 14 + 1. Using L - 14 as the cycle day
// would mark the day before the predicted ovulation date.
func OvulationCycleDay(averageCycleLength int) int {
	return averageCycleLength - LutealPhaseDays + 1
}

// PhaseForDate classifies date. Recorded periods take precedence: an unended
// period is assumed to last averagePeriodLength days. Outside a period the cycle
// day decides between ovulation, the fertile days before it and normal days.
func PhaseForDate(date Date, periods []Period, averageCycleLength int, averagePeriodLength int) PhaseInfo {
	for _, period := range periods {
		if date.Before(period.Start) || date.After(period.EffectiveEnd(averagePeriodLength)) {
			continue
		}
		return PhaseInfo{Phase: PhasePeriod, DayOfCycle: date.DaysSince(period.Start) + 1}
	}

	cycleDay := CurrentCycleDay(periods, averageCycleLength, date)
	ovulationDay := OvulationCycleDay(averageCycleLength)

	switch {
	case cycleDay == ovulationDay:
		return PhaseInfo{Phase: PhaseOvulation, DayOfCycle: cycleDay}
	case cycleDay >= ovulationDay-FertileDaysBeforeOvulation && cycleDay < ovulationDay:
		return PhaseInfo{Phase: PhaseFertile, DayOfCycle: cycleDay}
	default:
		return PhaseInfo{Phase: PhaseNormal, DayOfCycle: cycleDay}
	}
}
