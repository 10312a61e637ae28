package cycle

// CycleLengths returns the start-to-start gaps of chronologically consecutive
// periods that fall strictly within (0, MaxValidCycleLength).
func CycleLengths(periods []Period) []int {
	if len(periods) < 2 {
		return []int{}
	}

	sorted := sortedByStart(periods)
	lengths := make([]int, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].Start.DaysSince(sorted[i-1].Start)
		if gap > 0 && gap < MaxValidCycleLength {
			lengths = append(lengths, gap)
		}
	}
	return lengths
}

type LengthRange struct {
	Shortest int `json:"shortest"`
	Longest  int `json:"longest"`
}

func CycleRange(periods []Period) Option[LengthRange] {
	lengths := CycleLengths(periods)
	if len(lengths) == 0 {
		return None[LengthRange]()
	}

	result := LengthRange{Shortest: lengths[0], Longest: lengths[0]}
	for _, length := range lengths[1:] {
		result.Shortest = min(result.Shortest, length)
		result.Longest = max(result.Longest, length)
	}
	return Some(result)
}

type Regularity string

const (
	RegularityInsufficientData  Regularity = "insufficient_data"
	RegularityVeryRegular       Regularity = "very_regular"
	RegularityRegular           Regularity = "regular"
	RegularitySomewhatIrregular Regularity = "somewhat_irregular"
	RegularityIrregular         Regularity = "irregular"
)

// ClassifyRegularity grades the spread between the longest and shortest valid cycle.
// Fewer than three recorded periods is not enough to judge.
func ClassifyRegularity(periods []Period) Regularity {
	if len(periods) < 3 {
		return RegularityInsufficientData
	}

	spread := 0
	if lengths, ok := CycleRange(periods).Get(); ok {
		spread = lengths.Longest - lengths.Shortest
	}

	switch {
	case spread <= 3:
		return RegularityVeryRegular
	case spread <= 7:
		return RegularityRegular
	case spread <= 14:
		return RegularitySomewhatIrregular
	default:
		return RegularityIrregular
	}
}

type Averages struct {
	CycleLength    int  `json:"averageCycleLength"`
	PeriodLength   int  `json:"averagePeriodLength"`
	CycleComputed  bool `json:"cycleFromHistory"`
	PeriodComputed bool `json:"periodFromHistory"`
}

// ResolveAverages prefers lengths configured by the user and falls back to
// values computed from history for any that are unset (zero or negative).
func ResolveAverages(configuredCycleLength int, configuredPeriodLength int, periods []Period) Averages {
	averages := Averages{
		CycleLength:  configuredCycleLength,
		PeriodLength: configuredPeriodLength,
	}
	if averages.CycleLength <= 0 {
		averages.CycleLength = AverageCycleLength(periods)
		averages.CycleComputed = true
	}
	if averages.PeriodLength <= 0 {
		averages.PeriodLength = AveragePeriodLength(periods)
		averages.PeriodComputed = true
	}
	return averages
}

// Summary bundles every metric derived for one reference date.
type Summary struct {
	ReferenceDate       Date           `json:"referenceDate"`
	Averages            Averages       `json:"averages"`
	CycleDay            int            `json:"cycleDay"`
	Today               PhaseInfo      `json:"today"`
	ActivePeriod        Option[Period] `json:"activePeriod"`
	LastCompletedPeriod Option[Period] `json:"lastCompletedPeriod"`
	NextPeriod          Option[Date]   `json:"nextPeriod"`
	Ovulation           Option[Date]   `json:"ovulation"`
	FertileWindow       Option[Window] `json:"fertileWindow"`
	DaysUntilNextPeriod int            `json:"daysUntilNextPeriod"`
	DaysUntilOvulation  int            `json:"daysUntilOvulation"`
	InFertileWindow     bool           `json:"inFertileWindow"`
}

func Summarize(periods []Period, averages Averages, referenceDate Date) Summary {
	cycleLength := averages.CycleLength
	return Summary{
		ReferenceDate:       referenceDate,
		Averages:            averages,
		CycleDay:            CurrentCycleDay(periods, cycleLength, referenceDate),
		Today:               PhaseForDate(referenceDate, periods, cycleLength, averages.PeriodLength),
		ActivePeriod:        CurrentPeriod(periods),
		LastCompletedPeriod: LastCompletedPeriod(periods),
		NextPeriod:          PredictNextPeriodDate(periods, cycleLength),
		Ovulation:           PredictOvulationDate(periods, cycleLength),
		FertileWindow:       FertileWindow(periods, cycleLength),
		DaysUntilNextPeriod: DaysUntilNextPeriod(periods, cycleLength, referenceDate),
		DaysUntilOvulation:  DaysUntilOvulation(periods, cycleLength, referenceDate),
		InFertileWindow:     IsInFertileWindow(periods, cycleLength, referenceDate),
	}
}

type DayPhase struct {
	Date Date `json:"date"`
	PhaseInfo
}

// PhasesBetween classifies every day of the inclusive range [from, to].
func PhasesBetween(from Date, to Date, periods []Period, averages Averages) []DayPhase {
	if to.Before(from) {
		return []DayPhase{}
	}

	result := make([]DayPhase, 0, to.DaysSince(from)+1)
	for current := from; !current.After(to); current = current.AddDays(1) {
		result = append(result, DayPhase{
			Date:      current,
			PhaseInfo: PhaseForDate(current, periods, averages.CycleLength, averages.PeriodLength),
		})
	}
	return result
}
