package services

import (
	"fmt"
	"sort"

	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/models"
)

type DayLogLister interface {
	ListAll() ([]models.DailyLog, error)
}

type CycleHistoryRow struct {
	Start        cycle.Date               `json:"start"`
	End          cycle.Option[cycle.Date] `json:"end"`
	PeriodLength cycle.Option[int]        `json:"periodLength"`
	CycleLength  cycle.Option[int]        `json:"cycleLength"`
}

type FrequencyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type StatsOverview struct {
	Averages      cycle.Averages                  `json:"averages"`
	CycleRange    cycle.Option[cycle.LengthRange] `json:"cycleRange"`
	Regularity    cycle.Regularity                `json:"regularity"`
	TotalPeriods  int                             `json:"totalPeriods"`
	TotalCycles   int                             `json:"totalCycles"`
	LoggedDays    int                             `json:"loggedDays"`
	History       []CycleHistoryRow               `json:"history"`
	SymptomCounts []FrequencyCount                `json:"symptomCounts"`
	MoodCounts    []FrequencyCount                `json:"moodCounts"`
}

type StatsService struct {
	cycles *CycleService
	logs   DayLogLister
}

func NewStatsService(cycles *CycleService, logs DayLogLister) *StatsService {
	return &StatsService{
		cycles: cycles,
		logs:   logs,
	}
}

func (service *StatsService) Overview() (StatsOverview, error) {
	periods, averages, _, err := service.cycles.LoadContext()
	if err != nil {
		return StatsOverview{}, err
	}
	logs, err := service.logs.ListAll()
	if err != nil {
		return StatsOverview{}, fmt.Errorf("%w: %v", ErrDayLogLoadFailed, err)
	}

	loggedDays := 0
	for _, entry := range logs {
		if DayHasData(entry) {
			loggedDays++
		}
	}

	return StatsOverview{
		Averages:      averages,
		CycleRange:    cycle.CycleRange(periods),
		Regularity:    cycle.ClassifyRegularity(periods),
		TotalPeriods:  len(periods),
		TotalCycles:   len(cycle.CycleLengths(periods)),
		LoggedDays:    loggedDays,
		History:       BuildCycleHistory(periods),
		SymptomCounts: countSymptoms(logs),
		MoodCounts:    countMoods(logs),
	}, nil
}

// BuildCycleHistory lists periods newest first. CycleLength is the gap to the
// following period and is only set when that gap counts towards the average.
func BuildCycleHistory(periods []cycle.Period) []CycleHistoryRow {
	sorted := make([]cycle.Period, len(periods))
	copy(sorted, periods)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	rows := make([]CycleHistoryRow, 0, len(sorted))
	for index, period := range sorted {
		row := CycleHistoryRow{
			Start:        period.Start,
			End:          period.End,
			PeriodLength: period.Length(),
		}
		if index+1 < len(sorted) {
			gap := sorted[index+1].Start.DaysSince(period.Start)
			if gap > 0 && gap < cycle.MaxValidCycleLength {
				row.CycleLength = cycle.Some(gap)
			}
		}
		rows = append(rows, row)
	}

	for left, right := 0, len(rows)-1; left < right; left, right = left+1, right-1 {
		rows[left], rows[right] = rows[right], rows[left]
	}
	return rows
}

func countSymptoms(logs []models.DailyLog) []FrequencyCount {
	counts := make(map[string]int)
	for _, entry := range logs {
		for _, symptom := range entry.Symptoms {
			counts[symptom]++
		}
	}
	return sortedCounts(counts)
}

func countMoods(logs []models.DailyLog) []FrequencyCount {
	counts := make(map[string]int)
	for _, entry := range logs {
		if entry.Mood != "" {
			counts[entry.Mood]++
		}
	}
	return sortedCounts(counts)
}

func sortedCounts(counts map[string]int) []FrequencyCount {
	result := make([]FrequencyCount, 0, len(counts))
	for key, count := range counts {
		result = append(result, FrequencyCount{Key: key, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count == result[j].Count {
			return result[i].Key < result[j].Key
		}
		return result[i].Count > result[j].Count
	})
	return result
}
