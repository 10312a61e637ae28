package cycle

import (
	"fmt"
	"strings"
)

type Flow string

const (
	FlowUnset  Flow = ""
	FlowLight  Flow = "light"
	FlowMedium Flow = "medium"
	FlowHeavy  Flow = "heavy"
)

func ParseFlow(raw string) (Flow, error) {
	switch Flow(strings.ToLower(strings.TrimSpace(raw))) {
	case FlowUnset:
		return FlowUnset, nil
	case FlowLight:
		return FlowLight, nil
	case FlowMedium:
		return FlowMedium, nil
	case FlowHeavy:
		return FlowHeavy, nil
	default:
		return FlowUnset, fmt.Errorf("%w: %q", ErrInvalidFlow, raw)
	}
}

// Period is one recorded menstrual period. A period without End is still ongoing.
type Period struct {
	ID    string       `json:"id"`
	Start Date         `json:"startDate"`
	End   Option[Date] `json:"endDate"`
	Flow  Flow         `json:"flow,omitempty"`
}

func (p Period) Completed() bool {
	return p.End.IsSome()
}

// Length is End - Start in days, defined only for completed periods.
func (p Period) Length() Option[int] {
	end, ok := p.End.Get()
	if !ok {
		return None[int]()
	}
	return Some(end.DaysSince(p.Start))
}

// EffectiveEnd is the recorded end, or Start plus the average period length for
// a period that has not been ended yet.
func (p Period) EffectiveEnd(averagePeriodLength int) Date {
	if end, ok := p.End.Get(); ok {
		return end
	}
	return p.Start.AddDays(averagePeriodLength)
}

// PeriodRecord is the string form of a period as it crosses storage and import boundaries.
type PeriodRecord struct {
	ID        string `json:"id"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
	Flow      string `json:"flow,omitempty"`
}

// ParsePeriodRecord converts a record into a Period, failing on the first invalid
// field. An end date earlier than the start date is rejected here so the engine
// never sees one.
func ParsePeriodRecord(record PeriodRecord) (Period, error) {
	if strings.TrimSpace(record.StartDate) == "" {
		return Period{}, &RecordError{RecordID: record.ID, Field: "startDate", Err: ErrMissingStartDate}
	}
	start, err := ParseDate(record.StartDate)
	if err != nil {
		return Period{}, &RecordError{RecordID: record.ID, Field: "startDate", Value: record.StartDate, Err: ErrInvalidDate}
	}

	period := Period{ID: record.ID, Start: start}
	if strings.TrimSpace(record.EndDate) != "" {
		end, err := ParseDate(record.EndDate)
		if err != nil {
			return Period{}, &RecordError{RecordID: record.ID, Field: "endDate", Value: record.EndDate, Err: ErrInvalidDate}
		}
		if end.Before(start) {
			return Period{}, &RecordError{RecordID: record.ID, Field: "endDate", Value: record.EndDate, Err: ErrEndBeforeStart}
		}
		period.End = Some(end)
	}

	flow, err := ParseFlow(record.Flow)
	if err != nil {
		return Period{}, &RecordError{RecordID: record.ID, Field: "flow", Value: record.Flow, Err: ErrInvalidFlow}
	}
	period.Flow = flow
	return period, nil
}

func ParsePeriodRecords(records []PeriodRecord) ([]Period, error) {
	periods := make([]Period, 0, len(records))
	for _, record := range records {
		period, err := ParsePeriodRecord(record)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, nil
}

func (p Period) Record() PeriodRecord {
	record := PeriodRecord{
		ID:        p.ID,
		StartDate: p.Start.String(),
		Flow:      string(p.Flow),
	}
	if end, ok := p.End.Get(); ok {
		record.EndDate = end.String()
	}
	return record
}
