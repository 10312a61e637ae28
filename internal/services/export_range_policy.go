package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/ciclo/internal/cycle"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ExportRange bounds a CSV export. Unset ends are open.
type ExportRange struct {
	From cycle.Option[cycle.Date]
	To   cycle.Option[cycle.Date]
}

func (r ExportRange) Contains(date cycle.Date) bool {
	if from, ok := r.From.Get(); ok && date.Before(from) {
		return false
	}
	if to, ok := r.To.Get(); ok && date.After(to) {
		return false
	}
	return true
}

func ParseExportRange(rawFrom string, rawTo string) (ExportRange, error) {
	result := ExportRange{}

	if fromRaw := strings.TrimSpace(rawFrom); fromRaw != "" {
		from, err := cycle.ParseDate(fromRaw)
		if err != nil {
			return ExportRange{}, ErrExportFromDateInvalid
		}
		result.From = cycle.Some(from)
	}
	if toRaw := strings.TrimSpace(rawTo); toRaw != "" {
		to, err := cycle.ParseDate(toRaw)
		if err != nil {
			return ExportRange{}, ErrExportToDateInvalid
		}
		result.To = cycle.Some(to)
	}

	from, hasFrom := result.From.Get()
	to, hasTo := result.To.Get()
	if hasFrom && hasTo && to.Before(from) {
		return ExportRange{}, ErrExportRangeInvalid
	}
	return result, nil
}
