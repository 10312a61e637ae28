package cycle

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// MinYear is the earliest year ParseDate accepts. Earlier years are rejected
// so that the zero Date keeps meaning "unset".
const MinYear = 1900

// Date is a calendar day with no time of day. It is stored as midnight UTC so
// differences between two dates are always whole days regardless of DST.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, dayOfMonth int) Date {
	return Date{t: time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of value as observed in value's own location.
func DateOf(value time.Time) Date {
	year, month, dayOfMonth := value.Date()
	return NewDate(year, month, dayOfMonth)
}

// Today is a host-side helper; engine functions never call it.
func Today(location *time.Location) Date {
	if location == nil {
		location = time.Local
	}
	return DateOf(time.Now().In(location))
}

func ParseDate(raw string) (Date, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Date{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	parsed, err := time.ParseInLocation(dateLayout, trimmed, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	if parsed.Year() < MinYear {
		return Date{}, fmt.Errorf("%w: %q is before %d", ErrInvalidDate, raw, MinYear)
	}
	return Date{t: parsed}, nil
}

func MustParseDate(raw string) Date {
	parsed, err := ParseDate(raw)
	if err != nil {
		panic(err)
	}
	return parsed
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) AddDays(days int) Date {
	return Date{t: d.t.AddDate(0, 0, days)}
}

// DaysSince returns d - other in whole days; negative when d is earlier.
// Both values are UTC midnights, so the Unix difference is an exact multiple
// of a day and does not saturate like time.Duration.
func (d Date) DaysSince(other Date) int {
	return int((d.t.Unix() - other.t.Unix()) / secondsPerDay)
}

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

func (d Date) Compare(other Date) int {
	return d.t.Compare(other.t)
}

func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) FirstOfMonth() Date    { return NewDate(d.Year(), d.Month(), 1) }
func (d Date) LastOfMonth() Date     { return d.FirstOfMonth().addMonths(1).AddDays(-1) }
func (d Date) addMonths(n int) Date  { return Date{t: d.t.AddDate(0, n, 0)} }

// In returns midnight of d in location, the form persisted by the storage layer.
func (d Date) In(location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, location)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(raw []byte) error {
	parsed, err := ParseDate(string(raw))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(raw []byte) error {
	if string(raw) == "null" {
		*d = Date{}
		return nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, string(raw))
	}
	return d.UnmarshalText([]byte(text))
}
