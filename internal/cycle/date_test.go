package cycle

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	parsed, err := ParseDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("expected leap day to parse, got %v", err)
	}
	if parsed.Year() != 2024 || parsed.Month() != time.February || parsed.Day() != 29 {
		t.Fatalf("expected 2024-02-29, got %s", parsed)
	}

	for _, raw := range []string{"", "2023-02-29", "29/02/2024", "2024-1-5", "2024-01-05T10:00:00Z"} {
		if _, err := ParseDate(raw); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", raw, err)
		}
	}
}

func TestDaysSinceAcrossDSTAndYears(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from string
		to   string
		want int
	}{
		{from: "2024-03-09", to: "2024-03-11", want: 2},
		{from: "2024-10-26", to: "2024-10-28", want: 2},
		{from: "2023-12-31", to: "2024-01-01", want: 1},
		{from: "2024-01-01", to: "2025-01-01", want: 366},
		{from: "2024-01-10", to: "2024-01-01", want: -9},
		{from: "1900-01-01", to: "2199-12-31", want: 109572},
		{from: "2199-12-31", to: "1900-01-01", want: -109572},
	}
	for _, testCase := range cases {
		got := MustParseDate(testCase.to).DaysSince(MustParseDate(testCase.from))
		if got != testCase.want {
			t.Fatalf("expected %s - %s = %d, got %d", testCase.to, testCase.from, testCase.want, got)
		}
	}

	if got := NewDate(2024, time.January, 1).DaysSince(NewDate(1700, time.January, 1)); got != 118338 {
		t.Fatalf("expected 118338 days since 1700-01-01, got %d", got)
	}
}

func TestParseDateRejectsYearsBeforeMinYear(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"0001-01-01", "1899-12-31"} {
		if _, err := ParseDate(raw); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", raw, err)
		}
	}

	earliest, err := ParseDate("1900-01-01")
	if err != nil {
		t.Fatalf("expected 1900-01-01 to parse, got %v", err)
	}
	encoded, err := json.Marshal(struct {
		StartDate Date `json:"startDate"`
	}{StartDate: earliest})
	if err != nil {
		t.Fatalf("marshal date: %v", err)
	}
	if string(encoded) != `{"startDate":"1900-01-01"}` {
		t.Fatalf("expected earliest date to survive encoding, got %s", encoded)
	}

	var decoded Date
	if err := json.Unmarshal([]byte(`"0001-01-01"`), &decoded); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate when decoding year 1, got %v", err)
	}
}

func TestDateOfUsesLocalCalendarDay(t *testing.T) {
	t.Parallel()

	location := time.FixedZone("UTC-5", -5*60*60)
	lateEvening := time.Date(2024, time.March, 10, 23, 30, 0, 0, location)
	if got := DateOf(lateEvening).String(); got != "2024-03-10" {
		t.Fatalf("expected local calendar day 2024-03-10, got %s", got)
	}
	if got := DateOf(lateEvening.UTC()).String(); got != "2024-03-11" {
		t.Fatalf("expected UTC calendar day 2024-03-11, got %s", got)
	}
}

func TestMonthBounds(t *testing.T) {
	t.Parallel()

	date := MustParseDate("2024-02-17")
	if got := date.FirstOfMonth().String(); got != "2024-02-01" {
		t.Fatalf("expected 2024-02-01, got %s", got)
	}
	if got := date.LastOfMonth().String(); got != "2024-02-29" {
		t.Fatalf("expected 2024-02-29, got %s", got)
	}
	if got := MustParseDate("2024-12-31").LastOfMonth().String(); got != "2024-12-31" {
		t.Fatalf("expected 2024-12-31, got %s", got)
	}
}

func TestDateJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Date  Date         `json:"date"`
		Maybe Option[Date] `json:"maybe"`
	}

	encoded, err := json.Marshal(payload{Date: MustParseDate("2024-01-15")})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if string(encoded) != `{"date":"2024-01-15","maybe":null}` {
		t.Fatalf("unexpected json: %s", encoded)
	}

	var decoded payload
	if err := json.Unmarshal([]byte(`{"date":"2024-01-20","maybe":"2024-01-25"}`), &decoded); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if decoded.Date.String() != "2024-01-20" {
		t.Fatalf("expected 2024-01-20, got %s", decoded.Date)
	}
	maybe, ok := decoded.Maybe.Get()
	if !ok || maybe.String() != "2024-01-25" {
		t.Fatalf("expected some 2024-01-25, got %s (ok=%v)", maybe, ok)
	}

	if err := json.Unmarshal([]byte(`{"date":"not-a-date"}`), &decoded); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
