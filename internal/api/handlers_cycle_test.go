package api

import (
	"net/http"
	"testing"
)

func TestHealthAndNotFound(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	expectStatus(t, doRequest(t, app, http.MethodGet, "/healthz", ""), http.StatusOK)

	missing := doRequest(t, app, http.MethodGet, "/api/nothing-here", "")
	expectStatus(t, missing, http.StatusNotFound)
	if got := missing.errorMessage(t); got != "not found" {
		t.Fatalf("expected not found error, got %q", got)
	}
}

func TestOnboardingThenHome(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	state := struct {
		Completed bool   `json:"completed"`
		MinDate   string `json:"minDate"`
		MaxDate   string `json:"maxDate"`
	}{}
	response := doRequest(t, app, http.MethodGet, "/api/onboarding", "")
	expectStatus(t, response, http.StatusOK)
	response.decode(t, &state)
	if state.Completed || state.MaxDate != "2024-03-10" || state.MinDate != "2023-12-11" {
		t.Fatalf("unexpected onboarding state: %+v", state)
	}

	response = doRequest(t, app, http.MethodPost, "/api/onboarding", `{"name":"Ana","lastPeriodDate":"2024-03-01","cycleLength":28,"periodLength":5}`)
	expectStatus(t, response, http.StatusOK)
	profile := profileView{}
	response.decode(t, &profile)
	if !profile.OnboardingCompleted || profile.LastPeriodDate != "2024-03-01" || profile.AverageCycleLength != 28 {
		t.Fatalf("unexpected profile after onboarding: %+v", profile)
	}

	home := struct {
		CycleDay            int    `json:"cycleDay"`
		NextPeriod          string `json:"nextPeriod"`
		DaysUntilNextPeriod int    `json:"daysUntilNextPeriod"`
		OnboardingCompleted bool   `json:"onboardingCompleted"`
		ProfileName         string `json:"profileName"`
		Labels              homeLabels
	}{}
	response = doRequest(t, app, http.MethodGet, "/api/home", "")
	expectStatus(t, response, http.StatusOK)
	response.decode(t, &home)
	if home.CycleDay != 10 || home.NextPeriod != "2024-03-29" || home.DaysUntilNextPeriod != 19 {
		t.Fatalf("unexpected cycle summary: %+v", home)
	}
	if !home.OnboardingCompleted || home.ProfileName != "Ana" {
		t.Fatalf("expected onboarded profile on home, got %+v", home)
	}
	if home.Labels.Greeting != "Good morning" {
		t.Fatalf("expected english morning greeting, got %q", home.Labels.Greeting)
	}
}

func TestOnboardingValidation(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "missing date", body: `{"cycleLength":28,"periodLength":5}`, want: http.StatusBadRequest},
		{name: "malformed date", body: `{"lastPeriodDate":"03/01/2024"}`, want: http.StatusBadRequest},
		{name: "future date", body: `{"lastPeriodDate":"2024-03-11"}`, want: http.StatusBadRequest},
		{name: "cycle too short", body: `{"lastPeriodDate":"2024-03-01","cycleLength":10,"periodLength":5}`, want: http.StatusBadRequest},
		{name: "not json", body: `nope`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		response := doRequest(t, app, http.MethodPost, "/api/onboarding", tt.body)
		if response.status != tt.want {
			t.Fatalf("%s: expected status %d, got %d: %s", tt.name, tt.want, response.status, string(response.body))
		}
	}
}

func TestHomeRejectsInvalidTodayOverride(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	response := doRequest(t, app, http.MethodGet, "/api/home?today=tomorrow", "")
	expectStatus(t, response, http.StatusBadRequest)
}

func TestCalendarEndpoint(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	calendar := struct {
		Month  string            `json:"month"`
		Days   []map[string]any  `json:"days"`
		Legend map[string]string `json:"legend"`
	}{}

	response := doRequest(t, app, http.MethodGet, "/api/calendar?month=2024-02", "")
	expectStatus(t, response, http.StatusOK)
	response.decode(t, &calendar)
	if len(calendar.Days) != 35 {
		t.Fatalf("expected 35 grid days for February 2024, got %d", len(calendar.Days))
	}
	if calendar.Legend["ovulation"] != "Ovulation" {
		t.Fatalf("expected translated legend, got %v", calendar.Legend)
	}

	expectStatus(t, doRequest(t, app, http.MethodGet, "/api/calendar?month=2024-13", ""), http.StatusBadRequest)
}

func TestStatsUsesRequestLanguage(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	stats := struct {
		Regularity      string `json:"regularity"`
		RegularityLabel string `json:"regularityLabel"`
		TotalPeriods    int    `json:"totalPeriods"`
	}{}

	response := doRequest(t, app, http.MethodGet, "/api/stats?lang=es", "")
	expectStatus(t, response, http.StatusOK)
	response.decode(t, &stats)
	if stats.Regularity != "insufficient_data" || stats.RegularityLabel != "Insuficientes datos" {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	cookie := responseCookie(response.cookies, languageCookieName)
	if cookie == nil || cookie.Value != "es" {
		t.Fatalf("expected language cookie to remember es, got %+v", cookie)
	}
}

func TestSymptomsEndpoint(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	expectStatus(t, doRequest(t, app, http.MethodPut, "/api/days/2024-03-02", `{"symptoms":["cramps","headache"]}`), http.StatusOK)
	expectStatus(t, doRequest(t, app, http.MethodPut, "/api/days/2024-03-03", `{"symptoms":["cramps"]}`), http.StatusOK)

	payload := struct {
		Symptoms []struct {
			Key   string `json:"key"`
			Label string `json:"label"`
		} `json:"symptoms"`
		Frequencies []struct {
			Key       string `json:"key"`
			Count     int    `json:"count"`
			TotalDays int    `json:"totalDays"`
		} `json:"frequencies"`
	}{}
	response := doRequest(t, app, http.MethodGet, "/api/symptoms", "")
	expectStatus(t, response, http.StatusOK)
	response.decode(t, &payload)

	if len(payload.Symptoms) != 10 || payload.Symptoms[0].Label != "Cramps" {
		t.Fatalf("unexpected symptom catalog: %+v", payload.Symptoms)
	}
	if len(payload.Frequencies) != 2 || payload.Frequencies[0].Key != "cramps" || payload.Frequencies[0].Count != 2 || payload.Frequencies[0].TotalDays != 2 {
		t.Fatalf("unexpected frequencies: %+v", payload.Frequencies)
	}
}
