package api

import (
	"net/http"
	"testing"

	"github.com/terraincognita07/ciclo/internal/ads"
)

func TestAdDecisionEndpoints(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	decision := ads.Decision{}
	response := doRequest(t, app, http.MethodGet, "/api/ads/statistics", "")
	expectStatus(t, response, http.StatusOK)
	response.decode(t, &decision)
	if !decision.Show || decision.Reason != ads.ReasonAllowed || decision.Remaining != 3 {
		t.Fatalf("unexpected first decision: %+v", decision)
	}

	response = doRequest(t, app, http.MethodGet, "/api/ads/home", "")
	expectStatus(t, response, http.StatusOK)
	response.decode(t, &decision)
	if decision.Show || decision.Reason != ads.ReasonPlacement {
		t.Fatalf("expected home placement to be refused, got %+v", decision)
	}

	expectStatus(t, doRequest(t, app, http.MethodGet, "/api/ads/banner", ""), http.StatusBadRequest)
}

func TestAdImpressionEndpoints(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	decision := ads.Decision{}
	response := doRequest(t, app, http.MethodPost, "/api/ads/impression", `{"placement":"settings"}`)
	expectStatus(t, response, http.StatusOK)
	response.decode(t, &decision)
	if decision.Impressions != 1 || decision.Remaining != 2 || decision.Show {
		t.Fatalf("unexpected decision after impression: %+v", decision)
	}

	response = doRequest(t, app, http.MethodPost, "/api/ads/impression", `{"placement":"settings"}`)
	expectStatus(t, response, http.StatusConflict)
	response.decode(t, &decision)
	if decision.Reason != ads.ReasonTooSoon || decision.Impressions != 1 {
		t.Fatalf("expected too soon refusal, got %+v", decision)
	}

	expectStatus(t, doRequest(t, app, http.MethodPost, "/api/ads/impression", `{"placement":"nowhere"}`), http.StatusBadRequest)
	expectStatus(t, doRequest(t, app, http.MethodPost, "/api/ads/reset", ""), http.StatusNoContent)

	response = doRequest(t, app, http.MethodGet, "/api/ads/settings", "")
	response.decode(t, &decision)
	if !decision.Show || decision.Impressions != 0 {
		t.Fatalf("expected reset session to allow ads, got %+v", decision)
	}
}
