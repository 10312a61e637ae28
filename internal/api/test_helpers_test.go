package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/ads"
	"github.com/terraincognita07/ciclo/internal/db"
	"github.com/terraincognita07/ciclo/internal/i18n"
)

var testNow = time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "ciclo-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager(i18n.LangEN, i18n.EmbeddedLocales())
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(database, i18nManager, Options{
		Location: time.UTC,
		Now:      func() time.Time { return testNow },
		Ads:      ads.DefaultConfig(),
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

type testResponse struct {
	status  int
	header  http.Header
	cookies []*http.Cookie
	body    []byte
}

func (response testResponse) decode(t *testing.T, target any) {
	t.Helper()
	if err := json.Unmarshal(response.body, target); err != nil {
		t.Fatalf("decode response %s: %v", string(response.body), err)
	}
}

func (response testResponse) errorMessage(t *testing.T) string {
	t.Helper()
	payload := map[string]string{}
	response.decode(t, &payload)
	return payload["error"]
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, body string) testResponse {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Accept-Language", "en")
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	content, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return testResponse{
		status:  response.StatusCode,
		header:  response.Header,
		cookies: response.Cookies(),
		body:    content,
	}
}

func expectStatus(t *testing.T, response testResponse, want int) {
	t.Helper()
	if response.status != want {
		t.Fatalf("expected status %d, got %d: %s", want, response.status, string(response.body))
	}
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie != nil && cookie.Name == name {
			return cookie
		}
	}
	return nil
}
