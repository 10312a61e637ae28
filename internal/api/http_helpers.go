package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/cycle"
)

var errEmptyBody = errors.New("empty request body")

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// decodeJSON reads the request body with the app's configured decoder. The
// Content-Type header is not required.
func decodeJSON(c *fiber.Ctx, target any) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return errEmptyBody
	}
	return c.App().Config().JSONDecoder(body, target)
}

// requestToday resolves the calendar day a request is evaluated on. Clients
// may pin it with ?today=YYYY-MM-DD.
func (handler *Handler) requestToday(c *fiber.Ctx) (cycle.Date, error) {
	raw := strings.TrimSpace(c.Query("today"))
	if raw == "" {
		return cycle.DateOf(handler.localNow()), nil
	}
	today, err := cycle.ParseDate(raw)
	if err != nil {
		return cycle.Date{}, fmt.Errorf("invalid today date %q", raw)
	}
	return today, nil
}

func (handler *Handler) localNow() time.Time {
	return handler.now().In(handler.location)
}

func parseDateParam(raw string, field string) (cycle.Date, error) {
	date, err := cycle.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return cycle.Date{}, fmt.Errorf("invalid %s", field)
	}
	return date, nil
}

func queryDateOr(c *fiber.Ctx, key string, fallback cycle.Date) (cycle.Date, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback, nil
	}
	return parseDateParam(raw, key)
}

func parseOptionalDate(raw *string, field string) (cycle.Option[cycle.Date], error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return cycle.None[cycle.Date](), nil
	}
	date, err := parseDateParam(*raw, field)
	if err != nil {
		return cycle.None[cycle.Date](), err
	}
	return cycle.Some(date), nil
}
