package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/services"
)

type dayLogPayload struct {
	Mood           *string   `json:"mood"`
	Flow           *string   `json:"flow"`
	Symptoms       *[]string `json:"symptoms"`
	Notes          *string   `json:"notes"`
	SexualActivity *bool     `json:"sexualActivity"`
}

// ListDays returns the logs between ?from= and ?to=, defaulting to the month
// containing today.
func (handler *Handler) ListDays(c *fiber.Ctx) error {
	today, err := handler.requestToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	from, err := queryDateOr(c, "from", today.FirstOfMonth())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	to, err := queryDateOr(c, "to", today.LastOfMonth())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	if to.Before(from) {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	logs, err := handler.dayService.FetchRange(from, to)
	if err != nil {
		return serviceError(c, err, "failed to load days")
	}
	return c.JSON(fiber.Map{"days": logs})
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	date, err := parseDateParam(c.Params("date"), "date")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	today, err := handler.requestToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	details, err := handler.cycleService.DayDetails(date, today)
	if err != nil {
		return serviceError(c, err, "failed to load day")
	}
	return c.JSON(details)
}

func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	date, err := parseDateParam(c.Params("date"), "date")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	today, err := handler.requestToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dayLogPayload
	if err := decodeJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	saved, err := handler.dayService.UpsertLog(date, services.DayLogInput{
		Mood:           payload.Mood,
		Flow:           payload.Flow,
		Symptoms:       payload.Symptoms,
		Notes:          payload.Notes,
		SexualActivity: payload.SexualActivity,
	}, today)
	if err != nil {
		return serviceError(c, err, "failed to save day")
	}
	return c.JSON(saved)
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	date, err := parseDateParam(c.Params("date"), "date")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := handler.dayService.DeleteLog(date); err != nil {
		return serviceError(c, err, "failed to delete day")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
