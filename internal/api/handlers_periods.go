package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/services"
)

type periodPayload struct {
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Flow      string  `json:"flow"`
	Notes     string  `json:"notes"`
}

func (payload periodPayload) toInput() (services.PeriodInput, error) {
	start, err := parseDateParam(payload.StartDate, "startDate")
	if err != nil {
		return services.PeriodInput{}, err
	}
	end, err := parseOptionalDate(payload.EndDate, "endDate")
	if err != nil {
		return services.PeriodInput{}, err
	}
	flow, err := cycle.ParseFlow(payload.Flow)
	if err != nil {
		return services.PeriodInput{}, err
	}
	return services.PeriodInput{Start: start, End: end, Flow: flow, Notes: payload.Notes}, nil
}

type logPeriodPayload struct {
	Date string `json:"date"`
	Flow string `json:"flow"`
}

func (handler *Handler) ListPeriods(c *fiber.Ctx) error {
	periods, err := handler.periodService.LoadPeriods()
	if err != nil {
		return serviceError(c, err, "failed to load periods")
	}
	return c.JSON(fiber.Map{"periods": periods})
}

func (handler *Handler) CreatePeriod(c *fiber.Ctx) error {
	today, err := handler.requestToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload periodPayload
	if err := decodeJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	input, err := payload.toInput()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	period, err := handler.periodService.StartPeriod(input, today)
	if err != nil {
		return serviceError(c, err, "failed to create period")
	}
	return c.Status(fiber.StatusCreated).JSON(period)
}

// LogPeriod is the single "log period" action: it ends the active period or
// starts a new one on the given date (today when omitted).
func (handler *Handler) LogPeriod(c *fiber.Ctx) error {
	today, err := handler.requestToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload logPeriodPayload
	if len(c.Body()) > 0 {
		if err := decodeJSON(c, &payload); err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}

	date := today
	if strings.TrimSpace(payload.Date) != "" {
		date, err = parseDateParam(payload.Date, "date")
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
	}
	flow, err := cycle.ParseFlow(payload.Flow)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := handler.periodService.LogPeriod(date, flow, today)
	if err != nil {
		return serviceError(c, err, "failed to log period")
	}
	return c.JSON(result)
}

func (handler *Handler) UpdatePeriod(c *fiber.Ctx) error {
	today, err := handler.requestToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload periodPayload
	if err := decodeJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	input, err := payload.toInput()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	period, err := handler.periodService.UpdatePeriod(c.Params("id"), input, today)
	if err != nil {
		return serviceError(c, err, "failed to update period")
	}
	return c.JSON(period)
}

func (handler *Handler) DeletePeriod(c *fiber.Ctx) error {
	if err := handler.periodService.DeletePeriod(c.Params("id")); err != nil {
		return serviceError(c, err, "failed to delete period")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
