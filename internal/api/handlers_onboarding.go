package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/services"
)

type onboardingPayload struct {
	Name                 string `json:"name"`
	LastPeriodDate       string `json:"lastPeriodDate"`
	CycleLength          int    `json:"cycleLength"`
	PeriodLength         int    `json:"periodLength"`
	NotificationsEnabled *bool  `json:"notificationsEnabled"`
}

func (handler *Handler) GetOnboarding(c *fiber.Ctx) error {
	today, err := handler.requestToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	state, err := handler.onboardingService.State(today)
	if err != nil {
		return serviceError(c, err, "failed to load onboarding")
	}
	return c.JSON(state)
}

func (handler *Handler) CompleteOnboarding(c *fiber.Ctx) error {
	today, err := handler.requestToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload onboardingPayload
	if err := decodeJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	input := services.OnboardingInput{
		Name:                 payload.Name,
		CycleLength:          payload.CycleLength,
		PeriodLength:         payload.PeriodLength,
		NotificationsEnabled: true,
	}
	if input.CycleLength == 0 {
		input.CycleLength = models.DefaultCycleLength
	}
	if input.PeriodLength == 0 {
		input.PeriodLength = models.DefaultPeriodLength
	}
	if payload.NotificationsEnabled != nil {
		input.NotificationsEnabled = *payload.NotificationsEnabled
	}
	if strings.TrimSpace(payload.LastPeriodDate) != "" {
		input.LastPeriodDate, err = cycle.ParseDate(payload.LastPeriodDate)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid lastPeriodDate")
		}
	}

	profile, err := handler.onboardingService.Complete(input, today)
	if err != nil {
		return serviceError(c, err, "failed to complete onboarding")
	}
	return c.JSON(profileViewFrom(profile))
}
