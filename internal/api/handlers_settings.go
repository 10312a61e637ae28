package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/services"
)

type settingsPayload struct {
	Theme                *string `json:"theme"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
	Language             *string `json:"language"`
}

type profilePayload struct {
	Name                *string  `json:"name"`
	Age                 *int     `json:"age"`
	Weight              *float64 `json:"weight"`
	Height              *float64 `json:"height"`
	AverageCycleLength  *int     `json:"averageCycleLength"`
	AveragePeriodLength *int     `json:"averagePeriodLength"`
}

type pinPayload struct {
	PIN string `json:"pin"`
}

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	settings, err := handler.settingsService.Load()
	if err != nil {
		return serviceError(c, err, "failed to load settings")
	}
	return c.JSON(settingsViewFrom(settings))
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	var payload settingsPayload
	if err := decodeJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	settings, err := handler.settingsService.Update(services.SettingsUpdate{
		Theme:                payload.Theme,
		NotificationsEnabled: payload.NotificationsEnabled,
		Language:             payload.Language,
	})
	if err != nil {
		return serviceError(c, err, "failed to update settings")
	}
	if payload.Language != nil {
		handler.setLanguageCookie(c, settings.Language)
	}
	return c.JSON(settingsViewFrom(settings))
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	profile, err := handler.settingsService.LoadProfile()
	if err != nil {
		return serviceError(c, err, "failed to load profile")
	}
	return c.JSON(profileViewFrom(profile))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	var payload profilePayload
	if err := decodeJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	profile, err := handler.settingsService.UpdateProfile(services.ProfileUpdate{
		Name:                payload.Name,
		Age:                 payload.Age,
		Weight:              payload.Weight,
		Height:              payload.Height,
		AverageCycleLength:  payload.AverageCycleLength,
		AveragePeriodLength: payload.AveragePeriodLength,
	})
	if err != nil {
		return serviceError(c, err, "failed to update profile")
	}
	return c.JSON(profileViewFrom(profile))
}

func (handler *Handler) SetPIN(c *fiber.Ctx) error {
	var payload pinPayload
	if err := decodeJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := handler.settingsService.SetPIN(payload.PIN); err != nil {
		return serviceError(c, err, "failed to save pin")
	}
	handler.pinAttempts.reset(requestLimiterKey(c))
	return c.JSON(fiber.Map{"securityEnabled": true})
}

// VerifyPIN unlocks the app. Repeated wrong PINs from one client are refused
// for pinAttemptWindow.
func (handler *Handler) VerifyPIN(c *fiber.Ctx) error {
	key := requestLimiterKey(c)
	now := handler.now()
	if handler.pinAttempts.blocked(key, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many pin attempts")
	}

	var payload pinPayload
	if err := decodeJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := handler.settingsService.VerifyPIN(payload.PIN); err != nil {
		if errors.Is(err, services.ErrPINIncorrect) {
			handler.pinAttempts.recordFailure(key, now)
		}
		return serviceError(c, err, "failed to verify pin")
	}
	handler.pinAttempts.reset(key)
	return c.JSON(fiber.Map{"unlocked": true})
}

func (handler *Handler) DisablePIN(c *fiber.Ctx) error {
	if err := handler.settingsService.DisableSecurity(); err != nil {
		return serviceError(c, err, "failed to disable pin")
	}
	return c.JSON(fiber.Map{"securityEnabled": false})
}

func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	if err := handler.settingsService.ClearAllData(); err != nil {
		return serviceError(c, err, "failed to clear data")
	}
	handler.adSession.Reset()
	return c.JSON(fiber.Map{"ok": true})
}
