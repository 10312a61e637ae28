package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/services"
)

type reminderPayload struct {
	Type      *string `json:"type"`
	Title     *string `json:"title"`
	Time      *string `json:"time"`
	Frequency *string `json:"frequency"`
	Enabled   *bool   `json:"enabled"`
}

func (payload reminderPayload) toInput() services.ReminderInput {
	return services.ReminderInput{
		Type:      payload.Type,
		Title:     payload.Title,
		Time:      payload.Time,
		Frequency: payload.Frequency,
		Enabled:   payload.Enabled,
	}
}

func (handler *Handler) ListReminders(c *fiber.Ctx) error {
	reminders, err := handler.reminderService.List()
	if err != nil {
		return serviceError(c, err, "failed to load reminders")
	}

	language := handler.currentLanguage(c)
	now := handler.localNow()
	views := make([]reminderView, 0, len(reminders))
	for _, reminder := range reminders {
		views = append(views, handler.reminderViewFrom(language, reminder, now))
	}
	return c.JSON(fiber.Map{"reminders": views})
}

func (handler *Handler) CreateReminder(c *fiber.Ctx) error {
	var payload reminderPayload
	if err := decodeJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	reminder, err := handler.reminderService.Create(payload.toInput())
	if err != nil {
		return serviceError(c, err, "failed to create reminder")
	}
	return c.Status(fiber.StatusCreated).JSON(handler.reminderViewFrom(handler.currentLanguage(c), reminder, handler.localNow()))
}

func (handler *Handler) UpdateReminder(c *fiber.Ctx) error {
	var payload reminderPayload
	if err := decodeJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	reminder, err := handler.reminderService.Update(c.Params("id"), payload.toInput())
	if err != nil {
		return serviceError(c, err, "failed to update reminder")
	}
	return c.JSON(handler.reminderViewFrom(handler.currentLanguage(c), reminder, handler.localNow()))
}

func (handler *Handler) ToggleReminder(c *fiber.Ctx) error {
	reminder, err := handler.reminderService.Toggle(c.Params("id"))
	if err != nil {
		return serviceError(c, err, "failed to update reminder")
	}
	return c.JSON(handler.reminderViewFrom(handler.currentLanguage(c), reminder, handler.localNow()))
}

func (handler *Handler) DeleteReminder(c *fiber.Ctx) error {
	if err := handler.reminderService.Delete(c.Params("id")); err != nil {
		return serviceError(c, err, "failed to delete reminder")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
