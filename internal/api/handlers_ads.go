package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/ads"
)

type impressionPayload struct {
	Placement string `json:"placement"`
}

func (handler *Handler) GetAdDecision(c *fiber.Ctx) error {
	placement, err := ads.ParsePlacement(c.Params("placement"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(handler.adSession.Decide(placement))
}

// RecordAdImpression counts a shown ad, answering 409 with the decision when
// the placement may not show one now.
func (handler *Handler) RecordAdImpression(c *fiber.Ctx) error {
	var payload impressionPayload
	if err := decodeJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	placement, err := ads.ParsePlacement(payload.Placement)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	decision := handler.adSession.Decide(placement)
	if !decision.Show {
		return c.Status(fiber.StatusConflict).JSON(decision)
	}
	handler.adSession.RecordImpression()
	return c.JSON(handler.adSession.Decide(placement))
}

func (handler *Handler) ResetAdSession(c *fiber.Ctx) error {
	handler.adSession.Reset()
	return c.SendStatus(fiber.StatusNoContent)
}
