package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")
	api.Get("/home", handler.GetHome)
	api.Get("/calendar", handler.GetCalendar)
	api.Get("/stats", handler.GetStats)
	api.Get("/symptoms", handler.GetSymptoms)

	days := api.Group("/days")
	days.Get("", handler.ListDays)
	days.Get("/:date", handler.GetDay)
	days.Put("/:date", handler.UpsertDay)
	days.Delete("/:date", handler.DeleteDay)

	periods := api.Group("/periods")
	periods.Get("", handler.ListPeriods)
	periods.Post("", handler.CreatePeriod)
	periods.Post("/log", handler.LogPeriod)
	periods.Patch("/:id", handler.UpdatePeriod)
	periods.Delete("/:id", handler.DeletePeriod)

	reminders := api.Group("/reminders")
	reminders.Get("", handler.ListReminders)
	reminders.Post("", handler.CreateReminder)
	reminders.Patch("/:id", handler.UpdateReminder)
	reminders.Post("/:id/toggle", handler.ToggleReminder)
	reminders.Delete("/:id", handler.DeleteReminder)

	onboarding := api.Group("/onboarding")
	onboarding.Get("", handler.GetOnboarding)
	onboarding.Post("", handler.CompleteOnboarding)

	settings := api.Group("/settings")
	settings.Get("", handler.GetSettings)
	settings.Patch("", handler.UpdateSettings)
	settings.Get("/profile", handler.GetProfile)
	settings.Patch("/profile", handler.UpdateProfile)
	settings.Post("/pin", handler.SetPIN)
	settings.Post("/pin/verify", handler.VerifyPIN)
	settings.Delete("/pin", handler.DisablePIN)
	settings.Post("/clear-data", handler.ClearAllData)

	export := api.Group("/export")
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)
	api.Post("/import", handler.ImportBackup)

	adsGroup := api.Group("/ads")
	adsGroup.Get("/:placement", handler.GetAdDecision)
	adsGroup.Post("/impression", handler.RecordAdImpression)
	adsGroup.Post("/reset", handler.ResetAdSession)
}
