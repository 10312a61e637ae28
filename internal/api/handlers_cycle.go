package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/services"
)

type homeLabels struct {
	Greeting string `json:"greeting"`
	Status   string `json:"status"`
	Phase    string `json:"phase"`
}

type homeResponse struct {
	services.HomeView
	Labels homeLabels `json:"labels"`
}

func (handler *Handler) GetHome(c *fiber.Ctx) error {
	today, err := handler.requestToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	home, err := handler.cycleService.Home(today, handler.localNow().Hour())
	if err != nil {
		return serviceError(c, err, "failed to load home")
	}

	return c.JSON(homeResponse{
		HomeView: home,
		Labels: homeLabels{
			Greeting: handler.translate(c, home.Greeting),
			Status:   handler.translate(c, "status."+string(home.Status)),
			Phase:    handler.translate(c, "phase."+string(home.Today.Phase)),
		},
	})
}

type calendarResponse struct {
	services.CalendarMonth
	Legend map[cycle.Phase]string `json:"legend"`
}

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	today, err := handler.requestToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	month := today.FirstOfMonth()
	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid month")
		}
		month = cycle.NewDate(parsed.Year(), parsed.Month(), 1)
	}

	calendar, err := handler.cycleService.CalendarMonth(month, today)
	if err != nil {
		return serviceError(c, err, "failed to load calendar")
	}

	legend := make(map[cycle.Phase]string, 4)
	for _, phase := range []cycle.Phase{cycle.PhasePeriod, cycle.PhaseFertile, cycle.PhaseOvulation, cycle.PhaseNormal} {
		legend[phase] = handler.translate(c, "phase."+string(phase))
	}
	return c.JSON(calendarResponse{CalendarMonth: calendar, Legend: legend})
}

type statsResponse struct {
	services.StatsOverview
	RegularityLabel string `json:"regularityLabel"`
}

func (handler *Handler) GetStats(c *fiber.Ctx) error {
	overview, err := handler.statsService.Overview()
	if err != nil {
		return serviceError(c, err, "failed to load stats")
	}
	return c.JSON(statsResponse{
		StatsOverview:   overview,
		RegularityLabel: handler.translate(c, "regularity."+string(overview.Regularity)),
	})
}

func (handler *Handler) GetSymptoms(c *fiber.Ctx) error {
	language := handler.currentLanguage(c)
	frequencies, err := handler.symptomService.Frequencies(language)
	if err != nil {
		return serviceError(c, err, "failed to load symptoms")
	}
	return c.JSON(fiber.Map{
		"symptoms":    handler.symptomService.ListSymptoms(language),
		"frequencies": frequencies,
	})
}
