package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/ciclo/internal/ads"
	"github.com/terraincognita07/ciclo/internal/db"
	"github.com/terraincognita07/ciclo/internal/i18n"
	"github.com/terraincognita07/ciclo/internal/services"
	"gorm.io/gorm"
)

type Options struct {
	Location *time.Location
	Now      func() time.Time
	Ads      ads.Config
}

type Handler struct {
	location *time.Location
	now      func() time.Time
	i18n     *i18n.Manager

	cycleService      *services.CycleService
	periodService     *services.PeriodService
	dayService        *services.DayService
	statsService      *services.StatsService
	symptomService    *services.SymptomService
	reminderService   *services.ReminderService
	onboardingService *services.OnboardingService
	settingsService   *services.SettingsService
	exportService     *services.ExportService

	adSession   *ads.Session
	pinAttempts *attemptLimiter
}

func NewHandler(database *gorm.DB, i18nManager *i18n.Manager, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if options.Location == nil {
		options.Location = time.Local
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	handler := &Handler{
		location:    options.Location,
		now:         options.Now,
		i18n:        i18nManager,
		adSession:   ads.NewSession(options.Ads, options.Now),
		pinAttempts: newAttemptLimiter(pinAttemptLimit, pinAttemptWindow),
	}
	return handler.withDependencies(db.NewRepositories(database)), nil
}

func (handler *Handler) withDependencies(repositories *db.Repositories) *Handler {
	handler.periodService = services.NewPeriodService(repositories.Periods)
	handler.cycleService = services.NewCycleService(handler.periodService, repositories.Profile, repositories.DailyLogs)
	handler.dayService = services.NewDayService(repositories.DailyLogs)
	handler.statsService = services.NewStatsService(handler.cycleService, repositories.DailyLogs)
	handler.symptomService = services.NewSymptomService(repositories.DailyLogs, handler.i18n)
	handler.reminderService = services.NewReminderService(repositories.Reminders)
	handler.onboardingService = services.NewOnboardingService(repositories.Profile, repositories.Data)
	handler.settingsService = services.NewSettingsService(repositories.Settings, repositories.Profile, repositories.Data)
	handler.exportService = services.NewExportService(
		repositories.Periods,
		repositories.DailyLogs,
		repositories.Reminders,
		repositories.Profile,
		repositories.Settings,
		repositories.Data,
	)
	return handler
}
