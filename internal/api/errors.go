package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/services"
)

var badRequestErrors = []error{
	cycle.ErrInvalidDate,
	cycle.ErrMissingStartDate,
	cycle.ErrEndBeforeStart,
	cycle.ErrInvalidFlow,
	services.ErrPeriodEndBeforeStart,
	services.ErrPeriodInFuture,
	services.ErrDayInFuture,
	services.ErrInvalidMood,
	services.ErrInvalidSymptom,
	services.ErrInvalidDayLogFlow,
	services.ErrDayLogInputMissing,
	services.ErrInvalidReminderType,
	services.ErrInvalidReminderFrequency,
	services.ErrInvalidReminderTime,
	services.ErrReminderTitleRequired,
	services.ErrOnboardingDateRequired,
	services.ErrOnboardingDateInFuture,
	services.ErrOnboardingDateTooOld,
	services.ErrInvalidCycleLength,
	services.ErrInvalidPeriodLength,
	services.ErrPeriodTooLongForCycle,
	services.ErrInvalidTheme,
	services.ErrInvalidLanguage,
	services.ErrInvalidProfileAge,
	services.ErrInvalidProfileWeight,
	services.ErrInvalidProfileHeight,
	services.ErrInvalidPIN,
	services.ErrExportFromDateInvalid,
	services.ErrExportToDateInvalid,
	services.ErrExportRangeInvalid,
	services.ErrDuplicateRecordID,
	services.ErrDuplicateLogDate,
}

var notFoundErrors = []error{
	services.ErrPeriodNotFound,
	services.ErrDayLogNotFound,
	services.ErrReminderNotFound,
}

var conflictErrors = []error{
	services.ErrActivePeriodExists,
	services.ErrNoActivePeriod,
	services.ErrPeriodOverlap,
	services.ErrPINNotSet,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// errorStatus maps a service error to an HTTP status. Validation messages are
// returned as-is; anything unrecognised is a storage failure and is reported
// with fallback.
func errorStatus(err error, fallback string) (int, string) {
	var recordErr *cycle.RecordError
	switch {
	case errors.As(err, &recordErr):
		return fiber.StatusBadRequest, recordErr.Error()
	case isAny(err, notFoundErrors):
		return fiber.StatusNotFound, err.Error()
	case isAny(err, conflictErrors):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrPINIncorrect):
		return fiber.StatusUnauthorized, err.Error()
	case isAny(err, badRequestErrors):
		return fiber.StatusBadRequest, err.Error()
	default:
		return fiber.StatusInternalServerError, fallback
	}
}

func serviceError(c *fiber.Ctx, err error, fallback string) error {
	status, message := errorStatus(err, fallback)
	if status == fiber.StatusInternalServerError {
		log.Printf("api: %s %s: %v", c.Method(), c.Path(), err)
	}
	return apiError(c, status, message)
}
