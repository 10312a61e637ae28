package api

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/services"
)

const (
	exportKindPeriods   = "periods"
	exportKindDailyLogs = "daily-logs"
)

func buildExportFilename(now time.Time, kind string, extension string) string {
	return fmt.Sprintf("ciclo-%s-%s.%s", kind, now.Format("2006-01-02"), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	now := handler.localNow()
	backup, err := handler.exportService.BuildBackup(now)
	if err != nil {
		return serviceError(c, err, "failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSONCharsetUTF8, buildExportFilename(now, "backup", "json"))
	return c.JSON(backup)
}

// ExportCSV writes periods by default; ?kind=daily-logs exports the journal,
// optionally limited with ?from= and ?to=.
func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	kind := c.Query("kind", exportKindPeriods)
	var output bytes.Buffer

	switch kind {
	case exportKindPeriods:
		if err := handler.exportService.WritePeriodsCSV(&output); err != nil {
			return serviceError(c, err, "failed to build export")
		}
	case exportKindDailyLogs:
		exportRange, err := services.ParseExportRange(c.Query("from"), c.Query("to"))
		if err != nil {
			return serviceError(c, err, "invalid range")
		}
		if err := handler.exportService.WriteDailyLogsCSV(&output, exportRange); err != nil {
			return serviceError(c, err, "failed to build export")
		}
	default:
		return apiError(c, fiber.StatusBadRequest, "invalid export kind")
	}

	setExportAttachmentHeaders(c, "text/csv; charset=utf-8", buildExportFilename(handler.localNow(), kind, "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ImportBackup(c *fiber.Ctx) error {
	today, err := handler.requestToday(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	var backup services.Backup
	if err := decodeJSON(c, &backup); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid backup file")
	}
	if err := handler.exportService.RestoreBackup(backup, today); err != nil {
		return serviceError(c, err, "failed to restore backup")
	}
	return c.JSON(fiber.Map{
		"periods":   len(backup.Periods),
		"dailyLogs": len(backup.DailyLogs),
		"reminders": len(backup.Reminders),
	})
}
