package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/db"
	"github.com/terraincognita07/ciclo/internal/services"
)

type backupBuilder interface {
	BuildBackup(now time.Time) (services.Backup, error)
}

type backupRestorer interface {
	RestoreBackup(backup services.Backup, today cycle.Date) error
}

func openExportService(dbPath string) (*services.ExportService, error) {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	repositories := db.NewRepositories(database)
	return services.NewExportService(
		repositories.Periods,
		repositories.DailyLogs,
		repositories.Reminders,
		repositories.Profile,
		repositories.Settings,
		repositories.Data,
	), nil
}

// RunExportCommand writes the JSON backup to outputPath, or to stdout when
// outputPath is "-".
func RunExportCommand(dbPath string, outputPath string, now time.Time) error {
	if outputPath == "" {
		return errors.New("output file is required")
	}
	exporter, err := openExportService(dbPath)
	if err != nil {
		return err
	}

	if outputPath == "-" {
		return writeBackup(exporter, os.Stdout, now)
	}

	file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	if err := writeBackup(exporter, file, now); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close backup file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✅ Backup written to %s\n", outputPath)
	return nil
}

func writeBackup(exporter backupBuilder, out io.Writer, now time.Time) error {
	backup, err := exporter.BuildBackup(now)
	if err != nil {
		return fmt.Errorf("build backup: %w", err)
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// RunImportCommand replaces all stored data with the backup at inputPath.
func RunImportCommand(dbPath string, inputPath string, today cycle.Date) error {
	if inputPath == "" {
		return errors.New("input file is required")
	}
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer file.Close()

	restorer, err := openExportService(dbPath)
	if err != nil {
		return err
	}
	if err := readBackup(restorer, file, today); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "✅ Backup restored from %s\n", inputPath)
	return nil
}

func readBackup(restorer backupRestorer, input io.Reader, today cycle.Date) error {
	var backup services.Backup
	if err := json.NewDecoder(input).Decode(&backup); err != nil {
		return fmt.Errorf("decode backup: %w", err)
	}
	if err := restorer.RestoreBackup(backup, today); err != nil {
		var recordErr *cycle.RecordError
		if errors.As(err, &recordErr) {
			return fmt.Errorf("backup rejected: %w", recordErr)
		}
		return fmt.Errorf("restore backup: %w", err)
	}
	return nil
}
