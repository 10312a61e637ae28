package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/ciclo/internal/db"
	"github.com/terraincognita07/ciclo/internal/security"
	"github.com/terraincognita07/ciclo/internal/services"
)

const temporaryPINLength = 6

type ResetPINOptions struct {
	Disable  bool
	Generate bool
}

type pinLockManager interface {
	SetPIN(pin string) error
	DisableSecurity() error
}

type pinPrompt func(label string) (string, error)

func RunResetPINCommand(dbPath string, options ResetPINOptions) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	repositories := db.NewRepositories(database)
	settings := services.NewSettingsService(repositories.Settings, repositories.Profile, repositories.Data)
	return resetPIN(settings, options, promptPIN, os.Stdout)
}

func resetPIN(manager pinLockManager, options ResetPINOptions, prompt pinPrompt, out io.Writer) error {
	if options.Disable && options.Generate {
		return errors.New("--disable and --generate cannot be combined")
	}

	if options.Disable {
		if err := manager.DisableSecurity(); err != nil {
			return fmt.Errorf("disable pin lock: %w", err)
		}
		fmt.Fprintln(out, "✅ PIN lock disabled")
		return nil
	}

	if options.Generate {
		pin, err := generateTemporaryPIN(temporaryPINLength)
		if err != nil {
			return fmt.Errorf("generate temporary pin: %w", err)
		}
		if err := manager.SetPIN(pin); err != nil {
			return fmt.Errorf("save pin: %w", err)
		}
		fmt.Fprintln(out, "✅ PIN reset successful")
		fmt.Fprintf(out, "Temporary PIN: %s\n", pin)
		return nil
	}

	pin, err := prompt("New PIN (4-8 digits): ")
	if err != nil {
		return err
	}
	if err := services.ValidatePIN(pin); err != nil {
		return errors.New("PIN must be 4 to 8 digits")
	}
	confirmation, err := prompt("Repeat PIN: ")
	if err != nil {
		return err
	}
	if pin != confirmation {
		return errors.New("PINs do not match")
	}

	if err := manager.SetPIN(pin); err != nil {
		return fmt.Errorf("save pin: %w", err)
	}
	fmt.Fprintln(out, "✅ PIN updated")
	return nil
}

func generateTemporaryPIN(length int) (string, error) {
	length = min(max(length, security.MinPINLength), security.MaxPINLength)
	return security.GeneratePIN(length)
}
