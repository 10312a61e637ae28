package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/security"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPINLength = security.MinPINLength
	maxPINLength = security.MaxPINLength
)

var (
	ErrInvalidPIN   = errors.New("pin must be 4 to 8 digits")
	ErrPINNotSet    = errors.New("pin lock is not enabled")
	ErrPINIncorrect = errors.New("incorrect pin")
)

func ValidatePIN(raw string) error {
	pin := strings.TrimSpace(raw)
	if len(pin) < minPINLength || len(pin) > maxPINLength {
		return ErrInvalidPIN
	}
	for _, char := range pin {
		if char < '0' || char > '9' {
			return ErrInvalidPIN
		}
	}
	return nil
}

func HashPIN(raw string) (string, error) {
	if err := ValidatePIN(raw); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(raw)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(hash), nil
}

// EnablePINLock turns on the PIN app lock with hash.
func EnablePINLock(settings *models.Settings, hash string) {
	settings.SecurityEnabled = true
	settings.SecurityType = models.SecurityTypePIN
	settings.PINHash = hash
}

func DisableSecurityLock(settings *models.Settings) {
	settings.SecurityEnabled = false
	settings.SecurityType = ""
	settings.PINHash = ""
}

func (service *SettingsService) SetPIN(pin string) error {
	hash, err := HashPIN(pin)
	if err != nil {
		return err
	}
	settings, err := service.Load()
	if err != nil {
		return err
	}
	EnablePINLock(&settings, hash)
	if err := service.settings.Save(&settings); err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsSaveFailed, err)
	}
	return nil
}

func (service *SettingsService) VerifyPIN(pin string) error {
	settings, err := service.Load()
	if err != nil {
		return err
	}
	if !settings.SecurityEnabled || settings.SecurityType != models.SecurityTypePIN || settings.PINHash == "" {
		return ErrPINNotSet
	}
	if bcrypt.CompareHashAndPassword([]byte(settings.PINHash), []byte(strings.TrimSpace(pin))) != nil {
		return ErrPINIncorrect
	}
	return nil
}

func (service *SettingsService) DisableSecurity() error {
	settings, err := service.Load()
	if err != nil {
		return err
	}
	DisableSecurityLock(&settings)
	if err := service.settings.Save(&settings); err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsSaveFailed, err)
	}
	return nil
}
