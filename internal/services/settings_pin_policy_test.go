package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/ciclo/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func TestValidatePIN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pin   string
		valid bool
	}{
		{pin: "1234", valid: true},
		{pin: "12345678", valid: true},
		{pin: " 4321 ", valid: true},
		{pin: "123", valid: false},
		{pin: "123456789", valid: false},
		{pin: "12a4", valid: false},
		{pin: "", valid: false},
	}

	for _, tt := range tests {
		err := ValidatePIN(tt.pin)
		if tt.valid && err != nil {
			t.Fatalf("ValidatePIN(%q) unexpected error: %v", tt.pin, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidPIN) {
			t.Fatalf("ValidatePIN(%q) expected ErrInvalidPIN, got %v", tt.pin, err)
		}
	}
}

func TestPINLockLifecycle(t *testing.T) {
	t.Parallel()

	service, repo, _, _ := newSettingsServiceForTest()

	if err := service.VerifyPIN("1234"); !errors.Is(err, ErrPINNotSet) {
		t.Fatalf("expected ErrPINNotSet before a pin exists, got %v", err)
	}

	if err := service.SetPIN("2468"); err != nil {
		t.Fatalf("SetPIN() unexpected error: %v", err)
	}
	stored := repo.settings
	if !stored.SecurityEnabled || stored.SecurityType != models.SecurityTypePIN {
		t.Fatalf("expected pin lock enabled, got %+v", stored)
	}
	if stored.PINHash == "2468" || bcrypt.CompareHashAndPassword([]byte(stored.PINHash), []byte("2468")) != nil {
		t.Fatalf("expected bcrypt hash of pin, got %q", stored.PINHash)
	}

	if err := service.VerifyPIN("2468"); err != nil {
		t.Fatalf("VerifyPIN() unexpected error: %v", err)
	}
	if err := service.VerifyPIN("1357"); !errors.Is(err, ErrPINIncorrect) {
		t.Fatalf("expected ErrPINIncorrect, got %v", err)
	}

	if err := service.SetPIN("12"); !errors.Is(err, ErrInvalidPIN) {
		t.Fatalf("expected ErrInvalidPIN, got %v", err)
	}

	if err := service.DisableSecurity(); err != nil {
		t.Fatalf("DisableSecurity() unexpected error: %v", err)
	}
	if repo.settings.SecurityEnabled || repo.settings.PINHash != "" {
		t.Fatalf("expected security disabled, got %+v", repo.settings)
	}
}
