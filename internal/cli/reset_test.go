package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/terraincognita07/ciclo/internal/services"
)

type pinLockManagerStub struct {
	pin      string
	disabled bool
	err      error
}

func (stub *pinLockManagerStub) SetPIN(pin string) error {
	if stub.err != nil {
		return stub.err
	}
	if err := services.ValidatePIN(pin); err != nil {
		return err
	}
	stub.pin = pin
	return nil
}

func (stub *pinLockManagerStub) DisableSecurity() error {
	if stub.err != nil {
		return stub.err
	}
	stub.disabled = true
	return nil
}

func scriptedPrompt(answers ...string) pinPrompt {
	return func(string) (string, error) {
		if len(answers) == 0 {
			return "", errors.New("unexpected prompt")
		}
		answer := answers[0]
		answers = answers[1:]
		return answer, nil
	}
}

func TestResetPINPromptsTwice(t *testing.T) {
	t.Parallel()

	manager := &pinLockManagerStub{}
	var out bytes.Buffer
	if err := resetPIN(manager, ResetPINOptions{}, scriptedPrompt("2468", "2468"), &out); err != nil {
		t.Fatalf("resetPIN returned error: %v", err)
	}
	if manager.pin != "2468" {
		t.Fatalf("expected pin 2468 to be saved, got %q", manager.pin)
	}
	if !strings.Contains(out.String(), "PIN updated") {
		t.Fatalf("expected confirmation output, got %q", out.String())
	}
}

func TestResetPINRejectsMismatchAndInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		answers []string
	}{
		{name: "mismatch", answers: []string{"1234", "4321"}},
		{name: "too short", answers: []string{"12"}},
		{name: "letters", answers: []string{"12ab"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			manager := &pinLockManagerStub{}
			err := resetPIN(manager, ResetPINOptions{}, scriptedPrompt(tt.answers...), &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected resetPIN to fail")
			}
			if manager.pin != "" {
				t.Fatalf("expected no pin to be saved, got %q", manager.pin)
			}
		})
	}
}

func TestResetPINDisable(t *testing.T) {
	t.Parallel()

	manager := &pinLockManagerStub{}
	var out bytes.Buffer
	if err := resetPIN(manager, ResetPINOptions{Disable: true}, scriptedPrompt(), &out); err != nil {
		t.Fatalf("resetPIN returned error: %v", err)
	}
	if !manager.disabled {
		t.Fatal("expected pin lock to be disabled")
	}

	failing := &pinLockManagerStub{err: errors.New("disk full")}
	if err := resetPIN(failing, ResetPINOptions{Disable: true}, scriptedPrompt(), &out); err == nil {
		t.Fatal("expected storage failure to be reported")
	}
}

func TestResetPINGenerate(t *testing.T) {
	t.Parallel()

	manager := &pinLockManagerStub{}
	var out bytes.Buffer
	if err := resetPIN(manager, ResetPINOptions{Generate: true}, scriptedPrompt(), &out); err != nil {
		t.Fatalf("resetPIN returned error: %v", err)
	}
	if len(manager.pin) != temporaryPINLength {
		t.Fatalf("expected %d digit temporary pin, got %q", temporaryPINLength, manager.pin)
	}
	if !strings.Contains(out.String(), "Temporary PIN: "+manager.pin) {
		t.Fatalf("expected temporary pin in output, got %q", out.String())
	}

	if err := resetPIN(manager, ResetPINOptions{Generate: true, Disable: true}, scriptedPrompt(), &out); err == nil {
		t.Fatal("expected conflicting flags to fail")
	}
}

func TestGenerateTemporaryPINClampsLength(t *testing.T) {
	t.Parallel()

	short, err := generateTemporaryPIN(2)
	if err != nil {
		t.Fatalf("generateTemporaryPIN returned error: %v", err)
	}
	if len(short) != 4 {
		t.Fatalf("expected minimum length 4, got %q", short)
	}

	long, err := generateTemporaryPIN(20)
	if err != nil {
		t.Fatalf("generateTemporaryPIN returned error: %v", err)
	}
	if len(long) != 8 {
		t.Fatalf("expected maximum length 8, got %q", long)
	}
	if err := services.ValidatePIN(long); err != nil {
		t.Fatalf("expected generated pin to be valid, got %v", err)
	}
}

func TestReadPromptLineTrims(t *testing.T) {
	t.Parallel()

	line, err := readPromptLine(strings.NewReader(" 1234 \r\n5678\n"))
	if err != nil {
		t.Fatalf("readPromptLine returned error: %v", err)
	}
	if line != "1234" {
		t.Fatalf("expected first trimmed line, got %q", line)
	}

	line, err = readPromptLine(strings.NewReader("9876"))
	if err != nil || line != "9876" {
		t.Fatalf("expected line without newline to be read, got %q, %v", line, err)
	}
}
