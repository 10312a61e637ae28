//go:build windows

package cli

import (
	"os"

	"golang.org/x/sys/windows"
)

func readPINNoEcho(stdin *os.File) (string, error) {
	if stdin == nil {
		return "", errStdinUnavailable
	}

	handle := windows.Handle(stdin.Fd())
	var originalMode uint32
	if err := windows.GetConsoleMode(handle, &originalMode); err != nil {
		return "", err
	}

	if err := windows.SetConsoleMode(handle, originalMode&^windows.ENABLE_ECHO_INPUT); err != nil {
		return "", err
	}
	defer func() {
		_ = windows.SetConsoleMode(handle, originalMode)
	}()

	return readPromptLine(stdin)
}
