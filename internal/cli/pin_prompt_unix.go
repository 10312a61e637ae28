//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"os"

	"golang.org/x/sys/unix"
)

func readPINNoEcho(stdin *os.File) (string, error) {
	if stdin == nil {
		return "", errStdinUnavailable
	}

	fd := int(stdin.Fd())
	termios, err := unix.IoctlGetTermios(fd, termiosReadRequest)
	if err != nil {
		return "", err
	}
	originalTermios := *termios
	silentTermios := originalTermios
	silentTermios.Lflag &^= unix.ECHO

	if err := unix.IoctlSetTermios(fd, termiosWriteRequest, &silentTermios); err != nil {
		return "", err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, termiosWriteRequest, &originalTermios)
	}()

	return readPromptLine(stdin)
}
