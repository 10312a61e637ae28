//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

import (
	"errors"
	"os"
)

func readPINNoEcho(_ *os.File) (string, error) {
	return "", errors.New("no-echo prompt is not supported on this platform")
}
