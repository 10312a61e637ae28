package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errStdinUnavailable = errors.New("stdin unavailable")

// promptPIN prints label to stderr and reads one line from the terminal with
// echo turned off.
func promptPIN(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	pin, err := readPINNoEcho(os.Stdin)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read pin: %w", err)
	}
	return pin, nil
}

func readPromptLine(input io.Reader) (string, error) {
	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
