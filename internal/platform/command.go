package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// exitCodeInterrupted is what helper scripts return when the user cancels
// a dialog (128 + SIGINT).
const exitCodeInterrupted = 130

// runFunc executes a command, feeding stdin when non-nil.
type runFunc func(ctx context.Context, name string, args []string, stdin io.Reader) error

// lookPathFunc resolves an executable name.
type lookPathFunc func(name string) (string, error)

func execRun(ctx context.Context, name string, args []string, stdin io.Reader) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%s: %w", name, ErrUnsupported)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == exitCodeInterrupted {
			return ErrAborted
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// splitCommand splits a configured command line on whitespace.
func splitCommand(command string) []string {
	return strings.Fields(command)
}

func logCommand(kind string, argv []string, err error) {
	event := log.Debug()
	if err != nil && !errors.Is(err, ErrAborted) {
		event = log.Warn().Err(err)
	}
	event.
		Str("capability", kind).
		Str("command", argv[0]).
		Msg("Platform command finished")
}
