package platform

import (
	"bytes"
	"context"
	"os/exec"
)

// Clipboard writes images to the system clipboard.
type Clipboard interface {
	WritePNG(ctx context.Context, png []byte) error
}

// clipboardCandidates are tried in order when no command is configured.
var clipboardCandidates = [][]string{
	{"wl-copy", "--type", "image/png"},
	{"xclip", "-selection", "clipboard", "-t", "image/png"},
}

// CommandClipboard pipes PNG data into a clipboard helper program.
type CommandClipboard struct {
	command  []string
	run      runFunc
	lookPath lookPathFunc
}

// NewCommandClipboard creates a clipboard using command, or the first
// available well-known helper when command is empty.
func NewCommandClipboard(command string) *CommandClipboard {
	return &CommandClipboard{
		command:  splitCommand(command),
		run:      execRun,
		lookPath: exec.LookPath,
	}
}

// WritePNG copies png to the clipboard.
//
// Returns:
//   - ErrUnsupported when no helper program is configured or installed
func (c *CommandClipboard) WritePNG(ctx context.Context, png []byte) error {
	argv, err := c.resolve()
	if err != nil {
		return err
	}
	err = c.run(ctx, argv[0], argv[1:], bytes.NewReader(png))
	logCommand("clipboard", argv, err)
	return err
}

func (c *CommandClipboard) resolve() ([]string, error) {
	if len(c.command) > 0 {
		return c.command, nil
	}
	for _, candidate := range clipboardCandidates {
		if _, err := c.lookPath(candidate[0]); err == nil {
			return candidate, nil
		}
	}
	return nil, ErrUnsupported
}

// UnsupportedClipboard is a Clipboard for hosts without one.
type UnsupportedClipboard struct{}

// WritePNG always fails with ErrUnsupported.
func (UnsupportedClipboard) WritePNG(context.Context, []byte) error {
	return ErrUnsupported
}
