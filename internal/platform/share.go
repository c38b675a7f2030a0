package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// File is a named payload handed to the share mechanism.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Sharer hands a file and accompanying text to the host share mechanism.
type Sharer interface {
	Share(ctx context.Context, file File, text string) error
}

// CommandSharer writes the file to a temporary location and runs a helper
// program with the file path and text as its last two arguments.
type CommandSharer struct {
	command []string
	tempDir string
	run     runFunc
}

// NewCommandSharer creates a sharer for command. An empty command yields a
// sharer that reports ErrUnsupported.
func NewCommandSharer(command string) *CommandSharer {
	return &CommandSharer{
		command: splitCommand(command),
		tempDir: os.TempDir(),
		run:     execRun,
	}
}

// Share runs the configured helper.
//
// Returns:
//   - ErrUnsupported when no helper is configured
//   - ErrAborted when the user cancelled the share dialog
func (s *CommandSharer) Share(ctx context.Context, file File, text string) error {
	if len(s.command) == 0 {
		return ErrUnsupported
	}

	dir, err := os.MkdirTemp(s.tempDir, "qrforge-share-"+uuid.NewString()[:8])
	if err != nil {
		return fmt.Errorf("create share directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filepath.Base(file.Name))
	if err := os.WriteFile(path, file.Data, 0o600); err != nil {
		return fmt.Errorf("write share file: %w", err)
	}

	args := append(append([]string{}, s.command[1:]...), path, text)
	err = s.run(ctx, s.command[0], args, nil)
	logCommand("share", s.command, err)
	return err
}

// UnsupportedSharer is a Sharer for hosts without a share mechanism.
type UnsupportedSharer struct{}

// Share always fails with ErrUnsupported.
func (UnsupportedSharer) Share(context.Context, File, string) error {
	return ErrUnsupported
}
