package cmd

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"sqlcat/pkg/concat"
	"sqlcat/pkg/output"
	"sqlcat/pkg/session"
)

// Notifier reports the outcome of a command to the user.
type Notifier struct {
	out    io.Writer
	logger *zap.Logger
}

func newNotifier(out io.Writer, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{out: out, logger: logger}
}

// Saved acknowledges a written script.
func (n *Notifier) Saved(r session.SaveReport) {
	fmt.Fprintf(n.out, "Saved %d files to %s\n", r.Files, r.Path)
}

// EmptyInput warns that there was nothing to merge.
func (n *Notifier) EmptyInput() {
	n.logger.Warn("No files to concatenate")
	fmt.Fprintln(n.out, "No files to concatenate. Add files, globs or directories and try again.")
}

// Aborted reports that the user declined to overwrite dest.
func (n *Notifier) Aborted(dest string) {
	fmt.Fprintf(n.out, "Not overwriting %s.\n", dest)
}

// Failure turns an error from a save into the message shown to the user.
func (n *Notifier) Failure(err error) error {
	var readErr *concat.FileReadError
	var writeErr *output.WriteError

	switch {
	case errors.As(err, &readErr):
		n.logger.Error("Failed to read source file", zap.String("file", readErr.Path), zap.Error(readErr.Err))
		return fmt.Errorf("cannot read %s: %w; nothing was written", readErr.Path, readErr.Err)
	case errors.Is(err, output.ErrDestinationExists):
		return fmt.Errorf("%w; use --force to overwrite", err)
	case errors.As(err, &writeErr):
		n.logger.Error("Failed to write merged script", zap.String("file", writeErr.Path), zap.Error(writeErr.Err))
		return fmt.Errorf("cannot write %s: %w", writeErr.Path, writeErr.Err)
	default:
		return err
	}
}
