// Package output persists merged scripts.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultFileName returns the suggested destination name for a merge run
// at t, e.g. "20261018_concatenated.sql".
func DefaultFileName(t time.Time) string {
	return t.Format("20060102") + "_concatenated.sql"
}

// Sink writes merged scripts as UTF-8 with a byte order mark.
type Sink struct {
	// Overwrite allows replacing an existing destination.
	Overwrite bool
	// Perm is the mode of newly created files.
	Perm os.FileMode

	logger *zap.Logger
}

// NewSink returns a Sink that refuses to overwrite existing files.
func NewSink(logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{Perm: 0o644, logger: logger}
}

// Exists reports whether dest is already present.
func (s *Sink) Exists(dest string) bool {
	_, err := os.Stat(dest)
	return err == nil
}

// Write stores text at dest. The content goes to a temporary file next to
// dest which replaces dest only once fully written, so a failed write leaves
// any existing file untouched.
func (s *Sink) Write(dest, text string) error {
	if !s.Overwrite && s.Exists(dest) {
		return fmt.Errorf("%s: %w", dest, ErrDestinationExists)
	}

	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		s.logger.Error("Failed to create temporary file", zap.String("dir", dir), zap.Error(err))
		return &WriteError{Path: dest, Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := encodeTo(tmp, text); err != nil {
		tmp.Close()
		s.logger.Error("Failed to write output", zap.String("file", tmpPath), zap.Error(err))
		return &WriteError{Path: dest, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &WriteError{Path: dest, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: dest, Err: err}
	}
	if err := os.Chmod(tmpPath, s.Perm); err != nil {
		return &WriteError{Path: dest, Err: err}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		s.logger.Error("Failed to move output into place", zap.String("file", dest), zap.Error(err))
		return &WriteError{Path: dest, Err: err}
	}
	committed = true

	s.logger.Debug("Wrote merged script", zap.String("file", dest), zap.Int("chars", len(text)))
	return nil
}

// WriteTo writes text to w without a byte order mark. It is used when the
// script goes to a stream rather than a file.
func WriteTo(w io.Writer, text string) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(text); err != nil {
		return err
	}
	return bw.Flush()
}

func encodeTo(w io.Writer, text string) error {
	bw := bufio.NewWriter(w)
	tw := transform.NewWriter(bw, unicode.UTF8BOM.NewEncoder())
	if _, err := io.WriteString(tw, text); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return bw.Flush()
}
