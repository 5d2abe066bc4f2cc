// Package concat merges SQL files into a single script.
package concat

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// BatchSeparator ends a batch of statements for SQL Server tooling.
	BatchSeparator = "GO"

	// TimestampLayout formats the run timestamp in the header comment.
	TimestampLayout = "2006-01-02 15:04:05"

	headerRule = "-- ============================================================"
)

var preamble = []string{
	"SET ANSI_NULLS ON",
	BatchSeparator,
	"",
	"SET QUOTED_IDENTIFIER ON",
	BatchSeparator,
	"",
}

// Engine builds merged scripts.
type Engine struct {
	logger   *zap.Logger
	readText func(path string) (string, error)
}

// NewEngine returns an Engine that reads files from disk.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:   logger,
		readText: ReadText,
	}
}

// Concatenate reads paths in order and returns the merged script. Reading
// stops at the first file that fails; no partial result is returned.
func (e *Engine) Concatenate(paths []string, opts Options, ts time.Time) (Result, error) {
	if len(paths) == 0 {
		return Result{}, ErrEmptyInput
	}

	var b strings.Builder
	n := len(paths)

	if opts.Comments {
		writeLines(&b,
			headerRule,
			"-- Concatenated SQL script",
			"-- Generated: "+ts.Format(TimestampLayout),
			fmt.Sprintf("-- Files: %d", n),
			headerRule,
			"",
		)
	}

	if opts.Preamble {
		writeLines(&b, preamble...)
	}

	for i, path := range paths {
		name := filepath.Base(path)
		last := i == n-1

		if opts.Comments {
			writeLines(&b,
				"-- BEGIN FILE: "+name,
				"-- PATH: "+path,
				fmt.Sprintf("-- INDEX: %d/%d", i+1, n),
			)
		}

		e.logger.Debug("Reading source file", zap.String("path", path), zap.Int("index", i+1))
		text, err := e.readText(path)
		if err != nil {
			e.logger.Debug("Failed to read source file", zap.String("path", path), zap.Error(err))
			return Result{}, &FileReadError{Path: path, Err: err}
		}
		b.WriteString(EnsureTrailingNewline(NormalizeLineEndings(text)))

		if opts.Comments {
			writeLines(&b, "-- END FILE: "+name)
		}
		if opts.SeparatorBetweenFiles && !last {
			writeLines(&b, BatchSeparator)
		}
		writeLines(&b, "")
	}

	if opts.TrailingSeparator {
		writeLines(&b, BatchSeparator)
	}
	writeLines(&b, "")

	e.logger.Debug("Concatenation finished", zap.Int("files", n), zap.Int("bytes", b.Len()))
	return Result{Text: b.String()}, nil
}

func writeLines(b *strings.Builder, lines ...string) {
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString(CRLF)
	}
}
