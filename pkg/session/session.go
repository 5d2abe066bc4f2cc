// Package session ties the file list, the merge engine and the output sink
// together for a single run of the tool.
package session

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"sqlcat/pkg/collect"
	"sqlcat/pkg/concat"
	"sqlcat/pkg/fileset"
	"sqlcat/pkg/output"
)

// ErrEmptyInput is returned by Render and Save when no files were added.
var ErrEmptyInput = concat.ErrEmptyInput

// Session holds the working file list of one run.
type Session struct {
	Collector *collect.Collector
	Sink      *output.Sink
	Now       func() time.Time

	files  *fileset.Set
	engine *concat.Engine
	logger *zap.Logger
}

// SaveReport describes a successful Save.
type SaveReport struct {
	Path  string
	Files int
	Bytes int
}

// New returns an empty Session.
func New(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		Collector: collect.New(logger.Named("collect")),
		Sink:      output.NewSink(logger.Named("output")),
		Now:       time.Now,
		files:     fileset.New(),
		engine:    concat.NewEngine(logger.Named("concat")),
		logger:    logger,
	}
}

// AddPaths resolves args into files and appends the ones not already listed.
// It returns how many files were appended.
func (s *Session) AddPaths(args ...string) (int, error) {
	found, err := s.Collector.Collect(args...)
	if err != nil {
		return 0, fmt.Errorf("failed to collect files: %w", err)
	}
	added := s.files.Add(found...)
	if skipped := len(found) - added; skipped > 0 {
		s.logger.Debug("Skipped files already in the list", zap.Int("skipped", skipped))
	}
	return added, nil
}

// Remove drops the given paths from the list.
func (s *Session) Remove(paths ...string) {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		resolved = append(resolved, p)
	}
	s.files.Remove(resolved...)
}

// Move shifts the file at index by delta positions. Out of range moves are
// ignored.
func (s *Session) Move(index, delta int) {
	s.files.Move(index, delta)
}

// Clear empties the list.
func (s *Session) Clear() {
	s.files.Clear()
}

// Files returns the current merge order.
func (s *Session) Files() []string {
	return s.files.Snapshot()
}

// Render merges the current files in memory.
func (s *Session) Render(opts concat.Options) (concat.Result, error) {
	paths := s.files.Snapshot()
	if len(paths) == 0 {
		return concat.Result{}, ErrEmptyInput
	}
	return s.engine.Concatenate(paths, opts, s.Now())
}

// Save merges the current files and writes the script to dest. An empty dest
// selects the default file name in the working directory. Nothing is written
// when any source file fails to read.
func (s *Session) Save(dest string, opts concat.Options) (SaveReport, error) {
	startTime := time.Now()
	if dest == "" {
		dest = output.DefaultFileName(s.Now())
	}

	res, err := s.Render(opts)
	if err != nil {
		return SaveReport{}, err
	}
	if err := s.Sink.Write(dest, res.Text); err != nil {
		return SaveReport{}, err
	}

	report := SaveReport{Path: dest, Files: s.files.Len(), Bytes: len(res.Text)}
	s.logger.Info("Successfully concatenated files",
		zap.String("outputFile", report.Path),
		zap.Int("totalFiles", report.Files),
		zap.Duration("elapsed", time.Since(startTime)),
	)
	return report, nil
}
