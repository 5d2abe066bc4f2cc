package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"sqlcat/pkg/config"
	"sqlcat/pkg/logging"
	"sqlcat/pkg/session"
)

// selectionFlags controls which files end up in the list and in what order.
type selectionFlags struct {
	remove     []string
	moves      []string
	include    []string
	exclude    []string
	includeBin bool
}

func (f *selectionFlags) register(fs *pflag.FlagSet) {
	fs.StringArrayVar(&f.remove, "remove", nil, "Remove a file from the list (repeatable)")
	fs.StringArrayVar(&f.moves, "move", nil, "Move the file at POS (1-based) by DELTA positions, as POS:DELTA (repeatable)")
	fs.StringArrayVar(&f.include, "include", nil, "Glob a file must match when a directory is expanded (repeatable, default **/*.sql)")
	fs.StringArrayVar(&f.exclude, "exclude", nil, "Gitignore-style pattern excluded when a directory is expanded (repeatable)")
	fs.BoolVar(&f.includeBin, "include-bin", false, "Keep files that look binary when expanding directories and globs")
}

// move is a parsed --move value with a 0-based index.
type move struct {
	index int
	delta int
}

func parseMove(s string) (move, error) {
	pos, delta, ok := strings.Cut(s, ":")
	if !ok {
		return move{}, fmt.Errorf("invalid move %q: expected POS:DELTA", s)
	}
	p, err := strconv.Atoi(strings.TrimSpace(pos))
	if err != nil || p < 1 {
		return move{}, fmt.Errorf("invalid move %q: POS must be a positive integer", s)
	}
	d, err := strconv.Atoi(strings.TrimSpace(delta))
	if err != nil {
		return move{}, fmt.Errorf("invalid move %q: DELTA must be an integer", s)
	}
	return move{index: p - 1, delta: d}, nil
}

// buildSession loads the config, then adds config files and args, applies
// removals and moves, in that order.
func buildSession(cmd *cobra.Command, root *rootOptions, sel *selectionFlags, args []string) (*session.Session, config.Config, error) {
	logger := logging.Logger

	moves := make([]move, 0, len(sel.moves))
	for _, m := range sel.moves {
		mv, err := parseMove(m)
		if err != nil {
			return nil, config.Config{}, err
		}
		moves = append(moves, mv)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("failed to get current directory: %w", err)
	}
	cfg, err := config.Load(workDir, root.configFile)
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to load config: %w", err)
	}
	if len(cfg.Sources) > 0 {
		logger.Debug("Loaded config files", zap.Strings("files", cfg.Sources))
	}

	s := session.New(logger)
	if cmd.Flags().Changed("include") {
		s.Collector.Include = sel.include
	} else if len(cfg.Include) > 0 {
		s.Collector.Include = cfg.Include
	}
	s.Collector.Exclude = append(append([]string(nil), cfg.Exclude...), sel.exclude...)
	s.Collector.IncludeBinary = cfg.IncludeBin
	if cmd.Flags().Changed("include-bin") {
		s.Collector.IncludeBinary = sel.includeBin
	}
	s.Collector.GlobalIgnoreFile = cfg.IgnoreFile

	if _, err := s.AddPaths(cfg.Files...); err != nil {
		return nil, cfg, err
	}
	if _, err := s.AddPaths(args...); err != nil {
		return nil, cfg, err
	}
	s.Remove(sel.remove...)
	for _, mv := range moves {
		before := s.Files()
		s.Move(mv.index, mv.delta)
		if slices.Equal(before, s.Files()) && mv.delta != 0 {
			logger.Warn("Move out of range ignored",
				zap.Int("position", mv.index+1),
				zap.Int("delta", mv.delta),
				zap.Int("files", len(before)))
		}
	}

	logger.Debug("Resolved file list", zap.Strings("files", s.Files()))
	return s, cfg, nil
}
