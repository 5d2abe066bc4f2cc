// Package collect turns command-line arguments into the source files of a
// merge: plain paths, glob patterns and directories.
package collect

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"sqlcat/pkg/ignore"
)

// DefaultInclude selects the files a directory expansion keeps.
var DefaultInclude = []string{"**/*.sql"}

// Collector resolves arguments into absolute file paths.
type Collector struct {
	Include          []string // Doublestar patterns a file found in a directory must match.
	Exclude          []string // Extra gitignore-style patterns applied to directory expansion.
	GlobalIgnoreFile string   // Optional ignore file applied to every directory.
	IncludeBinary    bool     // Keep files that look binary.

	logger *zap.Logger
}

// New returns a Collector with the default include patterns.
func New(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		Include: append([]string(nil), DefaultInclude...),
		logger:  logger,
	}
}

// Collect resolves args in order. Arguments naming missing or unreadable
// files are logged and skipped; only malformed patterns are errors.
func (c *Collector) Collect(args ...string) ([]string, error) {
	for _, p := range c.Include {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid include pattern %q", p)
		}
	}

	var files []string
	for _, arg := range args {
		if arg == "" {
			continue
		}
		absPath, err := filepath.Abs(arg)
		if err != nil {
			c.logger.Warn("Failed to get absolute path", zap.String("path", arg), zap.Error(err))
			continue
		}
		info, err := os.Stat(absPath)
		if err != nil && isGlob(arg) {
			// Only arguments that name nothing on disk are expanded as patterns,
			// so a file called fix[1].sql is still taken literally.
			matched, err := c.collectGlob(arg)
			if err != nil {
				return nil, err
			}
			files = append(files, matched...)
			continue
		}
		if err != nil {
			c.logger.Warn("Path does not exist or cannot be accessed", zap.String("path", absPath), zap.Error(err))
			continue
		}

		if info.IsDir() {
			found, err := c.collectDir(absPath)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		if !readable(absPath, c.logger) {
			continue
		}
		files = append(files, absPath)
	}

	c.logger.Debug("Collected files", zap.Int("argCount", len(args)), zap.Int("fileCount", len(files)))
	return files, nil
}

func (c *Collector) collectGlob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	var files []string
	for _, m := range matches {
		absPath, err := filepath.Abs(m)
		if err != nil {
			c.logger.Warn("Failed to get absolute path", zap.String("path", m), zap.Error(err))
			continue
		}
		info, err := os.Stat(absPath)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if c.skipBinary(absPath) || !readable(absPath, c.logger) {
			continue
		}
		files = append(files, absPath)
	}
	if len(files) == 0 {
		c.logger.Warn("Pattern matched no files", zap.String("pattern", pattern))
	}
	return files, nil
}

// collectDir walks root in lexical order and keeps the files matching the
// include patterns that are neither ignored nor binary.
func (c *Collector) collectDir(root string) ([]string, error) {
	gi, err := ignore.Load(c.logger, c.Exclude,
		c.GlobalIgnoreFile,
		filepath.Join(root, ".gitignore"),
		filepath.Join(root, ignore.FileName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			c.logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if d.Name() == ".git" || gi.MatchesPath(relPath+"/") {
				c.logger.Debug("Skipping ignored directory", zap.String("directory", path))
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if gi.MatchesPath(relPath) {
			c.logger.Debug("Skipping ignored file", zap.String("filePath", path))
			return nil
		}
		if !c.included(relPath) {
			return nil
		}
		if c.skipBinary(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		c.logger.Error("Error during file traversal", zap.Error(err))
		return nil, err
	}

	c.logger.Debug("Completed directory traversal", zap.String("dir", root), zap.Int("files", len(files)))
	return files, nil
}

func (c *Collector) included(relPath string) bool {
	if len(c.Include) == 0 {
		return true
	}
	for _, p := range c.Include {
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
	}
	return false
}

func (c *Collector) skipBinary(path string) bool {
	if c.IncludeBinary {
		return false
	}
	isBinary, err := isBinaryFile(path)
	if err != nil {
		c.logger.Warn("Failed to check if file is binary", zap.String("filePath", path), zap.Error(err))
		return true
	}
	if isBinary {
		c.logger.Debug("Skipping binary file", zap.String("filePath", path))
	}
	return isBinary
}

func readable(path string, logger *zap.Logger) bool {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("File cannot be opened", zap.String("path", path), zap.Error(err))
		return false
	}
	f.Close()
	return true
}

func isGlob(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}
