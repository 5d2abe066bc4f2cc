// Package ignore decides which files a directory expansion leaves out, using
// gitignore syntax.
package ignore

import (
	"fmt"
	"os"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// FileName is the per-directory ignore file read in addition to .gitignore.
const FileName = ".sqlcatignore"

// Matcher matches slash-separated relative paths against ignore patterns.
// A nil Matcher matches nothing.
type Matcher struct {
	gi    *gitignore.GitIgnore
	lines []string
}

// Load compiles the patterns of every existing file in paths followed by
// extra. Files that do not exist are skipped.
func Load(logger *zap.Logger, extra []string, paths ...string) (*Matcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var lines []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		content, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", p))
				continue
			}
			logger.Error("Failed to read ignore file", zap.String("filePath", p), zap.Error(err))
			return nil, fmt.Errorf("failed to read ignore file %s: %w", p, err)
		}
		fileLines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
		lines = append(lines, fileLines...)
		logger.Debug("Loaded ignore file", zap.String("filePath", p), zap.Int("lineCount", len(fileLines)))
	}
	lines = append(lines, extra...)

	return Compile(lines...), nil
}

// Compile builds a Matcher from gitignore pattern lines.
func Compile(lines ...string) *Matcher {
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		kept = append(kept, l)
	}
	if len(kept) == 0 {
		return nil
	}
	return &Matcher{gi: gitignore.CompileIgnoreLines(kept...), lines: kept}
}

// MatchesPath reports whether the relative path is ignored.
func (m *Matcher) MatchesPath(relPath string) bool {
	if m == nil {
		return false
	}
	return m.gi.MatchesPath(relPath)
}

// Patterns returns the compiled pattern lines.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.lines...)
}
