// Package config loads .sqlcat.yaml files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"sqlcat/pkg/concat"
)

// FileName is the name of the config file looked up in the home and working
// directories.
const FileName = ".sqlcat.yaml"

// File is the on-disk config. Unset booleans leave the lower layer's value in
// place.
type File struct {
	Preamble          *bool    `yaml:"preamble,omitempty"`
	Separator         *bool    `yaml:"separator,omitempty"`
	TrailingSeparator *bool    `yaml:"trailing_separator,omitempty"`
	Comments          *bool    `yaml:"comments,omitempty"`
	IncludeBin        *bool    `yaml:"include_bin,omitempty"`
	Output            string   `yaml:"output,omitempty"`
	Files             []string `yaml:"files,omitempty"`
	Include           []string `yaml:"include,omitempty"`
	Exclude           []string `yaml:"exclude,omitempty"`
	IgnoreFile        string   `yaml:"ignore_file,omitempty"`
}

// Config is the effective configuration after layering.
type Config struct {
	Options    concat.Options
	IncludeBin bool
	Output     string
	Files      []string // Relative entries are resolved against the declaring file's directory.
	Include    []string
	Exclude    []string
	IgnoreFile string
	Sources    []string // Config files that were applied, lowest precedence first.
}

// Defaults returns the configuration used when no file sets anything.
func Defaults() Config {
	return Config{Options: concat.DefaultOptions()}
}

// Read parses the config file at path. A missing file yields (nil, nil).
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return &File{}, nil
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &f, nil
}

// Apply layers f over c. Files, Include and Exclude accumulate; scalars
// replace.
func (c *Config) Apply(f *File, dir string) {
	if f == nil {
		return
	}
	setBool(&c.Options.Preamble, f.Preamble)
	setBool(&c.Options.SeparatorBetweenFiles, f.Separator)
	setBool(&c.Options.TrailingSeparator, f.TrailingSeparator)
	setBool(&c.Options.Comments, f.Comments)
	setBool(&c.IncludeBin, f.IncludeBin)
	if f.Output != "" {
		c.Output = resolve(dir, f.Output)
	}
	if f.IgnoreFile != "" {
		c.IgnoreFile = resolve(dir, f.IgnoreFile)
	}
	for _, p := range f.Files {
		c.Files = append(c.Files, resolve(dir, p))
	}
	c.Include = append(c.Include, f.Include...)
	c.Exclude = append(c.Exclude, f.Exclude...)
}

// Load builds the effective configuration from the home directory file, the
// working directory file and explicit, in that order. Missing home or
// working directory files are skipped; a missing explicit file is an error.
func Load(workDir, explicit string) (Config, error) {
	cfg := Defaults()

	var layers []string
	if home, err := os.UserHomeDir(); err == nil {
		layers = append(layers, filepath.Join(home, FileName))
	}
	if workDir != "" {
		layers = append(layers, filepath.Join(workDir, FileName))
	}

	seen := make(map[string]bool)
	for _, path := range layers {
		abs, err := filepath.Abs(path)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true
		f, err := Read(abs)
		if err != nil {
			return cfg, err
		}
		if f != nil {
			cfg.Apply(f, filepath.Dir(abs))
			cfg.Sources = append(cfg.Sources, abs)
		}
	}

	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return cfg, err
		}
		if seen[abs] {
			return cfg, nil
		}
		f, err := Read(abs)
		if err != nil {
			return cfg, err
		}
		if f == nil {
			return cfg, fmt.Errorf("config file %s: %w", explicit, os.ErrNotExist)
		}
		cfg.Apply(f, filepath.Dir(abs))
		cfg.Sources = append(cfg.Sources, abs)
	}
	return cfg, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}
