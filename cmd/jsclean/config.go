package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsclean "github.com/alnah/go-jsclean"
	"github.com/alnah/go-jsclean/internal/yamlutil"
)

// defaultInclude selects the JavaScript-family files picked up when an
// input is a directory.
const defaultInclude = "**/*.{js,mjs,cjs,jsx}"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrUnknownLanguage = errors.New("unknown language")
)

// Config holds file-based configuration. Pointer fields distinguish
// "unset" from meaningful zero values (maxEmptyLines: 0 removes all
// blank lines; sourcemap: false disables maps).
type Config struct {
	MaxEmptyLines *int     `yaml:"maxEmptyLines"`
	EOL           string   `yaml:"eol"`
	Comments      []string `yaml:"comments"`
	SourceMap     *bool    `yaml:"sourcemap"`
	Include       string   `yaml:"include"`
	Output        string   `yaml:"output"`
	Language      string   `yaml:"language"`
	Workers       int      `yaml:"workers"`
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise it's searched as a name in standard locations.
// Returns an error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-jsclean/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-jsclean", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// settings is the fully resolved configuration: defaults, overlaid by
// the config file, overlaid by explicitly set flags.
type settings struct {
	maxEmptyLines int
	eol           string
	keep          []string
	sourceMap     bool
	include       string
	output        string
	language      string
	workers       int
}

// resolveSettings merges flags and config file into validated settings.
func resolveSettings(flags *cleanFlags) (*settings, error) {
	s := &settings{
		maxEmptyLines: 0,
		eol:           jsclean.EOLUnix,
		sourceMap:     true,
		include:       defaultInclude,
		language:      "javascript",
	}

	if flags.config != "" {
		cfg, err := LoadConfig(flags.config)
		if err != nil {
			return nil, err
		}
		if cfg.MaxEmptyLines != nil {
			s.maxEmptyLines = *cfg.MaxEmptyLines
		}
		if cfg.EOL != "" {
			s.eol = cfg.EOL
		}
		if len(cfg.Comments) > 0 {
			s.keep = cfg.Comments
		}
		if cfg.SourceMap != nil {
			s.sourceMap = *cfg.SourceMap
		}
		if cfg.Include != "" {
			s.include = cfg.Include
		}
		if cfg.Output != "" {
			s.output = cfg.Output
		}
		if cfg.Language != "" {
			s.language = cfg.Language
		}
		if cfg.Workers > 0 {
			s.workers = cfg.Workers
		}
	}

	if flags.changed("max-empty-lines") {
		s.maxEmptyLines = flags.maxEmptyLines
	}
	if flags.changed("eol") {
		s.eol = flags.eol
	}
	if flags.changed("keep") {
		s.keep = flags.keep
	}
	if flags.changed("sourcemap") {
		s.sourceMap = flags.sourceMap
	}
	if flags.changed("include") {
		s.include = flags.include
	}
	if flags.changed("output") {
		s.output = flags.output
	}
	if flags.changed("lang") {
		s.language = flags.language
	}
	if flags.changed("workers") {
		s.workers = flags.workers
	}

	if err := jsclean.ValidateMaxEmptyLines(s.maxEmptyLines); err != nil {
		return nil, err
	}
	if _, err := jsclean.EOLSequence(s.eol); err != nil {
		return nil, err
	}
	if _, err := jsclean.ParseCommentFilter(s.keep); err != nil {
		return nil, err
	}
	if !jsclean.SupportedLanguage(s.language) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, s.language)
	}

	return s, nil
}
