// Package config loads the project configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/gorule/internal/model"
)

// ErrUnknownRule is returned by Validate for rule names nobody registered.
var ErrUnknownRule = errors.New("unknown rule")

// FileNames are the configuration files looked for, in order of preference.
var FileNames = []string{".gorule.yaml", ".gorule.yml", ".gorule.toml"}

// RuleConfig configures a single rule.
type RuleConfig struct {
	// Enabled turns the rule on or off. Nil keeps the catalog default.
	Enabled  *bool          `yaml:"enabled" toml:"enabled"`
	Severity m.Severity     `yaml:"severity" toml:"severity"`
	Options  map[string]any `yaml:"options" toml:"options"`
}

// Config is the parsed configuration file.
type Config struct {
	Rules        map[string]RuleConfig `yaml:"rules" toml:"rules"`
	Exclude      []string              `yaml:"exclude" toml:"exclude"`
	IncludeTests bool                  `yaml:"include_tests" toml:"include_tests"`
	Parallel     int                   `yaml:"parallel" toml:"parallel"`
	Format       string                `yaml:"format" toml:"format"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{Parallel: 1, Format: "text"}
}

// Find walks up from startDir and returns the first configuration file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}

		dir = parent
	}
}

// Load reads the configuration file at path. The format follows the
// extension.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("%s: unsupported config format", path)
	}

	return cfg, nil
}

// Discover finds and loads the configuration for startDir. Without a file it
// returns Default and an empty path.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}

	if !ok {
		return Default(), "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// Validate checks rule names against known and normalizes severities.
// Every problem found is reported.
func (c *Config) Validate(known []string) error {
	var errs error

	for name, rc := range c.Rules {
		if !slices.Contains(known, name) {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s", ErrUnknownRule, name))

			continue
		}

		if rc.Severity == "" {
			continue
		}

		sev, err := m.ParseSeverity(string(rc.Severity))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("rule %s: %w", name, err))

			continue
		}

		rc.Severity = sev
		c.Rules[name] = rc
	}

	if c.Parallel < 0 {
		errs = multierr.Append(errs, fmt.Errorf("parallel must not be negative, got %d", c.Parallel))
	}

	return errs
}

// Resolve returns the effective severity and options of the rule name whose
// catalog default is def. A disabled rule resolves to SeverityOff.
func (c Config) Resolve(name string, def m.Severity) (m.Severity, map[string]any) {
	rc, ok := c.Rules[name]
	if !ok {
		return def, nil
	}

	if rc.Enabled != nil && !*rc.Enabled {
		return m.SeverityOff, rc.Options
	}

	if rc.Severity != "" {
		return rc.Severity, rc.Options
	}

	return def, rc.Options
}
