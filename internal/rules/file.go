package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is a validated repository rule configuration: the rule overrides
// layered onto the defaults plus path globs to skip entirely.
type Config struct {
	Rules       []Rule
	IgnorePaths []string
}

// fileConfig is the loosely-typed YAML shape of a rule file. It is validated
// into a Config before anything else sees it, so malformed levels, modes,
// and patterns are rejected at load time rather than in the matching path.
type fileConfig struct {
	Rules       []fileRule `yaml:"rules"`
	IgnorePaths []string   `yaml:"ignorePaths"`
}

type fileRule struct {
	Pattern     string   `yaml:"pattern"`
	Level       string   `yaml:"level"`
	Mode        string   `yaml:"mode"`
	Suggestions []string `yaml:"suggestions"`
	Message     string   `yaml:"message"`
}

// LoadFile loads and validates a YAML rule file. Returns a zero Config and
// nil error if path is empty. A rule without an explicit level defaults to
// warning.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading rules file: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parsing rules file: %w", err)
	}

	cfg := Config{IgnorePaths: fc.IgnorePaths}
	for i, fr := range fc.Rules {
		if fr.Pattern == "" {
			return Config{}, fmt.Errorf("rule %d: missing pattern", i+1)
		}

		level := Warning
		if fr.Level != "" {
			parsed, err := ParseLevel(fr.Level)
			if err != nil {
				return Config{}, fmt.Errorf("rule %q: %w", fr.Pattern, err)
			}
			level = parsed
		}

		mode, err := ParseMode(fr.Mode)
		if err != nil {
			return Config{}, fmt.Errorf("rule %q: %w", fr.Pattern, err)
		}

		cfg.Rules = append(cfg.Rules, Rule{
			Pattern:     fr.Pattern,
			Level:       level,
			Mode:        mode,
			Suggestions: fr.Suggestions,
			Message:     fr.Message,
		})
	}
	return cfg, nil
}

// BuildSet merges the config's rules onto the defaults and compiles the
// result. This is the one place a run's active ruleset is constructed.
func BuildSet(cfg Config) (*Set, error) {
	return NewSet(Merge(DefaultRules(), cfg.Rules))
}
