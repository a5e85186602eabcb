package check

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/fitch/internal/checker"
	"github.com/gnolang/fitch/internal/formula"
	"github.com/gnolang/fitch/internal/proof"
	"github.com/gnolang/fitch/internal/rules"
)

// DefaultConfigPath is where the CLI looks for a configuration file.
const DefaultConfigPath = ".fitch.yaml"

// Config represents the checker configuration read from .fitch.yaml.
type Config struct {
	Name     string `yaml:"name"`
	MaxDepth int    `yaml:"max_depth"`
	// MaxFormulaNesting bounds parentheses and negations within a formula.
	MaxFormulaNesting int `yaml:"max_formula_nesting"`
	// IPMode is "permissive" or "strict".
	IPMode         string `yaml:"ip_mode"`
	StrictPremises bool   `yaml:"strict_premises"`
	// RuleSet names one of the cumulative rule sets. Rules, when set,
	// takes precedence.
	RuleSet string   `yaml:"rule_set,omitempty"`
	Rules   []string `yaml:"rules,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Name:              "fitch",
		MaxDepth:          proof.DefaultMaxDepth,
		MaxFormulaNesting: formula.DefaultMaxNesting,
		IPMode:            rules.IPPermissive.String(),
		StrictPremises:    true,
		RuleSet:           "all",
	}
}

// LoadConfig reads the configuration file at path. A missing file, or an
// empty path, yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("parse %s: %w", path, err)
	}
	return config, nil
}

// WriteConfig writes config to path as YAML, replacing any existing file.
func WriteConfig(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}

// Options translates the configuration into checker options.
func (c Config) Options() ([]checker.Option, error) {
	mode, err := rules.ParseIPMode(c.IPMode)
	if err != nil {
		return nil, err
	}
	opts := []checker.Option{
		checker.WithMaxDepth(c.MaxDepth),
		checker.WithMaxFormulaNesting(c.MaxFormulaNesting),
		checker.WithIPMode(mode),
		checker.WithStrictPremises(c.StrictPremises),
	}

	switch {
	case len(c.Rules) > 0:
		for _, name := range c.Rules {
			if _, ok := rules.Canonical(name); !ok {
				return nil, fmt.Errorf("unknown rule %q", name)
			}
		}
		opts = append(opts, checker.WithAllowedRules(c.Rules...))
	case c.RuleSet != "" && c.RuleSet != "all":
		names, err := checker.RuleSet(c.RuleSet)
		if err != nil {
			return nil, err
		}
		opts = append(opts, checker.WithAllowedRules(names...))
	}
	return opts, nil
}
