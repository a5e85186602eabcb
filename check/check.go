// Package check is the entry point for validating proof records: it loads
// the configuration, builds a checking engine and runs it over single
// problems or whole batches.
package check

import (
	"github.com/gnolang/fitch/internal/checker"
	"github.com/gnolang/fitch/internal/types"
)

// Engine validates one problem.
type Engine interface {
	Check(problem types.Problem) (types.Result, error)
}

// Checker is the Engine configured from a Config.
type Checker struct {
	config Config
	opts   []checker.Option
}

// New creates a Checker from the configuration file at configurationPath.
func New(configurationPath string) (*Checker, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(config)
}

// NewWithConfig creates a Checker from an already loaded configuration.
func NewWithConfig(config Config) (*Checker, error) {
	opts, err := config.Options()
	if err != nil {
		return nil, err
	}
	return &Checker{config: config, opts: opts}, nil
}

// Config returns the configuration the Checker was built with.
func (c *Checker) Config() Config {
	return c.config
}

// Check validates problem.
func (c *Checker) Check(problem types.Problem) (types.Result, error) {
	return checker.Validate(problem, c.opts...)
}
