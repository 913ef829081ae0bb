package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/kcstack/internal/config"
	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
)

// loadUnvalidated reads a configuration without failing on rule
// violations - can be replaced in tests.
var loadUnvalidated = config.LoadFileWithoutValidation

// Validate checks a configuration and its topology and prints every finding.
func Validate(_ context.Context, configPath string) error {
	path, err := resolveConfigPath(configPath)
	if err != nil {
		return err
	}

	cfg, err := loadUnvalidated(path)
	if err != nil {
		return err
	}

	findings := validationFindings(cfg)
	errCount := printFindings(path, findings)
	if errCount > 0 {
		return fmt.Errorf("%s: %d error(s)", path, errCount)
	}

	fmt.Printf("%s is valid\n", path)
	return nil
}

// validationFindings runs configuration validation and, when that passes,
// the topology checks.
func validationFindings(cfg *config.Config) []provisioning.ValidationError {
	if err := cfg.Validate(); err != nil {
		var out []provisioning.ValidationError
		for _, e := range flatten(err) {
			out = append(out, provisioning.ValidationError{Field: "config", Message: e.Error(), Severity: provisioning.SeverityError})
		}
		return out
	}

	topo, err := topology.FromConfig(cfg)
	if err != nil {
		var out []provisioning.ValidationError
		for _, de := range topology.DeclarationErrors(err) {
			out = append(out, provisioning.ValidationError{Field: de.Entity, Message: de.Message, Severity: provisioning.SeverityError})
		}
		return out
	}
	return provisioning.Validate(topo)
}

// flatten splits an errors.Join tree into its leaves.
func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	if err == nil {
		return nil
	}
	return []error{err}
}

func printFindings(path string, findings []provisioning.ValidationError) int {
	errCount := 0
	for _, f := range findings {
		if f.IsError() {
			errCount++
		}
		fmt.Printf("%s: %s\n", path, f.Error())
	}
	return errCount
}
