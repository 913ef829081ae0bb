// Package handlers implements the kcstack commands.
//
// Each exported function backs one cobra command. Collaborators that touch
// the outside world (Node.js through jsii, AWS, the terminal) are package
// variables so tests can replace them.
package handlers

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/kcstack/internal/config"
	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
)

var logOptions provisioning.LogOptions

// SetLogOptions configures the logger of every command run.
func SetLogOptions(verbose, jsonLines bool) {
	logOptions = provisioning.LogOptions{Verbose: verbose, JSON: jsonLines}
}

// Factory function variables - can be replaced in tests.
var (
	// findConfigFile locates kcstack.yaml from the working directory up.
	findConfigFile = config.FindConfigFile

	// loadConfigFile reads and validates one configuration file.
	loadConfigFile = config.LoadFile

	// isInteractiveTTY reports whether stdout is a terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// newObserver returns the observer a run logs through.
func newObserver() provisioning.Observer {
	return provisioning.NewLogObserver(provisioning.NewLogger(logOptions, provisioning.NewRunID()))
}

// resolveConfigPath returns path, or the auto-detected kcstack.yaml when
// path is empty.
func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	found, err := findConfigFile()
	if err != nil {
		return "", fmt.Errorf("no config file found: %w\nRun 'kcstack init' to create one", err)
	}
	return found, nil
}

// loadTopologies loads every configuration and declares its topology.
func loadTopologies(paths []string) ([]*topology.Topology, error) {
	if len(paths) == 0 {
		paths = []string{""}
	}

	topologies := make([]*topology.Topology, 0, len(paths))
	for _, p := range paths {
		path, err := resolveConfigPath(p)
		if err != nil {
			return nil, err
		}
		cfg, err := loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		topo, err := topology.Declare(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		topologies = append(topologies, topo)
	}
	return topologies, nil
}
