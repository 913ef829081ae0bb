// Package wizard implements the interactive questionnaire behind kcstack init.
package wizard

import (
	"context"
	"fmt"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Deployment identity
	Name        string
	Environment string
	Region      string

	// Keycloak
	Hostname      string
	ImageSource   string // "registry" or "ecr"
	Image         string
	Repository    string
	CreateRepo    bool
	DiscoveryMode string

	// Sizing
	TaskSize     string // key into TaskSizes
	DesiredCount int
	MaxCount     int
	DBInstances  int
	DBClass      string

	// Entry point
	EnableHTTPS    bool
	CertificateARN string
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("deployment identity: %w", err)
	}

	if err := runImageGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("keycloak image: %w", err)
	}

	if err := runSizingGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("sizing: %w", err)
	}

	if err := runEntryPointGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("entry point: %w", err)
	}

	return result, nil
}
