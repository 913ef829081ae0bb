package compute

import (
	"github.com/imamik/kcstack/internal/provisioning"
)

const phase = provisioning.PhaseCompute

// Provisioner declares the ECS cluster and the Keycloak service.
type Provisioner struct{}

// NewProvisioner creates a new compute provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// DependsOn implements the provisioning.Phase interface.
func (p *Provisioner) DependsOn() []string {
	return []string{provisioning.PhaseNetwork, provisioning.PhaseSecurity, provisioning.PhaseDatabase}
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	// 1. Cluster and logs
	if err := p.provisionCluster(ctx); err != nil {
		return err
	}

	// 2. Identities
	if err := p.provisionIdentities(ctx); err != nil {
		return err
	}

	// 3. Member discovery
	if err := p.provisionDiscovery(ctx); err != nil {
		return err
	}

	// 4. Task definition and container
	if err := p.provisionTask(ctx); err != nil {
		return err
	}

	// 5. Service
	return p.provisionService(ctx)
}
