package stack

import (
	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/provisioning/compute"
	"github.com/imamik/kcstack/internal/provisioning/database"
	"github.com/imamik/kcstack/internal/provisioning/infrastructure"
)

// Phases returns every declaration phase of a Keycloak stack. RunPhases
// orders them by dependency.
func Phases() []provisioning.Phase {
	return []provisioning.Phase{
		provisioning.NewValidationPhase(),
		infrastructure.NewNetworkPhase(),
		infrastructure.NewSecurityPhase(),
		database.NewProvisioner(),
		compute.NewProvisioner(),
		infrastructure.NewTrafficPhase(),
		compute.NewScalingPhase(),
	}
}
