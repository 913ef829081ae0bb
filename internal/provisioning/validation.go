package provisioning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/imamik/kcstack/internal/topology"
)

// Severity levels of a ValidationError.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// PhaseValidation is the name of the pre-flight phase every other phase
// depends on.
const PhaseValidation = "validation"

// ValidationError represents a declaration error or warning.
type ValidationError struct {
	Field    string // Entity or field that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == SeverityError
}

// ValidationPhase implements the Phase interface for pre-flight validation.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return PhaseValidation
}

// DependsOn implements the Phase interface.
func (vp *ValidationPhase) DependsOn() []string {
	return nil
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	if ctx.Topology == nil {
		return errors.New("no topology to declare")
	}

	for _, w := range warnings(ctx.Topology) {
		LogValidationWarning(ctx.Observer, w.Field, w.Message)
	}

	if err := ctx.Topology.Validate(); err != nil {
		for _, de := range topology.DeclarationErrors(err) {
			ctx.Observer.Event(Event{
				Type:     EventValidationError,
				Phase:    PhaseValidation,
				Resource: de.Entity,
				Message:  de.Message,
				Fields:   map[string]string{"reason": string(de.Reason)},
			})
		}
		return fmt.Errorf("declaration validation failed: %w", err)
	}

	ctx.Observer.Printf("[%s] topology is valid", PhaseValidation)
	return nil
}

// Validate runs every structural check plus the advisory warnings and
// returns the findings.
func Validate(t *topology.Topology) []ValidationError {
	var out []ValidationError

	for _, de := range topology.DeclarationErrors(t.Validate()) {
		field := de.Entity
		if de.Reference != "" {
			field += " -> " + de.Reference
		}
		out = append(out, ValidationError{Field: field, Message: de.Message, Severity: SeverityError})
	}

	return append(out, warnings(t)...)
}

func warnings(t *topology.Topology) []ValidationError {
	var out []ValidationError

	if !t.Data.DeletionProtection {
		out = append(out, ValidationError{
			Field:    "database.deletion_protection",
			Message:  "deletion protection is off; the cluster can be deleted with the stack",
			Severity: SeverityWarning,
		})
	}

	if t.Data.RemovalPolicy == "destroy" {
		out = append(out, ValidationError{
			Field:    "database.removal_policy",
			Message:  "removal policy destroy drops the database without a final snapshot",
			Severity: SeverityWarning,
		})
	}

	if t.Traffic.Public && t.Traffic.HTTPS == nil {
		out = append(out, ValidationError{
			Field:    "load_balancer.https",
			Message:  "internet-facing load balancer serves plain HTTP only",
			Severity: SeverityWarning,
		})
	}

	if t.Compute.AssignPublicIP {
		out = append(out, ValidationError{
			Field:    "service.assign_public_ip",
			Message:  "tasks get public IPs; they are still only reachable through the declared policies",
			Severity: SeverityWarning,
		})
	}

	if t.Compute.Image.Registry != "" && strings.HasSuffix(t.Compute.Image.Registry, ":latest") {
		out = append(out, ValidationError{
			Field:    "keycloak.image",
			Message:  "image tag latest makes deployments unreproducible",
			Severity: SeverityWarning,
		})
	}

	return out
}
