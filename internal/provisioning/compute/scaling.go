package compute

import (
	"fmt"
	"time"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapplicationautoscaling"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/provisioning"
)

// ScalingPhase attaches target tracking to the Keycloak service.
type ScalingPhase struct{}

// NewScalingPhase creates a new elasticity phase.
func NewScalingPhase() *ScalingPhase {
	return &ScalingPhase{}
}

// Name implements the provisioning.Phase interface.
func (p *ScalingPhase) Name() string {
	return provisioning.PhaseElasticity
}

// DependsOn implements the provisioning.Phase interface.
func (p *ScalingPhase) DependsOn() []string {
	return []string{provisioning.PhaseCompute}
}

// Provision implements the provisioning.Phase interface.
func (p *ScalingPhase) Provision(ctx *provisioning.Context) error {
	e := ctx.Topology.Elasticity
	if ctx.State.Service == nil {
		return fmt.Errorf("scaling needs the service from the %s phase", provisioning.PhaseCompute)
	}

	scaling := ctx.State.Service.AutoScaleTaskCount(&awsapplicationautoscaling.EnableScalingProps{
		MinCapacity: jsii.Number(float64(e.MinReplicas)),
		MaxCapacity: jsii.Number(float64(e.MaxReplicas)),
	})
	ctx.State.Scaling = scaling

	scaling.ScaleOnCpuUtilization(jsii.String("CpuScaling"), &awsecs.CpuUtilizationScalingProps{
		TargetUtilizationPercent: jsii.Number(float64(e.CPUTargetPercent)),
		ScaleInCooldown:          seconds(e.ScaleInCooldown),
		ScaleOutCooldown:         seconds(e.ScaleOutCooldown),
	})
	ctx.Declared(provisioning.PhaseElasticity, "scaling-policy", "CpuScaling")

	scaling.ScaleOnMemoryUtilization(jsii.String("MemoryScaling"), &awsecs.MemoryUtilizationScalingProps{
		TargetUtilizationPercent: jsii.Number(float64(e.MemoryTargetPercent)),
		ScaleInCooldown:          seconds(e.ScaleInCooldown),
		ScaleOutCooldown:         seconds(e.ScaleOutCooldown),
	})
	ctx.Declared(provisioning.PhaseElasticity, "scaling-policy", "MemoryScaling")

	ctx.Observer.Printf("[%s] Scaling %d..%d tasks at %d%% CPU, %d%% memory",
		provisioning.PhaseElasticity, e.MinReplicas, e.MaxReplicas, e.CPUTargetPercent, e.MemoryTargetPercent)
	return nil
}

func seconds(d time.Duration) awscdk.Duration {
	if d <= 0 {
		return nil
	}
	return awscdk.Duration_Seconds(jsii.Number(d.Seconds()))
}
