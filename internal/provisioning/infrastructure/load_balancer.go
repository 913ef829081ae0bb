package infrastructure

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	elbv2 "github.com/aws/aws-cdk-go/awscdk/v2/awselasticloadbalancingv2"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
	"github.com/imamik/kcstack/internal/util/naming"
)

// maxLoadBalancerName is the ELB limit on load balancer names.
const maxLoadBalancerName = 32

// stickinessDays is the lifetime of the load balancer affinity cookie.
const stickinessDays = 1

// LoadBalancerName returns the physical name, or "" when name exceeds the
// ELB limit and CloudFormation should generate one.
func LoadBalancerName(name string) string {
	if len(name) > maxLoadBalancerName {
		return ""
	}
	return name
}

// TargetListenerPort returns the listener port that forwards to the targets.
func TargetListenerPort(tr topology.TrafficDistribution) int {
	if tr.HTTPS != nil {
		return tr.HTTPS.Port
	}
	return tr.ListenerPort
}

// TrafficPhase declares the application load balancer and its listeners.
type TrafficPhase struct{}

// NewTrafficPhase creates a new traffic phase.
func NewTrafficPhase() *TrafficPhase {
	return &TrafficPhase{}
}

// Name implements the provisioning.Phase interface.
func (p *TrafficPhase) Name() string {
	return provisioning.PhaseTraffic
}

// DependsOn implements the provisioning.Phase interface.
func (p *TrafficPhase) DependsOn() []string {
	return []string{provisioning.PhaseSecurity, provisioning.PhaseCompute}
}

// Provision implements the provisioning.Phase interface.
func (p *TrafficPhase) Provision(ctx *provisioning.Context) error {
	tr := ctx.Topology.Traffic
	sg, ok := ctx.State.SecurityGroups[tr.Policy]
	if !ok {
		return fmt.Errorf("no security group for policy %s", tr.Policy)
	}
	if ctx.State.Service == nil {
		return fmt.Errorf("load balancer needs the service from the %s phase", provisioning.PhaseCompute)
	}

	// 1. Load balancer
	props := &elbv2.ApplicationLoadBalancerProps{
		Vpc:            ctx.State.VPC,
		InternetFacing: jsii.Bool(tr.Public),
		SecurityGroup:  sg,
		VpcSubnets: &awsec2.SubnetSelection{
			SubnetType: SubnetType(tr.Tier),
			OnePerAz:   jsii.Bool(true),
		},
	}
	if name := LoadBalancerName(tr.Name); name != "" {
		props.LoadBalancerName = jsii.String(name)
	}
	lb := elbv2.NewApplicationLoadBalancer(ctx.Stack, jsii.String(naming.LoadBalancerID), props)
	ctx.State.LoadBalancer = lb
	ctx.Tag(lb, provisioning.PhaseTraffic)
	ctx.Declared(provisioning.PhaseTraffic, "load-balancer", naming.LoadBalancerID)

	// 2. Listeners
	listener, plain := p.provisionListeners(ctx, lb, tr)
	ctx.State.Listener = listener

	// 3. Targets
	hc := tr.HealthCheck
	targets := &elbv2.AddApplicationTargetsProps{
		Port:     jsii.Number(float64(tr.TargetPort)),
		Protocol: elbv2.ApplicationProtocol_HTTP,
		Targets: &[]elbv2.IApplicationLoadBalancerTarget{
			ctx.State.Service.LoadBalancerTarget(&awsecs.LoadBalancerTargetOptions{
				ContainerName: jsii.String(naming.ContainerID),
				ContainerPort: jsii.Number(float64(tr.TargetPort)),
				Protocol:      awsecs.Protocol_TCP,
			}),
		},
		HealthCheck: &elbv2.HealthCheck{
			Path:                  jsii.String(hc.Path),
			Interval:              awscdk.Duration_Seconds(jsii.Number(hc.Interval.Seconds())),
			Timeout:               awscdk.Duration_Seconds(jsii.Number(hc.Timeout.Seconds())),
			HealthyThresholdCount: jsii.Number(float64(hc.HealthyThreshold)),
			HealthyHttpCodes:      jsii.String(hc.HealthyCodes),
		},
	}
	if tr.StickySessions {
		targets.StickinessCookieDuration = awscdk.Duration_Days(jsii.Number(stickinessDays))
	}
	tg := listener.AddTargets(jsii.String(naming.TargetGroupID), targets)
	ctx.State.TargetGroup = tg
	ctx.Declared(provisioning.PhaseTraffic, "target-group", naming.TargetGroupID)

	if plain != nil {
		plain.AddTargetGroups(jsii.String(naming.TargetGroupID), &elbv2.AddApplicationTargetGroupsProps{
			TargetGroups: &[]elbv2.IApplicationTargetGroup{tg},
		})
	}
	return nil
}

// provisionListeners declares the HTTP listener and, with TLS, the HTTPS
// listener. It returns the listener that forwards to the targets, plus the
// plain HTTP listener when it forwards too instead of redirecting.
func (p *TrafficPhase) provisionListeners(ctx *provisioning.Context, lb elbv2.ApplicationLoadBalancer, tr topology.TrafficDistribution) (forward, plain elbv2.ApplicationListener) {
	httpListener := func() elbv2.ApplicationListener {
		id := naming.ListenerID(tr.ListenerPort)
		l := lb.AddListener(jsii.String(id), &elbv2.BaseApplicationListenerProps{
			Port:     jsii.Number(float64(tr.ListenerPort)),
			Protocol: elbv2.ApplicationProtocol_HTTP,
			Open:     jsii.Bool(false),
		})
		ctx.Declared(provisioning.PhaseTraffic, "listener", id)
		return l
	}

	if tr.HTTPS == nil {
		return httpListener(), nil
	}

	id := naming.ListenerID(tr.HTTPS.Port)
	https := lb.AddListener(jsii.String(id), &elbv2.BaseApplicationListenerProps{
		Port:         jsii.Number(float64(tr.HTTPS.Port)),
		Protocol:     elbv2.ApplicationProtocol_HTTPS,
		Certificates: &[]elbv2.IListenerCertificate{elbv2.ListenerCertificate_FromArn(jsii.String(tr.HTTPS.CertificateARN))},
		SslPolicy:    elbv2.SslPolicy_RECOMMENDED_TLS,
		Open:         jsii.Bool(false),
	})
	ctx.Declared(provisioning.PhaseTraffic, "listener", id)

	if !tr.HTTPS.RedirectHTTP {
		return https, httpListener()
	}
	lb.AddRedirect(&elbv2.ApplicationLoadBalancerRedirectConfig{
		SourcePort:     jsii.Number(float64(tr.ListenerPort)),
		SourceProtocol: elbv2.ApplicationProtocol_HTTP,
		TargetPort:     jsii.Number(float64(tr.HTTPS.Port)),
		TargetProtocol: elbv2.ApplicationProtocol_HTTPS,
		Open:           jsii.Bool(false),
	})
	ctx.Declared(provisioning.PhaseTraffic, "redirect", naming.ListenerID(tr.ListenerPort))
	return https, nil
}
