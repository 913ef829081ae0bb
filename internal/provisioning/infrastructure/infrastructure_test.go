package infrastructure

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
)

func TestPhaseNamesAndDependencies(t *testing.T) {
	t.Parallel()
	tests := []struct {
		phase     provisioning.Phase
		name      string
		dependsOn []string
	}{
		{NewNetworkPhase(), provisioning.PhaseNetwork, []string{provisioning.PhaseValidation}},
		{NewSecurityPhase(), provisioning.PhaseSecurity, []string{provisioning.PhaseNetwork}},
		{NewTrafficPhase(), provisioning.PhaseTraffic, []string{provisioning.PhaseSecurity, provisioning.PhaseCompute}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.name, tt.phase.Name())
			assert.Equal(t, tt.dependsOn, tt.phase.DependsOn())
		})
	}
}

func TestSubnetType(t *testing.T) {
	t.Parallel()
	assert.Equal(t, awsec2.SubnetType_PUBLIC, SubnetType(topology.TierPublic))
	assert.Equal(t, awsec2.SubnetType_PRIVATE_ISOLATED, SubnetType(topology.TierIsolated))
}

func TestInterfaceEndpoints(t *testing.T) {
	t.Parallel()
	assert.Nil(t, InterfaceEndpoints(topology.NetworkTopology{}))
	assert.Equal(t,
		[]string{EndpointECR, EndpointECRDocker, EndpointLogs, EndpointSecretsManager, EndpointSSM},
		InterfaceEndpoints(topology.NetworkTopology{Endpoints: true}))
}

func TestEndpointGroup(t *testing.T) {
	t.Parallel()
	topo := &topology.Topology{
		Network: topology.NetworkTopology{Groups: []topology.SubnetGroup{
			{Name: "ingress", Tier: topology.TierPublic},
			{Name: "app", Tier: topology.TierIsolated},
			{Name: "data", Tier: topology.TierIsolated},
		}},
		Compute: topology.ComputeTaskSpec{Tier: topology.TierIsolated},
	}

	group, err := EndpointGroup(topo)
	require.NoError(t, err)
	assert.Equal(t, "app", group)

	topo.Network.Groups = topo.Network.Groups[:1]
	_, err = EndpointGroup(topo)
	assert.ErrorContains(t, err, "no isolated subnet group")
}

func TestLoadBalancerName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "keycloak-alb", LoadBalancerName("keycloak-alb"))
	assert.Empty(t, LoadBalancerName("a-very-long-deployment-name-for-keycloak-alb"))
}

func TestTargetListenerPort(t *testing.T) {
	t.Parallel()
	plain := topology.TrafficDistribution{ListenerPort: 80}
	assert.Equal(t, 80, TargetListenerPort(plain))

	plain.HTTPS = &topology.HTTPSListener{Port: 443, CertificateARN: "arn:aws:acm:eu-west-1:123456789012:certificate/abc"}
	assert.Equal(t, 443, TargetListenerPort(plain))
}

func TestProvision_RequiresEarlierPhases(t *testing.T) {
	t.Parallel()
	topo := &topology.Topology{
		Traffic: topology.TrafficDistribution{Policy: topology.PolicyLoadBalancer},
	}
	ctx := provisioning.NewContext(t.Context(), nil, topo, nil, nil)

	assert.ErrorContains(t, NewSecurityPhase().Provision(ctx), "need the VPC")
	assert.ErrorContains(t, NewTrafficPhase().Provision(ctx), "no security group for policy load-balancer")
}
