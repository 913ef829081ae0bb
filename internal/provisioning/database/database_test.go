package database

import (
	"context"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
)

func TestProvisioner_Name(t *testing.T) {
	t.Parallel()
	p := NewProvisioner()
	assert.Equal(t, provisioning.PhaseDatabase, p.Name())
	assert.Equal(t, []string{provisioning.PhaseNetwork, provisioning.PhaseSecurity}, p.DependsOn())
}

func TestReaderIDs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		instances int
		want      []string
	}{
		{2, []string{"Reader1"}},
		{3, []string{"Reader1", "Reader2"}},
		{1, []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReaderIDs(topology.DataTierCluster{Instances: tt.instances}))
	}
}

func TestRemovalPolicy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		want    awscdk.RemovalPolicy
		wantErr bool
	}{
		{name: "snapshot", want: awscdk.RemovalPolicy_SNAPSHOT},
		{name: "", want: awscdk.RemovalPolicy_SNAPSHOT},
		{name: "retain", want: awscdk.RemovalPolicy_RETAIN},
		{name: "destroy", want: awscdk.RemovalPolicy_DESTROY},
		{name: "archive", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := RemovalPolicy(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProvision_RequiresSecurityGroup(t *testing.T) {
	t.Parallel()
	topo := &topology.Topology{Data: topology.DataTierCluster{Policy: topology.PolicyData, Credential: topology.SecretDatabase}}
	ctx := provisioning.NewContext(context.Background(), nil, topo, nil, nil)

	err := NewProvisioner().provisionCluster(ctx)
	assert.ErrorContains(t, err, "no security group for policy data")
}
