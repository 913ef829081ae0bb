package compute

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kcstack/internal/provisioning"
	"github.com/imamik/kcstack/internal/topology"
)

func TestPhases(t *testing.T) {
	t.Parallel()
	p := NewProvisioner()
	assert.Equal(t, provisioning.PhaseCompute, p.Name())
	assert.Equal(t, []string{provisioning.PhaseNetwork, provisioning.PhaseSecurity, provisioning.PhaseDatabase}, p.DependsOn())

	s := NewScalingPhase()
	assert.Equal(t, provisioning.PhaseElasticity, s.Name())
	assert.Equal(t, []string{provisioning.PhaseCompute}, s.DependsOn())
}

func TestRetentionDays(t *testing.T) {
	t.Parallel()
	tests := []struct {
		days    int
		want    awslogs.RetentionDays
		wantErr bool
	}{
		{days: 30, want: awslogs.RetentionDays_ONE_MONTH},
		{days: 7, want: awslogs.RetentionDays_ONE_WEEK},
		{days: 3653, want: awslogs.RetentionDays_TEN_YEARS},
		{days: 31, wantErr: true},
		{days: 0, wantErr: true},
	}
	for _, tt := range tests {
		got, err := RetentionDays(tt.days)
		if tt.wantErr {
			assert.Error(t, err, "days=%d", tt.days)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

// fakeResolver records which reference kinds were resolved. ECS secrets are
// left nil; only their placement matters here.
func fakeResolver(calls *[]string) resolver {
	return resolver{
		parameter: func(_, param string) string {
			*calls = append(*calls, "parameter:"+param)
			return "{{resolve:ssm:" + param + "}}"
		},
		secureParameter: func(envName, param string) awsecs.Secret {
			*calls = append(*calls, "secure:"+param)
			return nil
		},
		secretField: func(secret, field string) (awsecs.Secret, error) {
			*calls = append(*calls, "secret:"+secret+":"+field)
			if secret == "missing" {
				return nil, errors.New("secret missing was not declared")
			}
			return nil, nil
		},
		databaseURL: func() (string, error) {
			return "jdbc:mysql://writer.cluster:3306/keycloakdb", nil
		},
		discoveryBucket: func() (string, error) {
			return "keycloak-discovery", nil
		},
	}
}

func TestResolve_SplitsPlainAndSecrets(t *testing.T) {
	t.Parallel()
	var calls []string
	env := map[string]topology.Value{
		"KC_DB_VENDOR":     topology.Literal("mysql"),
		"KC_DB_URL":        topology.DatabaseURL(),
		"KC_DB_PASSWORD":   topology.SecretField(topology.SecretDatabase, topology.FieldPassword),
		"KC_SPI_THEME":     topology.Parameter("/keycloak/theme"),
		"SMTP_PASSWORD":    topology.SecureParameter("/keycloak/smtp"),
		"JAVA_OPTS_APPEND": {Kind: topology.ValueDiscoveryBucket, Text: "-Djgroups.s3.bucket_name="},
	}

	plain, secrets, err := fakeResolver(&calls).resolve(env)
	require.NoError(t, err)

	assert.Equal(t, "mysql", *plain["KC_DB_VENDOR"])
	assert.Equal(t, "jdbc:mysql://writer.cluster:3306/keycloakdb", *plain["KC_DB_URL"])
	assert.Equal(t, "{{resolve:ssm:/keycloak/theme}}", *plain["KC_SPI_THEME"])
	assert.Equal(t, "-Djgroups.s3.bucket_name=keycloak-discovery", *plain["JAVA_OPTS_APPEND"])
	assert.Len(t, plain, 4)

	assert.Contains(t, secrets, "KC_DB_PASSWORD")
	assert.Contains(t, secrets, "SMTP_PASSWORD")
	assert.Len(t, secrets, 2)
	assert.ElementsMatch(t, []string{"parameter:/keycloak/theme", "secure:/keycloak/smtp", "secret:database:password"}, calls)
}

func TestResolve_FullEnvironmentHasNoLiteralCredentials(t *testing.T) {
	t.Parallel()
	var calls []string
	c := topology.ComputeTaskSpec{Environment: map[string]topology.Value{
		"KEYCLOAK_ADMIN":          topology.SecretField(topology.SecretAdmin, topology.FieldUsername),
		"KEYCLOAK_ADMIN_PASSWORD": topology.SecretField(topology.SecretAdmin, topology.FieldPassword),
		"KC_DB_USERNAME":          topology.SecretField(topology.SecretDatabase, topology.FieldUsername),
		"KC_DB_PASSWORD":          topology.SecretField(topology.SecretDatabase, topology.FieldPassword),
		"KC_HOSTNAME":             topology.Literal("www.mima.com"),
	}}

	plain, secrets, err := fakeResolver(&calls).resolve(c.Environment)
	require.NoError(t, err)

	for name := range plain {
		assert.False(t, topology.IsCredentialName(name), "%s passed as plain environment", name)
	}
	assert.Len(t, secrets, 4)
}

func TestResolve_Errors(t *testing.T) {
	t.Parallel()
	var calls []string

	_, _, err := fakeResolver(&calls).resolve(map[string]topology.Value{
		"API_TOKEN": topology.SecretField("missing", "token"),
	})
	assert.ErrorContains(t, err, "API_TOKEN: secret missing was not declared")

	_, _, err = fakeResolver(&calls).resolve(map[string]topology.Value{
		"X": {Kind: "bogus"},
	})
	assert.ErrorContains(t, err, `unknown value kind "bogus"`)
}

func TestProvision_RequiresVPC(t *testing.T) {
	t.Parallel()
	topo := &topology.Topology{}
	ctx := provisioning.NewContext(context.Background(), nil, topo, nil, nil)

	assert.ErrorContains(t, NewProvisioner().Provision(ctx), "cluster needs the VPC")
	assert.ErrorContains(t, NewScalingPhase().Provision(ctx), "scaling needs the service")
}
