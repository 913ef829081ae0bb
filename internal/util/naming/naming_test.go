package naming

import "testing"

func TestNamingFunctions(t *testing.T) {
	t.Parallel()
	deployment := "keycloak"
	stack := "keycloak-dev"

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{name: "ID", got: ID("load-balancer", "security group"), expected: "LoadBalancerSecurityGroup"},
		{name: "SecurityGroupID", got: SecurityGroupID("data"), expected: "DataSecurityGroup"},
		{name: "SecretID", got: SecretID("admin"), expected: "AdminSecret"},
		{name: "RoleID", got: RoleID("execution"), expected: "ExecutionRole"},
		{name: "EndpointID", got: EndpointID("secretsmanager"), expected: "SecretsmanagerEndpoint"},
		{name: "ListenerID", got: ListenerID(443), expected: "Listener443"},
		{name: "SecurityGroup", got: SecurityGroup(deployment, "load-balancer"), expected: "keycloak-load-balancer"},
		{name: "Secret", got: Secret(stack, "database"), expected: "keycloak-dev/database"},
		{name: "Cluster", got: Cluster(deployment), expected: "keycloak-cluster"},
		{name: "Service", got: Service(deployment), expected: "keycloak-keycloak"},
		{name: "Role", got: Role(deployment, "task"), expected: "keycloak-task-role"},
		{name: "OutputExport", got: OutputExport(stack, "DatabaseEndpoint"), expected: "keycloak-dev-database-endpoint"},
		{name: "RegistryStack", got: RegistryStack(stack), expected: "keycloak-dev-registry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.expected {
				t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}
}
