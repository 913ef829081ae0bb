package naming

import (
	"fmt"

	"github.com/stoewer/go-strcase"
)

// Construct ids of singleton constructs.
const (
	VPCID            = "Vpc"
	LoadBalancerID   = "LoadBalancer"
	TargetGroupID    = "Keycloak"
	DatabaseID       = "Database"
	ClusterID        = "Cluster"
	LogGroupID       = "LogGroup"
	NamespaceID      = "Namespace"
	TaskDefinitionID = "TaskDefinition"
	ContainerID      = "keycloak"
	ServiceID        = "Service"
	DiscoveryID      = "DiscoveryBucket"
	RepositoryID     = "Repository"
)

// ID joins parts into one UpperCamelCase construct id.
// ID("load-balancer", "security group") returns "LoadBalancerSecurityGroup".
func ID(parts ...string) string {
	var id string
	for _, p := range parts {
		id += strcase.UpperCamelCase(p)
	}
	return id
}

func SecurityGroupID(policy string) string {
	return ID(policy, "security-group")
}

func SecretID(secret string) string {
	return ID(secret, "secret")
}

func RoleID(identity string) string {
	return ID(identity, "role")
}

func EndpointID(service string) string {
	return ID(service, "endpoint")
}

func ListenerID(port int) string {
	return fmt.Sprintf("Listener%d", port)
}

func SecurityGroup(deployment, policy string) string {
	return fmt.Sprintf("%s-%s", deployment, strcase.KebabCase(policy))
}

func Secret(stack, secret string) string {
	return fmt.Sprintf("%s/%s", stack, strcase.KebabCase(secret))
}

func Cluster(deployment string) string {
	return fmt.Sprintf("%s-cluster", deployment)
}

func Service(deployment string) string {
	return fmt.Sprintf("%s-keycloak", deployment)
}

func TaskFamily(deployment string) string {
	return fmt.Sprintf("%s-keycloak", deployment)
}

func Role(deployment, identity string) string {
	return fmt.Sprintf("%s-%s-role", deployment, strcase.KebabCase(identity))
}

// OutputExport returns the CloudFormation export name of a stack output.
func OutputExport(stack, output string) string {
	return fmt.Sprintf("%s-%s", stack, strcase.KebabCase(output))
}

// RegistryStack returns the name of the stack holding the ECR repository.
func RegistryStack(stack string) string {
	return fmt.Sprintf("%s-registry", stack)
}
