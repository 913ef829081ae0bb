package config

import (
	"fmt"
	"strings"
)

// SubnetTier classifies a subnet group by reachability.
type SubnetTier string

const (
	// TierPublic subnets route to an internet gateway.
	TierPublic SubnetTier = "public"
	// TierIsolated subnets have no route outside the VPC.
	TierIsolated SubnetTier = "isolated"
)

// ValidTiers returns all valid subnet tiers.
func ValidTiers() []SubnetTier {
	return []SubnetTier{TierPublic, TierIsolated}
}

// IsValid returns true if the tier is public or isolated.
func (t SubnetTier) IsValid() bool {
	switch t {
	case TierPublic, TierIsolated:
		return true
	default:
		return false
	}
}

// EngineVersion is an Aurora MySQL 3 release, e.g. "3.04.0".
type EngineVersion string

// DefaultEngineVersion is the release the deployment was first built on.
const DefaultEngineVersion EngineVersion = "3.04.0"

// SupportedEngineVersions lists the Aurora MySQL 3 releases kcstack accepts.
func SupportedEngineVersions() []EngineVersion {
	return []EngineVersion{"3.04.0", "3.04.1", "3.04.2", "3.05.2", "3.06.0", "3.07.1", "3.08.0"}
}

// IsValid returns true if the version is a supported Aurora MySQL 3 release.
func (v EngineVersion) IsValid() bool {
	for _, s := range SupportedEngineVersions() {
		if s == v {
			return true
		}
	}
	return false
}

// FullVersion returns the engine version string RDS expects.
func (v EngineVersion) FullVersion() string {
	return fmt.Sprintf("8.0.mysql_aurora.%s", v)
}

// MajorVersion returns the MySQL major version of the release.
func (v EngineVersion) MajorVersion() string {
	return "8.0"
}

// RemovalPolicy controls what happens to stateful resources on stack deletion.
type RemovalPolicy string

const (
	RemovalSnapshot RemovalPolicy = "snapshot"
	RemovalRetain   RemovalPolicy = "retain"
	RemovalDestroy  RemovalPolicy = "destroy"
)

// IsValid returns true if the policy is known.
func (p RemovalPolicy) IsValid() bool {
	switch p {
	case RemovalSnapshot, RemovalRetain, RemovalDestroy:
		return true
	default:
		return false
	}
}

// DiscoveryMode selects the JGroups discovery protocol for the Keycloak cache.
type DiscoveryMode string

const (
	// DiscoveryDNS registers tasks in Cloud Map and uses DNS_PING.
	DiscoveryDNS DiscoveryMode = "dns"
	// DiscoveryS3 uses S3_PING against a bucket owned by the stack.
	DiscoveryS3 DiscoveryMode = "s3"
)

// ValidDiscoveryModes returns all valid discovery modes.
func ValidDiscoveryModes() []DiscoveryMode {
	return []DiscoveryMode{DiscoveryDNS, DiscoveryS3}
}

// IsValid returns true if the mode is known.
func (m DiscoveryMode) IsValid() bool {
	switch m {
	case DiscoveryDNS, DiscoveryS3:
		return true
	default:
		return false
	}
}

// String returns a human-readable description of the mode.
func (m DiscoveryMode) String() string {
	switch m {
	case DiscoveryDNS:
		return "dns (Cloud Map + DNS_PING)"
	case DiscoveryS3:
		return "s3 (S3_PING)"
	default:
		return string(m)
	}
}

// logRetentionDays are the retention periods CloudWatch Logs accepts.
var logRetentionDays = []int{1, 3, 5, 7, 14, 30, 60, 90, 120, 150, 180, 365, 400, 545, 731, 1096, 1827, 2192, 2557, 2922, 3288, 3653}

// ValidLogRetention reports whether days is an accepted CloudWatch retention.
func ValidLogRetention(days int) bool {
	for _, d := range logRetentionDays {
		if d == days {
			return true
		}
	}
	return false
}

// ParseSubnetTier parses a tier name, accepting CDK-style aliases.
func ParseSubnetTier(s string) (SubnetTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public":
		return TierPublic, nil
	case "isolated", "private_isolated", "private-isolated":
		return TierIsolated, nil
	default:
		return "", fmt.Errorf("unknown subnet tier %q: must be public or isolated", s)
	}
}

// UnmarshalText accepts the aliases ParseSubnetTier knows. Unknown names are
// kept as written so Validate can report them with their field path.
func (t *SubnetTier) UnmarshalText(text []byte) error {
	tier, err := ParseSubnetTier(string(text))
	if err != nil {
		*t = SubnetTier(text)
		return nil
	}
	*t = tier
	return nil
}
