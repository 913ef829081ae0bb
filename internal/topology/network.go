package topology

import (
	"fmt"
	"net/netip"
)

// Tier classifies a subnet group. Only two tiers exist.
type Tier string

const (
	// TierPublic subnets have a route to the internet gateway.
	TierPublic Tier = "public"
	// TierIsolated subnets have no route outside the VPC.
	TierIsolated Tier = "isolated"
)

// IsValid returns true for public and isolated.
func (t Tier) IsValid() bool {
	return t == TierPublic || t == TierIsolated
}

// SubnetGroup is a named set of subnets replicated once per availability zone.
type SubnetGroup struct {
	Name     string
	Tier     Tier
	CIDRMask int
}

// NetworkTopology is the VPC address space and its subnet groups.
type NetworkTopology struct {
	CIDR      string
	MaxAZs    int
	Groups    []SubnetGroup
	Endpoints bool
}

// Subnet is one allocated subnet of a group in one AZ.
type Subnet struct {
	Group   string
	Tier    Tier
	AZIndex int
	CIDR    netip.Prefix
}

// GroupsByTier returns the groups of one tier in declaration order.
func (n NetworkTopology) GroupsByTier(t Tier) []SubnetGroup {
	var out []SubnetGroup
	for _, g := range n.Groups {
		if g.Tier == t {
			out = append(out, g)
		}
	}
	return out
}

// GroupNames returns the names of the groups of one tier.
func (n NetworkTopology) GroupNames(t Tier) []string {
	var out []string
	for _, g := range n.GroupsByTier(t) {
		out = append(out, g.Name)
	}
	return out
}

// SubnetCount returns the number of subnets the VPC will contain.
func (n NetworkTopology) SubnetCount() int {
	return len(n.Groups) * n.MaxAZs
}

// Subnets allocates one block per group and AZ, group-major: every AZ of the
// first group, then every AZ of the second, and so on.
func (n NetworkTopology) Subnets() ([]Subnet, error) {
	alloc, err := newAllocator(n.CIDR)
	if err != nil {
		return nil, err
	}

	out := make([]Subnet, 0, n.SubnetCount())
	for _, g := range n.Groups {
		for az := 0; az < n.MaxAZs; az++ {
			p, err := alloc.next(g.CIDRMask)
			if err != nil {
				return nil, fmt.Errorf("subnet group %s: %w", g.Name, err)
			}
			out = append(out, Subnet{Group: g.Name, Tier: g.Tier, AZIndex: az, CIDR: p})
		}
	}
	return out, nil
}

func (n NetworkTopology) validate() []error {
	var errs []error
	const entity = NodeNetwork

	if n.MaxAZs < 2 {
		errs = append(errs, declErr(entity, ReasonInvalid, "at least 2 availability zones are required, got %d", n.MaxAZs))
	}

	names := make(map[string]bool)
	for _, g := range n.Groups {
		if !g.Tier.IsValid() {
			errs = append(errs, declErr(entity, ReasonInvalid, "subnet group %s has tier %q; only public and isolated exist", g.Name, g.Tier))
		}
		if names[g.Name] {
			errs = append(errs, declErr(entity, ReasonInvalid, "subnet group %s declared twice", g.Name))
		}
		names[g.Name] = true
	}

	if len(n.GroupsByTier(TierPublic)) == 0 {
		errs = append(errs, declErr(entity, ReasonInvalid, "no public subnet group declared"))
	}
	if len(n.GroupsByTier(TierIsolated)) == 0 {
		errs = append(errs, declErr(entity, ReasonInvalid, "no isolated subnet group declared"))
	}

	subnets, err := n.Subnets()
	if err != nil {
		return append(errs, declErr(entity, ReasonInvalid, "%v", err))
	}
	for i := range subnets {
		for j := i + 1; j < len(subnets); j++ {
			if subnets[i].CIDR.Overlaps(subnets[j].CIDR) {
				errs = append(errs, declErr(entity, ReasonInvalid, "subnets %s and %s overlap", subnets[i].CIDR, subnets[j].CIDR))
			}
		}
	}
	return errs
}
