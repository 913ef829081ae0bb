package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/imamik/kcstack/internal/topology"
)

// PlanSummary is what a configuration declares.
type PlanSummary struct {
	Stack       string         `json:"stack"`
	Account     string         `json:"account,omitempty"`
	Region      string         `json:"region,omitempty"`
	Order       []string       `json:"order"`
	Subnets     []PlanSubnet   `json:"subnets"`
	Policies    []PlanPolicy   `json:"policies"`
	Database    PlanDatabase   `json:"database"`
	Service     PlanService    `json:"service"`
	Entry       PlanEntry      `json:"loadBalancer"`
	Environment []PlanVariable `json:"environment"`
	Registry    string         `json:"registry,omitempty"`
	Tags        []PlanTag      `json:"tags,omitempty"`
}

// PlanSubnet is one subnet of one availability zone.
type PlanSubnet struct {
	Group string `json:"group"`
	Tier  string `json:"tier"`
	AZ    int    `json:"az"`
	CIDR  string `json:"cidr"`
}

// PlanPolicy is one security group and who may reach it.
type PlanPolicy struct {
	Name    string     `json:"name"`
	Ingress []PlanRule `json:"ingress"`
}

// PlanRule is one ingress rule.
type PlanRule struct {
	Port   int    `json:"port"`
	Source string `json:"source"`
}

// PlanDatabase summarizes the data tier.
type PlanDatabase struct {
	Engine       string `json:"engine"`
	Instances    int    `json:"instances"`
	InstanceType string `json:"instanceType"`
	Port         int    `json:"port"`
}

// PlanService summarizes the compute tier and its scaling bounds.
type PlanService struct {
	Image        string `json:"image"`
	CPU          int    `json:"cpu"`
	MemoryMiB    int    `json:"memoryMiB"`
	DesiredCount int    `json:"desiredCount"`
	MinReplicas  int    `json:"minReplicas"`
	MaxReplicas  int    `json:"maxReplicas"`
	CPUTarget    int    `json:"cpuTargetPercent"`
	Discovery    string `json:"discovery"`
}

// PlanEntry summarizes the entry point.
type PlanEntry struct {
	Public bool  `json:"public"`
	Ports  []int `json:"ports"`
	HTTPS  bool  `json:"https"`
}

// PlanVariable is one container environment variable and its source.
type PlanVariable struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Secret bool   `json:"secret"`
}

// PlanTag is one stack tag.
type PlanTag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Plan prints what a configuration declares.
func Plan(_ context.Context, configPath string, jsonOutput bool) error {
	topologies, err := loadTopologies([]string{configPath})
	if err != nil {
		return err
	}

	summary, err := buildPlan(topologies[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	if isInteractiveTTY() {
		fmt.Print(renderPlanStyled(summary))
		return nil
	}
	fmt.Print(renderPlan(summary))
	return nil
}

func buildPlan(topo *topology.Topology) (*PlanSummary, error) {
	order, err := topo.Order()
	if err != nil {
		return nil, err
	}
	subnets, err := topo.Network.Subnets()
	if err != nil {
		return nil, err
	}

	s := &PlanSummary{
		Stack:   topo.StackName(),
		Account: topo.Account,
		Region:  topo.Region,
		Order:   order,
		Database: PlanDatabase{
			Engine:       topo.Data.EngineVersion,
			Instances:    topo.Data.Instances,
			InstanceType: topo.Data.InstanceType,
			Port:         topo.Data.Port,
		},
		Service: PlanService{
			Image:        topo.Compute.Image.String(),
			CPU:          topo.Compute.CPU,
			MemoryMiB:    topo.Compute.MemoryMiB,
			DesiredCount: topo.Compute.DesiredCount,
			MinReplicas:  topo.Elasticity.MinReplicas,
			MaxReplicas:  topo.Elasticity.MaxReplicas,
			CPUTarget:    topo.Elasticity.CPUTargetPercent,
			Discovery:    string(topo.Compute.Discovery.Mode),
		},
		Entry: PlanEntry{
			Public: topo.Traffic.Public,
			Ports:  []int{topo.Traffic.ListenerPort},
			HTTPS:  topo.Traffic.HTTPS != nil,
		},
	}
	if topo.Traffic.HTTPS != nil {
		s.Entry.Ports = append(s.Entry.Ports, topo.Traffic.HTTPS.Port)
	}

	for _, sn := range subnets {
		s.Subnets = append(s.Subnets, PlanSubnet{Group: sn.Group, Tier: string(sn.Tier), AZ: sn.AZIndex, CIDR: sn.CIDR.String()})
	}
	for _, p := range topo.Policies {
		pp := PlanPolicy{Name: p.Name}
		for _, r := range p.Ingress {
			pp.Ingress = append(pp.Ingress, PlanRule{Port: r.Port, Source: r.Source.String()})
		}
		s.Policies = append(s.Policies, pp)
	}
	for _, name := range topo.Compute.EnvNames() {
		v := topo.Compute.Environment[name]
		s.Environment = append(s.Environment, PlanVariable{Name: name, Source: v.String(), Secret: v.IsSecret()})
	}
	if topo.Registry != nil {
		s.Registry = topo.Registry.RepositoryName
	}
	for _, k := range topo.SortedTags() {
		s.Tags = append(s.Tags, PlanTag{Key: k, Value: topo.Tags[k]})
	}
	return s, nil
}
