package topology

import (
	"errors"
	"sort"
	"strings"
)

// Fixed graph node ids. Policies, secrets and identities use PolicyNode,
// SecretNode and IdentityNode.
const (
	NodeNetwork    = "network"
	NodeData       = "data"
	NodeCompute    = "compute"
	NodeTraffic    = "traffic"
	NodeElasticity = "elasticity"
)

// Graph is a dependency graph of declared entities.
type Graph struct {
	deps map[string][]string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{deps: make(map[string][]string)}
}

// Add declares node id depending on deps. Declaring a node twice merges
// its dependencies.
func (g *Graph) Add(id string, deps ...string) {
	g.deps[id] = append(g.deps[id], deps...)
}

// Has reports whether id is declared.
func (g *Graph) Has(id string) bool {
	_, ok := g.deps[id]
	return ok
}

// Nodes returns all declared node ids, sorted.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.deps))
	for id := range g.deps {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Dependencies returns the direct dependencies of id, sorted and deduplicated.
func (g *Graph) Dependencies(id string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range g.deps[id] {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// Resolve returns every node ordered so that each appears after all of its
// dependencies. Ties are broken alphabetically so the order is stable.
// Undeclared references and cycles are reported as DeclarationErrors.
func (g *Graph) Resolve() ([]string, error) {
	var errs []error
	for _, id := range g.Nodes() {
		for _, d := range g.Dependencies(id) {
			if !g.Has(d) {
				errs = append(errs, refErr(id, d, ReasonMissingRef, "references an undeclared entity"))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	indegree := make(map[string]int, len(g.deps))
	dependents := make(map[string][]string)
	for _, id := range g.Nodes() {
		deps := g.Dependencies(id)
		indegree[id] = len(deps)
		for _, d := range deps {
			dependents[d] = append(dependents[d], id)
		}
	}

	var ready []string
	for _, id := range g.Nodes() {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]string, 0, len(g.deps))
	for len(ready) > 0 {
		sort.Strings(ready)
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		for _, next := range dependents[id] {
			indegree[next]--
			if indegree[next] == 0 {
				ready = append(ready, next)
			}
		}
	}

	if len(order) < len(g.deps) {
		cycle := g.findCycle(indegree)
		return nil, declErr(cycle[0], ReasonCycle, "dependency cycle: %s", strings.Join(cycle, " -> "))
	}
	return order, nil
}

// findCycle walks unresolved nodes until one repeats and returns the loop.
func (g *Graph) findCycle(indegree map[string]int) []string {
	var start string
	for _, id := range g.Nodes() {
		if indegree[id] > 0 {
			start = id
			break
		}
	}

	index := make(map[string]int)
	var path []string
	cur := start
	for {
		if i, ok := index[cur]; ok {
			return append(path[i:], cur)
		}
		index[cur] = len(path)
		path = append(path, cur)
		for _, d := range g.Dependencies(cur) {
			if indegree[d] > 0 {
				cur = d
				break
			}
		}
	}
}
