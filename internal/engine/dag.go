// Package engine implements the DAG Executor: topological scheduling,
// parameter templating, skip propagation, and failure injection over a
// Workflow's nodes.
package engine

import (
	"sort"

	"github.com/wiredwork/orcheo/internal/domain/domainerr"
	"github.com/wiredwork/orcheo/internal/domain/workflow"
)

// node is a vertex in the execution graph.
type node struct {
	id         string
	dependsOn  []*node
	dependents []*node
}

// graph is the dependency graph built from a Workflow's nodes.
type graph struct {
	nodes map[string]*node
	order []string
}

// buildGraph constructs a graph from a Workflow's node set, wiring edges
// from each node's depends_on list.
func buildGraph(wf workflow.Workflow) (*graph, error) {
	g := &graph{nodes: make(map[string]*node, len(wf.Nodes))}

	for _, n := range wf.Nodes {
		if _, exists := g.nodes[n.ID]; exists {
			return nil, domainerr.NewDuplicateError("node", n.ID)
		}
		g.nodes[n.ID] = &node{id: n.ID}
	}

	for _, n := range wf.Nodes {
		target := g.nodes[n.ID]
		for _, dep := range n.DependsOn {
			source, ok := g.nodes[dep]
			if !ok {
				return nil, domainerr.NewDependencyError("dependency not found", map[string]interface{}{
					"node_id":             n.ID,
					"missing_dependency": dep,
				})
			}
			source.dependents = append(source.dependents, target)
			target.dependsOn = append(target.dependsOn, source)
		}
	}

	return g, nil
}

// topologicalSort computes a single deterministic total order using Kahn's
// algorithm, breaking ties lexicographically by node id for reproducible
// traces. A cycle is detected by comparing the processed count to the node
// count.
func (g *graph) topologicalSort() error {
	indegree := make(map[string]int, len(g.nodes))
	for id := range g.nodes {
		indegree[id] = 0
	}
	for _, n := range g.nodes {
		for _, dep := range n.dependents {
			indegree[dep.id]++
		}
	}

	var queue []string
	for id, degree := range indegree {
		if degree == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	order := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		var freed []string
		for _, dependent := range g.nodes[id].dependents {
			indegree[dependent.id]--
			if indegree[dependent.id] == 0 {
				freed = append(freed, dependent.id)
			}
		}
		sort.Strings(freed)

		merged := make([]string, 0, len(queue)+len(freed))
		merged = append(merged, queue...)
		merged = append(merged, freed...)
		sort.Strings(merged)
		queue = merged
	}

	if len(order) != len(g.nodes) {
		cyclic := make([]string, 0)
		for id, degree := range indegree {
			if degree > 0 {
				cyclic = append(cyclic, id)
			}
		}
		sort.Strings(cyclic)
		return domainerr.NewCycleError(cyclic)
	}

	g.order = order
	return nil
}
