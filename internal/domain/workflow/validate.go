package workflow

import (
	"fmt"
	"regexp"

	"github.com/wiredwork/orcheo/internal/domain/domainerr"
)

var (
	kebabPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	snakePattern = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)
)

// Validate checks every invariant in the data model: unique node ids, edges
// mirroring depends_on, no dangling references, and no cycles.
func (w Workflow) Validate() error {
	if w.ID == "" {
		return missingField("id")
	}
	if !kebabPattern.MatchString(w.ID) {
		return schemaErr("workflow id must be kebab-case", map[string]interface{}{"id": w.ID})
	}
	if w.Name == "" {
		return missingField("name")
	}
	if w.Version < 1 {
		return schemaErr("workflow version must be >= 1", map[string]interface{}{"version": w.Version})
	}
	if len(w.Nodes) == 0 {
		return schemaErr("workflow requires at least one node", nil)
	}

	seen := make(map[string]struct{}, len(w.Nodes))
	for _, node := range w.Nodes {
		if err := node.Validate(); err != nil {
			return err
		}
		if _, ok := seen[node.ID]; ok {
			return domainerr.NewDuplicateError("node", node.ID)
		}
		seen[node.ID] = struct{}{}
	}

	if err := w.validateDependencies(seen); err != nil {
		return err
	}

	if err := w.validateEdges(); err != nil {
		return err
	}

	return w.detectCycle()
}

func (w Workflow) validateDependencies(known map[string]struct{}) error {
	for _, node := range w.Nodes {
		for _, dep := range node.DependsOn {
			if dep == node.ID {
				return domainerr.NewDependencyError("node cannot depend on itself", map[string]interface{}{"node_id": node.ID})
			}
			if _, ok := known[dep]; !ok {
				return domainerr.NewDependencyError("dependency not found", map[string]interface{}{
					"node_id":             node.ID,
					"missing_dependency": dep,
				})
			}
		}
	}
	return nil
}

// validateEdges enforces that Edges equals the union of (dep, node.id) pairs
// across all nodes' depends_on lists, in either direction.
func (w Workflow) validateEdges() error {
	expected := make(map[Edge]struct{})
	for _, node := range w.Nodes {
		for _, dep := range node.DependsOn {
			expected[Edge{Source: dep, Target: node.ID}] = struct{}{}
		}
	}
	actual := make(map[Edge]struct{}, len(w.Edges))
	for _, e := range w.Edges {
		actual[e] = struct{}{}
	}
	if len(expected) != len(actual) {
		return domainerr.NewDependencyError("edge set does not match depends_on union", map[string]interface{}{
			"expected_count": len(expected),
			"actual_count":   len(actual),
		})
	}
	for e := range expected {
		if _, ok := actual[e]; !ok {
			return domainerr.NewDependencyError("missing edge for dependency", map[string]interface{}{
				"source": e.Source,
				"target": e.Target,
			})
		}
	}
	return nil
}

func (w Workflow) detectCycle() error {
	lookup := make(map[string]WorkflowNode, len(w.Nodes))
	for _, n := range w.Nodes {
		lookup[n.ID] = n
	}

	visited := make(map[string]bool, len(w.Nodes))
	onStack := make(map[string]bool, len(w.Nodes))
	var path []string

	var visit func(string) error
	visit = func(id string) error {
		visited[id] = true
		onStack[id] = true
		path = append(path, id)

		for _, dep := range lookup[id].DependsOn {
			if !visited[dep] {
				if err := visit(dep); err != nil {
					return err
				}
			} else if onStack[dep] {
				cycle := append([]string(nil), path...)
				cycle = append(cycle, dep)
				return domainerr.NewCycleError(cycle)
			}
		}

		onStack[id] = false
		path = path[:len(path)-1]
		return nil
	}

	for _, n := range w.Nodes {
		if !visited[n.ID] {
			if err := visit(n.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// Validate checks a single node's invariants independent of its containing
// workflow (dependency resolution happens at the Workflow level).
func (n WorkflowNode) Validate() error {
	if n.ID == "" {
		return missingField("id")
	}
	if !snakePattern.MatchString(n.ID) {
		return schemaErr(fmt.Sprintf("node id %q must be snake_case", n.ID), nil)
	}
	if n.Service == "" {
		return missingField("service")
	}
	if n.Action == "" {
		return missingField("action")
	}
	for _, p := range n.Parameters {
		if p.Name == "" {
			return schemaErr("node parameter missing name", map[string]interface{}{"node_id": n.ID})
		}
	}
	return nil
}

func missingField(field string) error {
	return domainerr.NewSchemaError(fmt.Sprintf("missing required field %q", field), nil)
}

func schemaErr(message string, context map[string]interface{}) error {
	err := domainerr.NewSchemaError(message, nil)
	if context != nil {
		return err.WithContext(context)
	}
	return err
}
