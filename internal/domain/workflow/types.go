// Package workflow defines the Workflow data model: the DAG of service
// actions a planner drafts and the executor runs.
package workflow

// NodeParameter is a single named input to a WorkflowNode. Value may be a
// scalar, a literal string, or a template string containing "{{name}}" or
// "{{node_id.output_key}}" placeholders; non-string values pass through
// templating unchanged.
type NodeParameter struct {
	Name        string      `json:"name"`
	Value       interface{} `json:"value"`
	Description string      `json:"description,omitempty"`
	Required    bool        `json:"required"`
}

// WorkflowNode is one unit of work in a Workflow: an invocation of a named
// action on a named service.
type WorkflowNode struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Service     string            `json:"service"`
	Action      string            `json:"action"`
	Actor       string            `json:"actor"`
	Parameters  []NodeParameter   `json:"parameters"`
	DependsOn   []string          `json:"depends_on"`
	Outputs     map[string]string `json:"outputs"`
}

// Edge is a directed dependency from Source to Target, mirroring one
// (dep, node.id) pair from the node set's depends_on lists.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Workflow is the root entity: a DAG of WorkflowNodes plus global parameters.
type Workflow struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Team        string                 `json:"team"`
	Nodes       []WorkflowNode         `json:"nodes"`
	Edges       []Edge                 `json:"edges"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
	Version     int                    `json:"version"`
}

// NodeByID returns the node with the given identifier, if present.
func (w Workflow) NodeByID(id string) (*WorkflowNode, bool) {
	for i := range w.Nodes {
		if w.Nodes[i].ID == id {
			return &w.Nodes[i], true
		}
	}
	return nil, false
}

// HasDependency reports whether node depends on the given identifier.
func (n WorkflowNode) HasDependency(id string) bool {
	for _, dep := range n.DependsOn {
		if dep == id {
			return true
		}
	}
	return false
}

// Clone returns a defensive deep copy of the workflow.
func (w Workflow) Clone() Workflow {
	nodes := make([]WorkflowNode, len(w.Nodes))
	for i, n := range w.Nodes {
		params := make([]NodeParameter, len(n.Parameters))
		copy(params, n.Parameters)
		deps := append([]string(nil), n.DependsOn...)
		outputs := make(map[string]string, len(n.Outputs))
		for k, v := range n.Outputs {
			outputs[k] = v
		}
		nodes[i] = WorkflowNode{
			ID:          n.ID,
			Name:        n.Name,
			Description: n.Description,
			Service:     n.Service,
			Action:      n.Action,
			Actor:       n.Actor,
			Parameters:  params,
			DependsOn:   deps,
			Outputs:     outputs,
		}
	}
	edges := append([]Edge(nil), w.Edges...)
	params := make(map[string]interface{}, len(w.Parameters))
	for k, v := range w.Parameters {
		params[k] = v
	}
	return Workflow{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Team:        w.Team,
		Nodes:       nodes,
		Edges:       edges,
		Parameters:  params,
		Version:     w.Version,
	}
}
