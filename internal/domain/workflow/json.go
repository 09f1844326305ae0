package workflow

import (
	"encoding/json"
	"fmt"

	"github.com/wiredwork/orcheo/internal/domain/domainerr"
)

// requiredNodeKeys enumerates the node key-set from the wire schema. A node
// object missing any of these keys is rejected even if encoding/json would
// otherwise happily leave the corresponding field at its zero value.
var requiredNodeKeys = []string{
	"id", "name", "description", "service", "action", "actor",
	"parameters", "depends_on", "outputs",
}

// UnmarshalJSON enforces that every node object carries the full enumerated
// key-set while silently tolerating unknown top-level workflow keys (the
// default behavior of encoding/json on an aliased struct).
func (w *Workflow) UnmarshalJSON(data []byte) error {
	type alias Workflow
	var raw struct {
		alias
		Nodes []json.RawMessage `json:"nodes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return domainerr.NewSchemaError("workflow json does not match expected shape", err)
	}

	nodes := make([]WorkflowNode, 0, len(raw.Nodes))
	for i, rawNode := range raw.Nodes {
		if err := requireKeys(rawNode, requiredNodeKeys); err != nil {
			return domainerr.NewSchemaError(fmt.Sprintf("node at index %d missing required key", i), err)
		}
		var node WorkflowNode
		if err := json.Unmarshal(rawNode, &node); err != nil {
			return domainerr.NewSchemaError(fmt.Sprintf("node at index %d does not match expected shape", i), err)
		}
		nodes = append(nodes, node)
	}

	*w = Workflow(raw.alias)
	w.Nodes = nodes
	return nil
}

// requireKeys verifies that a raw JSON object carries every named key,
// regardless of the value assigned to it.
func requireKeys(raw json.RawMessage, keys []string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}
	for _, key := range keys {
		if _, ok := fields[key]; !ok {
			return fmt.Errorf("missing key %q", key)
		}
	}
	return nil
}
