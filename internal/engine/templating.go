package engine

import (
	"fmt"
	"regexp"

	"github.com/wiredwork/orcheo/internal/domain/workflow"
	"github.com/wiredwork/orcheo/internal/service"
)

var templatePattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// resolveParameters substitutes every "{{name}}" template against the
// workflow's global parameters, then every "{{node_id.output_key}}" template
// against the recorded outputs of upstream nodes. Substitution is
// single-pass and order-sensitive (globals first, then upstream outputs);
// unmatched templates are left unchanged, and non-string values pass through
// untouched.
func resolveParameters(params []workflow.NodeParameter, globals map[string]interface{}, outputs map[string]service.Result) service.Params {
	resolved := make(service.Params, len(params))
	for _, p := range params {
		resolved[p.Name] = resolveValue(p.Value, globals, outputs)
	}
	return resolved
}

func resolveValue(value interface{}, globals map[string]interface{}, outputs map[string]service.Result) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}
	if !templatePattern.MatchString(s) {
		return s
	}

	afterGlobals := substitute(s, func(name string) (string, bool) {
		v, ok := globals[name]
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%v", v), true
	})

	return substitute(afterGlobals, func(name string) (string, bool) {
		nodeID, key, ok := splitNodeKey(name)
		if !ok {
			return "", false
		}
		result, ok := outputs[nodeID]
		if !ok {
			return "", false
		}
		v, ok := result[key]
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%v", v), true
	})
}

func substitute(s string, lookup func(name string) (string, bool)) string {
	return templatePattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := templatePattern.FindStringSubmatch(match)
		name := groups[1]
		if resolved, ok := lookup(name); ok {
			return resolved
		}
		return match
	})
}

func splitNodeKey(name string) (nodeID, key string, ok bool) {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i], name[i+1:], true
		}
	}
	return "", "", false
}
