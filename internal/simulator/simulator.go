// Package simulator implements the five in-memory services (hr, google,
// slack, jira, github) that enforce cross-service preconditions without
// making any real side effects.
package simulator

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wiredwork/orcheo/internal/domain/simstate"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
)

// base carries the shared state and trace sink every simulator service
// mutates, plus the success-logging helper common to all of them.
type base struct {
	name  string
	state *simstate.State
	tr    *trace.Trace
}

func (b *base) logSuccess(nodeID, action string, params service.Params, result service.Result) {
	b.tr.Append(trace.Step{
		NodeID:     nodeID,
		Service:    b.name,
		Action:     action,
		Parameters: map[string]interface{}(params),
		Result:     map[string]interface{}(result),
		Status:     trace.StatusSuccess,
		Timestamp:  time.Now(),
	})
}

func precondition(message string) error {
	return service.NewError(service.ErrPreconditionFailed, message, nil)
}

// shortID returns an uppercase hex fragment of length n, derived from a
// freshly generated UUIDv4 — the Go equivalent of uuid.uuid4().hex[:n].
func shortID(n int) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(raw) {
		n = len(raw)
	}
	return strings.ToUpper(raw[:n])
}

func getString(params service.Params, key, fallback string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

func getStringSlice(params service.Params, key string) []string {
	v, ok := params[key]
	if !ok {
		return nil
	}
	switch typed := v.(type) {
	case []string:
		return typed
	case []interface{}:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Services constructs all five simulator services sharing one state snapshot
// and trace sink, ready to be merged into a run's service.Map.
func Services(state *simstate.State, tr *trace.Trace) service.Map {
	return service.Map{
		"hr":     newHRService(state, tr),
		"google": newGoogleService(state, tr),
		"slack":  newSlackService(state, tr),
		"jira":   newJiraService(state, tr),
		"github": newGithubService(state, tr),
	}
}
