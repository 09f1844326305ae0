package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/wiredwork/orcheo/internal/domain/domainerr"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/domain/workflow"
	"github.com/wiredwork/orcheo/internal/service"
)

// Execute runs a Workflow's nodes one at a time in topological order against
// the supplied Services map, appending every attempted node to tr and
// returning the assembled execution report.
//
// Unlike a level-parallel scheduler, nodes never fan out: action ordering
// determines simulator precondition outcomes, and the trace must be
// deterministic for the Planner's repair loop to reason about it (see the
// concurrency model notes carried from the source specification).
//
// A cycle in the DAG, an unregistered service tag, or an unregistered action
// on a known service are all structural mistakes in the workflow itself.
// Each is detected before any node runs and returned as a fatal error with
// no trace steps recorded, rather than surfacing mid-trace as a node
// failure.
func Execute(ctx context.Context, wf workflow.Workflow, services service.Map, failureCfg *trace.FailureConfig, rng *rand.Rand, tr *trace.Trace) (*trace.Report, error) {
	g, err := buildGraph(wf)
	if err != nil {
		return nil, err
	}
	if err := g.topologicalSort(); err != nil {
		return nil, err
	}
	if err := validateDispatchTargets(wf, services); err != nil {
		return nil, err
	}

	nodeByID := make(map[string]workflow.WorkflowNode, len(wf.Nodes))
	for _, n := range wf.Nodes {
		nodeByID[n.ID] = n
	}

	outputs := make(map[string]service.Result, len(wf.Nodes))
	failedNodes := make(map[string]struct{})
	skippedNodes := make(map[string]struct{})
	var dependencyViolations []string
	var successful, failed, skipped int

	for _, nodeID := range g.order {
		n := nodeByID[nodeID]

		if upstream := upstreamFailures(n, failedNodes, skippedNodes); len(upstream) > 0 {
			skippedNodes[nodeID] = struct{}{}
			skipped++
			tr.Append(trace.Step{
				NodeID:     nodeID,
				Service:    n.Service,
				Action:     n.Action,
				Parameters: map[string]interface{}{},
				Status:     trace.StatusSkipped,
				Error:      "skipped due to upstream failure: " + strings.Join(upstream, ", "),
				Timestamp:  time.Now(),
			})
			continue
		}

		if rule := failureCfg.ShouldFail(rng, n.Service, n.Action); rule != nil {
			failedNodes[nodeID] = struct{}{}
			failed++
			params := resolveParameters(n.Parameters, wf.Parameters, outputs)
			tr.Append(trace.Step{
				NodeID:     nodeID,
				Service:    n.Service,
				Action:     n.Action,
				Parameters: map[string]interface{}(params),
				Status:     trace.StatusFailed,
				Error:      fmt.Sprintf("[%s] %s", rule.ErrorType, rule.Message),
				Timestamp:  time.Now(),
			})
			continue
		}

		params := resolveParameters(n.Parameters, wf.Parameters, outputs)
		result, dispatchErr := dispatch(ctx, services, n, params)
		if dispatchErr != nil {
			failedNodes[nodeID] = struct{}{}
			failed++
			if svcErr, ok := asServiceError(dispatchErr); ok && svcErr.Kind == service.ErrPreconditionFailed {
				dependencyViolations = append(dependencyViolations, fmt.Sprintf("%s: %s", nodeID, svcErr.Message))
			}
			tr.Append(trace.Step{
				NodeID:     nodeID,
				Service:    n.Service,
				Action:     n.Action,
				Parameters: map[string]interface{}(params),
				Status:     trace.StatusFailed,
				Error:      dispatchErr.Error(),
				Timestamp:  time.Now(),
			})
			continue
		}

		outputs[nodeID] = result
		successful++
	}

	tr.Complete(time.Now())

	return &trace.Report{
		WorkflowID:           wf.ID,
		WorkflowName:         wf.Name,
		TotalSteps:           len(wf.Nodes),
		Successful:           successful,
		Failed:               failed,
		Skipped:              skipped,
		Trace:                tr,
		DependencyViolations: dependencyViolations,
	}, nil
}

// actionLister is implemented by service.ActionRegistry so the executor can
// validate a node's action tag before dispatch without invoking it. Services
// that don't implement it (e.g. a real connector with no static action
// table) fall back to surfacing an unknown-action failure at dispatch time.
type actionLister interface {
	Actions() []string
}

// validateDispatchTargets checks every node's service and action tag up
// front, the same way a cycle is caught before any node runs: both are
// structural mistakes in the workflow itself, not an operational failure of
// any one node, so they abort the run with no trace steps recorded rather
// than appearing as a failed step buried partway through the trace.
func validateDispatchTargets(wf workflow.Workflow, services service.Map) error {
	for _, n := range wf.Nodes {
		svc, ok := services.Get(n.Service)
		if !ok {
			return domainerr.NewUnknownServiceError(n.ID, n.Service)
		}
		lister, ok := svc.(actionLister)
		if !ok {
			continue
		}
		known := false
		for _, action := range lister.Actions() {
			if action == n.Action {
				known = true
				break
			}
		}
		if !known {
			return domainerr.NewUnknownActionError(n.ID, n.Service, n.Action)
		}
	}
	return nil
}

func upstreamFailures(n workflow.WorkflowNode, failedNodes, skippedNodes map[string]struct{}) []string {
	var upstream []string
	for _, dep := range n.DependsOn {
		_, failedDep := failedNodes[dep]
		_, skippedDep := skippedNodes[dep]
		if failedDep || skippedDep {
			upstream = append(upstream, dep)
		}
	}
	return upstream
}

func dispatch(ctx context.Context, services service.Map, n workflow.WorkflowNode, params service.Params) (service.Result, error) {
	svc, ok := services.Get(n.Service)
	if !ok {
		return nil, service.NewError(service.ErrUnknownService, "unknown service: "+n.Service, nil)
	}
	return svc.Invoke(ctx, n.Action, n.ID, params)
}

func asServiceError(err error) (*service.Error, bool) {
	svcErr, ok := err.(*service.Error)
	return svcErr, ok
}
