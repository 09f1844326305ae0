package simulator

import (
	"context"

	"github.com/wiredwork/orcheo/internal/domain/simstate"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
)

func newJiraService(state *simstate.State, tr *trace.Trace) *service.ActionRegistry {
	b := &base{name: "jira", state: state, tr: tr}

	createIssue := func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
		issueKey := "ONBOARD-" + shortID(4)
		summary := getString(params, "summary", "")
		issueType := getString(params, "issue_type", "Task")
		assignee := getString(params, "assignee", "")

		state.JiraIssues[issueKey] = simstate.JiraIssue{
			Key:      issueKey,
			Summary:  summary,
			Type:     issueType,
			Status:   "To Do",
			Assignee: assignee,
		}

		result := service.Result{"issue_key": issueKey, "summary": summary, "status": "created"}
		b.logSuccess(nodeID, "create_issue", params, result)
		return result, nil
	}

	return service.NewActionRegistry("jira", map[string]service.ActionFunc{
		"create_issue": createIssue,
		"create_epic": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			epicParams := make(service.Params, len(params)+1)
			for k, v := range params {
				epicParams[k] = v
			}
			epicParams["issue_type"] = "Epic"
			return createIssue(ctx, nodeID, epicParams)
		},
		"assign_issue": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			issueKey := getString(params, "issue_key", "")
			assignee := getString(params, "assignee", "")

			if issueKey != "" {
				if issue, ok := state.JiraIssues[issueKey]; ok {
					issue.Assignee = assignee
					state.JiraIssues[issueKey] = issue
				}
			}

			result := service.Result{"issue_key": issueKey, "assignee": assignee, "status": "assigned"}
			b.logSuccess(nodeID, "assign_issue", params, result)
			return result, nil
		},
	})
}
