package simulator

import (
	"context"

	"github.com/wiredwork/orcheo/internal/domain/simstate"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
)

func newGithubService(state *simstate.State, tr *trace.Trace) *service.ActionRegistry {
	b := &base{name: "github", state: state, tr: tr}

	return service.NewActionRegistry("github", map[string]service.ActionFunc{
		"add_to_org": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			username := getString(params, "username", "")
			employeeName := getString(params, "employee_name", "")

			if employeeName != "" && !state.HasEmployeeNamed(employeeName) {
				return nil, precondition("no HR record found for " + employeeName + " — create employee record first")
			}

			org := getString(params, "org", "techcorp")
			state.GithubMembers[username] = simstate.GithubMember{Username: username, Org: org, Role: "member"}

			result := service.Result{"username": username, "org": org, "status": "added"}
			b.logSuccess(nodeID, "add_to_org", params, result)
			return result, nil
		},
		"grant_repo_access": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			username := getString(params, "username", "")
			repo := getString(params, "repo", "")

			if username != "" && !state.IsOrgMember(username) {
				return nil, precondition(username + " is not in the org — add to org first")
			}

			permission := getString(params, "permission", "read")
			result := service.Result{"username": username, "repo": repo, "permission": permission, "status": "granted"}
			b.logSuccess(nodeID, "grant_repo_access", params, result)
			return result, nil
		},
	})
}
