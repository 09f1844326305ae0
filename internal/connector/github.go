package connector

import (
	"context"
	"net/http"

	"github.com/wiredwork/orcheo/internal/config"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
)

const githubAPI = "https://api.github.com"

// permissionToRole maps the workflow-facing permission level to the role
// string the GitHub REST API expects on a collaborator invite.
var permissionToRole = map[string]string{
	"read":  "pull",
	"write": "push",
}

// NewGitHub builds the github service against the GitHub REST API.
//
// Required settings: GitHubSettings.Token (personal access token or
// installation token with admin:org and repo scope) and GitHubSettings.Org.
func NewGitHub(settings config.GitHubSettings, client *http.Client, tr *trace.Trace) *service.ActionRegistry {
	b := newBase("github", client, tr)
	headers := map[string]string{
		"Authorization": "Bearer " + settings.Token,
		"Accept":        "application/vnd.github+json",
		"Content-Type":  "application/json",
	}

	return service.NewActionRegistry("github", map[string]service.ActionFunc{
		"add_to_org": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			org := getString(params, "org", settings.Org)
			username := getString(params, "username", "")

			status, raw, err := b.doJSON(ctx, http.MethodPut, githubAPI+"/orgs/"+org+"/memberships/"+username,
				headers, map[string]interface{}{"role": "member"}, nil)
			if err != nil {
				return nil, service.NewError(service.ErrConnectorError, "github add_to_org request failed", err)
			}
			switch status {
			case http.StatusForbidden:
				return nil, service.NewError(service.ErrPermissionDenied, "not authorized to manage membership for org "+org, nil)
			case http.StatusNotFound:
				return nil, service.NewError(service.ErrNotFound, "github org "+org+" not found", nil)
			}
			if !okStatus(status, http.StatusOK, http.StatusCreated) {
				return nil, StatusError(status, "github add_to_org", string(raw))
			}

			result := service.Result{"org": org, "username": username, "status": "added"}
			b.logSuccess(nodeID, "add_to_org", params, result)
			return result, nil
		},
		"grant_repo_access": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			org := getString(params, "org", settings.Org)
			repo := getString(params, "repo", "")
			username := getString(params, "username", "")
			permission := getString(params, "permission", "read")

			role, ok := permissionToRole[permission]
			if !ok {
				role = "pull"
			}

			status, raw, err := b.doJSON(ctx, http.MethodPut, githubAPI+"/repos/"+org+"/"+repo+"/collaborators/"+username,
				headers, map[string]interface{}{"permission": role}, nil)
			if err != nil {
				return nil, service.NewError(service.ErrConnectorError, "github grant_repo_access request failed", err)
			}
			if !okStatus(status, http.StatusCreated, http.StatusNoContent) {
				return nil, StatusError(status, "github grant_repo_access", string(raw))
			}

			outcome := "invited"
			if status == http.StatusNoContent {
				outcome = "already_collaborator"
			}
			result := service.Result{"org": org, "repo": repo, "username": username, "permission": permission, "status": outcome}
			b.logSuccess(nodeID, "grant_repo_access", params, result)
			return result, nil
		},
	})
}
