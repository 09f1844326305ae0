package connector

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/wiredwork/orcheo/internal/config"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
)

// NewJira builds the jira service against the Jira Cloud REST API v3.
//
// Required settings: JiraSettings.BaseURL, Email, APIToken.
// Optional: JiraSettings.ProjectKey (defaults to "ONBOARD").
func NewJira(settings config.JiraSettings, client *http.Client, tr *trace.Trace) *service.ActionRegistry {
	b := newBase("jira", client, tr)
	url := strings.TrimRight(settings.BaseURL, "/")
	projectKey := settings.ProjectKey
	if projectKey == "" {
		projectKey = "ONBOARD"
	}
	creds := base64.StdEncoding.EncodeToString([]byte(settings.Email + ":" + settings.APIToken))
	headers := map[string]string{
		"Authorization": "Basic " + creds,
		"Content-Type":  "application/json",
		"Accept":        "application/json",
	}

	createIssue := func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
		issueType := getString(params, "issue_type", "Task")
		fields := map[string]interface{}{
			"project":   map[string]string{"key": projectKey},
			"summary":   getString(params, "summary", ""),
			"issuetype": map[string]string{"name": issueType},
		}
		if assignee := getString(params, "assignee", ""); assignee != "" {
			fields["assignee"] = map[string]string{"accountId": assignee}
		}

		var body struct {
			Key string `json:"key"`
		}
		status, raw, err := b.doJSON(ctx, http.MethodPost, url+"/rest/api/3/issue", headers,
			map[string]interface{}{"fields": fields}, &body)
		if err != nil {
			return nil, service.NewError(service.ErrConnectorError, "jira create_issue request failed", err)
		}
		if !okStatus(status, http.StatusCreated) {
			return nil, StatusError(status, "jira create_issue", string(raw))
		}

		result := service.Result{"issue_key": body.Key, "summary": getString(params, "summary", ""), "status": "created"}
		b.logSuccess(nodeID, "create_issue", params, result)
		return result, nil
	}

	return service.NewActionRegistry("jira", map[string]service.ActionFunc{
		"create_issue": createIssue,
		"create_epic": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			withType := make(service.Params, len(params)+1)
			for k, v := range params {
				withType[k] = v
			}
			withType["issue_type"] = "Epic"
			return createIssue(ctx, nodeID, withType)
		},
		"assign_issue": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			issueKey := getString(params, "issue_key", "")
			assignee := getString(params, "assignee", "")

			status, raw, err := b.doJSON(ctx, http.MethodPut, url+"/rest/api/3/issue/"+issueKey+"/assignee", headers,
				map[string]interface{}{"accountId": assignee}, nil)
			if err != nil {
				return nil, service.NewError(service.ErrConnectorError, "jira assign_issue request failed", err)
			}
			if !okStatus(status, http.StatusNoContent) {
				return nil, StatusError(status, "jira assign_issue", string(raw))
			}

			result := service.Result{"issue_key": issueKey, "assignee": assignee, "status": "assigned"}
			b.logSuccess(nodeID, "assign_issue", params, result)
			return result, nil
		},
	})
}
