package connector

import (
	"context"
	"net/http"
	"strings"

	"github.com/wiredwork/orcheo/internal/config"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
)

// NewHR builds the hr service against a configurable internal REST API.
//
// Required settings: HRSettings.BaseURL, HRSettings.APIKey (bearer token).
// Expected endpoints (adapt to the target HR system's actual shape):
//
//	POST {base_url}/employees        -> create_employee
//	POST {base_url}/benefits/enroll  -> enroll_benefits
//
// Each endpoint is expected to return JSON carrying at least an "id" field.
func NewHR(settings config.HRSettings, client *http.Client, tr *trace.Trace) *service.ActionRegistry {
	b := newBase("hr", client, tr)
	url := strings.TrimRight(settings.BaseURL, "/")
	headers := map[string]string{
		"Authorization": "Bearer " + settings.APIKey,
		"Content-Type":  "application/json",
		"Accept":        "application/json",
	}

	return service.NewActionRegistry("hr", map[string]service.ActionFunc{
		"create_employee": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			name := getString(params, "employee_name", "")
			payload := map[string]interface{}{
				"name":       name,
				"role":       getString(params, "role", ""),
				"department": getString(params, "department", ""),
			}

			var body struct {
				ID         string `json:"id"`
				EmployeeID string `json:"employee_id"`
			}
			status, raw, err := b.doJSON(ctx, http.MethodPost, url+"/employees", headers, payload, &body)
			if err != nil {
				return nil, service.NewError(service.ErrConnectorError, "hr create_employee request failed", err)
			}
			if !okStatus(status, http.StatusCreated) {
				return nil, StatusError(status, "hr create_employee", string(raw))
			}

			employeeID := body.ID
			if employeeID == "" {
				employeeID = body.EmployeeID
			}
			result := service.Result{"employee_id": employeeID, "name": name, "status": "created"}
			b.logSuccess(nodeID, "create_employee", params, result)
			return result, nil
		},
		"enroll_benefits": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			employeeID := getString(params, "employee_id", "")
			plan := getString(params, "plan", "standard")
			payload := map[string]interface{}{"employee_id": employeeID, "plan": plan}

			status, raw, err := b.doJSON(ctx, http.MethodPost, url+"/benefits/enroll", headers, payload, nil)
			if err != nil {
				return nil, service.NewError(service.ErrConnectorError, "hr enroll_benefits request failed", err)
			}
			if !okStatus(status) {
				return nil, StatusError(status, "hr enroll_benefits", string(raw))
			}

			result := service.Result{"employee_id": employeeID, "plan": plan, "status": "enrolled"}
			b.logSuccess(nodeID, "enroll_benefits", params, result)
			return result, nil
		},
	})
}
