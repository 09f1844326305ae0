package simulator

import (
	"context"
	"strings"

	"github.com/wiredwork/orcheo/internal/domain/simstate"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
)

func newGoogleService(state *simstate.State, tr *trace.Trace) *service.ActionRegistry {
	b := &base{name: "google", state: state, tr: tr}

	return service.NewActionRegistry("google", map[string]service.ActionFunc{
		"provision_account": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			name := getString(params, "employee_name", "Unknown")
			if !state.HasEmployeeNamed(name) {
				return nil, precondition("no HR record found for " + name + " — create employee record first")
			}

			defaultEmail := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@company.com"
			email := getString(params, "email", defaultEmail)

			state.GoogleAccounts[email] = simstate.GoogleAccount{Email: email, Name: name, Status: "active"}

			result := service.Result{"email": email, "status": "provisioned"}
			b.logSuccess(nodeID, "provision_account", params, result)
			return result, nil
		},
		"send_email": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			result := service.Result{
				"to":      getString(params, "to", ""),
				"subject": getString(params, "subject", ""),
				"status":  "sent",
			}
			b.logSuccess(nodeID, "send_email", params, result)
			return result, nil
		},
		"create_calendar_event": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			result := service.Result{
				"title":     getString(params, "title", "Meeting"),
				"attendees": getStringSlice(params, "attendees"),
				"status":    "created",
			}
			b.logSuccess(nodeID, "create_calendar_event", params, result)
			return result, nil
		},
	})
}
