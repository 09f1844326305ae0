package simulator

import (
	"context"
	"time"

	"github.com/wiredwork/orcheo/internal/domain/simstate"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
)

func newHRService(state *simstate.State, tr *trace.Trace) *service.ActionRegistry {
	b := &base{name: "hr", state: state, tr: tr}

	return service.NewActionRegistry("hr", map[string]service.ActionFunc{
		"create_employee": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			name := getString(params, "employee_name", "Unknown")
			role := getString(params, "role", "Employee")
			department := getString(params, "department", "General")
			employeeID := "EMP-" + shortID(6)

			state.Employees[employeeID] = simstate.Employee{
				EmployeeID: employeeID,
				Name:       name,
				Role:       role,
				Department: department,
				Status:     "active",
				CreatedAt:  time.Now().Format(time.RFC3339),
			}

			result := service.Result{"employee_id": employeeID, "name": name, "status": "created"}
			b.logSuccess(nodeID, "create_employee", params, result)
			return result, nil
		},
		"enroll_benefits": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			employeeID := getString(params, "employee_id", "")
			if employeeID != "" {
				if _, ok := state.Employees[employeeID]; !ok {
					return nil, precondition("employee " + employeeID + " not found — create HR record first")
				}
			}

			plan := getString(params, "plan", "standard")
			result := service.Result{"employee_id": employeeID, "plan": plan, "status": "enrolled"}
			b.logSuccess(nodeID, "enroll_benefits", params, result)
			return result, nil
		},
	})
}
