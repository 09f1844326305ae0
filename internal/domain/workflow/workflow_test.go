package workflow

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/wiredwork/orcheo/internal/domain/domainerr"
)

func validWorkflow() Workflow {
	return Workflow{
		ID:   "employee-onboarding",
		Name: "Employee Onboarding",
		Team: "people-ops",
		Nodes: []WorkflowNode{
			{ID: "create_hr", Service: "hr", Action: "create_employee", Actor: "system", Parameters: []NodeParameter{{Name: "employee_name", Value: "{{employee_name}}"}}},
			{ID: "provision_google", Service: "google", Action: "provision_account", Actor: "system", DependsOn: []string{"create_hr"}, Parameters: []NodeParameter{{Name: "employee_name", Value: "{{employee_name}}"}}},
		},
		Edges:      []Edge{{Source: "create_hr", Target: "provision_google"}},
		Parameters: map[string]interface{}{"employee_name": "Alice Chen"},
		Version:    1,
	}
}

func TestWorkflowValidate_Success(t *testing.T) {
	wf := validWorkflow()
	if err := wf.Validate(); err != nil {
		t.Fatalf("expected valid workflow, got %v", err)
	}
}

func TestWorkflowValidate_DuplicateNodeID(t *testing.T) {
	wf := validWorkflow()
	wf.Nodes = append(wf.Nodes, wf.Nodes[0])

	err := wf.Validate()
	var domainErr *domainerr.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != domainerr.CodeDuplicate {
		t.Fatalf("expected CodeDuplicate, got %v", err)
	}
}

func TestWorkflowValidate_MissingDependency(t *testing.T) {
	wf := validWorkflow()
	wf.Nodes[1].DependsOn = []string{"nonexistent"}

	err := wf.Validate()
	var domainErr *domainerr.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != domainerr.CodeDependency {
		t.Fatalf("expected CodeDependency, got %v", err)
	}
}

func TestWorkflowValidate_Cycle(t *testing.T) {
	wf := validWorkflow()
	wf.Nodes[0].DependsOn = []string{"provision_google"}
	wf.Edges = append(wf.Edges, Edge{Source: "provision_google", Target: "create_hr"})

	err := wf.Validate()
	var domainErr *domainerr.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != domainerr.CodeCycle {
		t.Fatalf("expected CodeCycle, got %v", err)
	}
}

func TestWorkflowValidate_EdgeMismatch(t *testing.T) {
	wf := validWorkflow()
	wf.Edges = nil

	err := wf.Validate()
	var domainErr *domainerr.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != domainerr.CodeDependency {
		t.Fatalf("expected CodeDependency for edge mismatch, got %v", err)
	}
}

func TestWorkflowUnmarshalJSON_RejectsMissingNodeKey(t *testing.T) {
	raw := `{
		"id": "wf", "name": "WF", "team": "t", "version": 1,
		"nodes": [{"id": "n1", "name": "N1", "service": "hr", "action": "create_employee"}],
		"edges": []
	}`
	var wf Workflow
	err := json.Unmarshal([]byte(raw), &wf)
	if err == nil {
		t.Fatal("expected error for node missing enumerated keys")
	}
}

func TestWorkflowUnmarshalJSON_IgnoresUnknownTopLevelKeys(t *testing.T) {
	wf := validWorkflow()
	data, err := json.Marshal(wf)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var withExtra map[string]interface{}
	if err := json.Unmarshal(data, &withExtra); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}
	withExtra["unexpected_field"] = "ignored"
	extraData, err := json.Marshal(withExtra)
	if err != nil {
		t.Fatalf("marshal with extra failed: %v", err)
	}

	var roundTripped Workflow
	if err := json.Unmarshal(extraData, &roundTripped); err != nil {
		t.Fatalf("expected unknown top-level key to be tolerated, got %v", err)
	}
	if roundTripped.ID != wf.ID {
		t.Fatalf("expected round trip to preserve id, got %q", roundTripped.ID)
	}
}

func TestWorkflowRoundTrip(t *testing.T) {
	wf := validWorkflow()
	data, err := json.Marshal(wf)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var roundTripped Workflow
	if err := json.Unmarshal(data, &roundTripped); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if roundTripped.ID != wf.ID || len(roundTripped.Nodes) != len(wf.Nodes) {
		t.Fatalf("round trip mismatch: %+v vs %+v", roundTripped, wf)
	}
}
