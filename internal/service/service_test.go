package service

import (
	"context"
	"errors"
	"testing"
)

func TestActionRegistryDispatchesKnownAction(t *testing.T) {
	calls := 0
	reg := NewActionRegistry("hr", map[string]ActionFunc{
		"create_employee": func(ctx context.Context, nodeID string, params Params) (Result, error) {
			calls++
			return Result{"status": "created", "employee_id": "EMP-ABC123"}, nil
		},
	})

	result, err := reg.Invoke(context.Background(), "create_employee", "n1", Params{"employee_name": "Alice Chen"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["status"] != "created" {
		t.Fatalf("expected status created, got %v", result)
	}
	if calls != 1 {
		t.Fatalf("expected handler invoked once, got %d", calls)
	}
}

func TestActionRegistryUnknownAction(t *testing.T) {
	reg := NewActionRegistry("hr", map[string]ActionFunc{})

	_, err := reg.Invoke(context.Background(), "teleport", "n1", Params{})

	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Kind != ErrUnknownAction {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestServiceMapGet(t *testing.T) {
	reg := NewActionRegistry("slack", map[string]ActionFunc{})
	m := Map{"slack": reg}

	svc, ok := m.Get("slack")
	if !ok || svc.ServiceName() != "slack" {
		t.Fatalf("expected slack service, got %v ok=%v", svc, ok)
	}

	if _, ok := m.Get("jira"); ok {
		t.Fatal("expected jira to be absent")
	}
}
