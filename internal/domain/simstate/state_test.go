package simstate

import "testing"

func TestStateHasEmployeeNamed(t *testing.T) {
	s := New()
	s.Employees["EMP-ABC123"] = Employee{EmployeeID: "EMP-ABC123", Name: "Alice Chen", Role: "Engineer"}

	if !s.HasEmployeeNamed("Alice Chen") {
		t.Fatal("expected employee to be found by name")
	}
	if s.HasEmployeeNamed("Bob Jones") {
		t.Fatal("expected unknown employee not to be found")
	}
}

func TestStateAddSlackUserDedupesAndSorts(t *testing.T) {
	s := New()
	s.AddSlackUser("charlie@company.com")
	s.AddSlackUser("alice@company.com")
	s.AddSlackUser("alice@company.com")

	if len(s.SlackUsers) != 2 {
		t.Fatalf("expected 2 unique users, got %d: %v", len(s.SlackUsers), s.SlackUsers)
	}
	if s.SlackUsers[0] != "alice@company.com" || s.SlackUsers[1] != "charlie@company.com" {
		t.Fatalf("expected sorted slice, got %v", s.SlackUsers)
	}
	if !s.HasSlackUser("alice@company.com") {
		t.Fatal("expected HasSlackUser to find inserted user")
	}
}

func TestStateIsOrgMember(t *testing.T) {
	s := New()
	s.GithubMembers["octocat"] = GithubMember{Username: "octocat"}

	if !s.IsOrgMember("octocat") {
		t.Fatal("expected org member to be found")
	}
	if s.IsOrgMember("stranger") {
		t.Fatal("expected unknown member not to be found")
	}
}
