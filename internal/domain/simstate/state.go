// Package simstate defines the in-memory state shared by all simulator
// services for the lifetime of a single run.
package simstate

import "sort"

// Employee is the HR service's record of a hired employee.
type Employee struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

// GoogleAccount is the Google service's record of a provisioned identity.
type GoogleAccount struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// GithubMember is the GitHub service's record of an org member.
type GithubMember struct {
	Username string `json:"username"`
	Org      string `json:"org"`
	Role     string `json:"role"`
}

// JiraIssue is the Jira service's record of an issue or epic.
type JiraIssue struct {
	Key      string `json:"key"`
	Summary  string `json:"summary"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Assignee string `json:"assignee,omitempty"`
}

// State is the process-local snapshot mutated only by simulator services.
// It is created fresh per execution and discarded when the run ends.
type State struct {
	Employees      map[string]Employee      `json:"employees"`
	GoogleAccounts map[string]GoogleAccount `json:"google_accounts"`
	SlackChannels  map[string][]string      `json:"slack_channels"`
	SlackUsers     []string                 `json:"slack_users"`
	GithubMembers  map[string]GithubMember  `json:"github_members"`
	JiraIssues     map[string]JiraIssue     `json:"jira_issues"`

	slackUserSet map[string]struct{}
}

// New returns an empty State ready for a fresh run.
func New() *State {
	return &State{
		Employees:      make(map[string]Employee),
		GoogleAccounts: make(map[string]GoogleAccount),
		SlackChannels:  make(map[string][]string),
		SlackUsers:     make([]string, 0),
		GithubMembers:  make(map[string]GithubMember),
		JiraIssues:     make(map[string]JiraIssue),
		slackUserSet:   make(map[string]struct{}),
	}
}

// HasEmployeeNamed reports whether an HR record exists for the given name.
func (s *State) HasEmployeeNamed(name string) bool {
	for _, e := range s.Employees {
		if e.Name == name {
			return true
		}
	}
	return false
}

// HasGoogleAccount reports whether a Google account has been provisioned
// for the given email.
func (s *State) HasGoogleAccount(email string) bool {
	_, ok := s.GoogleAccounts[email]
	return ok
}

// IsOrgMember reports whether the given username has been added to the org.
func (s *State) IsOrgMember(username string) bool {
	_, ok := s.GithubMembers[username]
	return ok
}

// AddSlackUser records a user's channel membership. SlackUsers is kept
// sorted and deduplicated so that JSON serialization round-trips
// deterministically — Go has no native set type, and the executor's
// deterministic-trace invariant depends on a stable state snapshot.
func (s *State) AddSlackUser(email string) {
	if s.slackUserSet == nil {
		s.slackUserSet = make(map[string]struct{}, len(s.SlackUsers))
		for _, u := range s.SlackUsers {
			s.slackUserSet[u] = struct{}{}
		}
	}
	if _, ok := s.slackUserSet[email]; ok {
		return
	}
	s.slackUserSet[email] = struct{}{}
	s.SlackUsers = append(s.SlackUsers, email)
	sort.Strings(s.SlackUsers)
}

// HasSlackUser reports whether the given email has joined any channel.
func (s *State) HasSlackUser(email string) bool {
	if s.slackUserSet != nil {
		_, ok := s.slackUserSet[email]
		return ok
	}
	for _, u := range s.SlackUsers {
		if u == email {
			return true
		}
	}
	return false
}
