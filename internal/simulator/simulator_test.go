package simulator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wiredwork/orcheo/internal/domain/simstate"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
)

func newFixture() (*simstate.State, *trace.Trace, service.Map) {
	state := simstate.New()
	tr := trace.NewTrace(time.Now())
	return state, tr, Services(state, tr)
}

func TestMinimalTwoStepOnboarding(t *testing.T) {
	state, _, services := newFixture()
	ctx := context.Background()

	hr, _ := services.Get("hr")
	_, err := hr.Invoke(ctx, "create_employee", "create_hr", service.Params{"employee_name": "Alice Chen", "role": "Engineer"})
	require.NoError(t, err)
	require.True(t, state.HasEmployeeNamed("Alice Chen"))

	google, _ := services.Get("google")
	result, err := google.Invoke(ctx, "provision_account", "provision_google", service.Params{"employee_name": "Alice Chen"})
	require.NoError(t, err)
	require.Equal(t, "alice.chen@company.com", result["email"])
	require.Equal(t, "provisioned", result["status"])
}

func TestGoogleProvisionWithoutHRRecordFails(t *testing.T) {
	_, _, services := newFixture()
	google, _ := services.Get("google")

	_, err := google.Invoke(context.Background(), "provision_account", "n1", service.Params{"employee_name": "Nobody"})

	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, service.ErrPreconditionFailed, svcErr.Kind)
}

func TestSlackInviteRequiresGoogleAccount(t *testing.T) {
	_, _, services := newFixture()
	slack, _ := services.Get("slack")

	_, err := slack.Invoke(context.Background(), "invite_user", "n1", service.Params{"email": "ghost@company.com"})

	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, service.ErrPreconditionFailed, svcErr.Kind)
}

func TestSlackInviteSucceedsAfterProvisioning(t *testing.T) {
	state, _, services := newFixture()
	ctx := context.Background()
	state.Employees["EMP-1"] = simstate.Employee{EmployeeID: "EMP-1", Name: "Alice Chen"}

	google, _ := services.Get("google")
	_, err := google.Invoke(ctx, "provision_account", "provision_google", service.Params{"employee_name": "Alice Chen"})
	require.NoError(t, err)

	slack, _ := services.Get("slack")
	_, err = slack.Invoke(ctx, "create_channel", "create_channel", service.Params{"channel_name": "#onboarding"})
	require.NoError(t, err)

	result, err := slack.Invoke(ctx, "invite_user", "invite_slack", service.Params{"email": "alice.chen@company.com", "channel_name": "#onboarding"})
	require.NoError(t, err)
	require.Equal(t, "invited", result["status"])
	require.True(t, state.HasSlackUser("alice.chen@company.com"))
}

func TestGithubGrantAccessRequiresOrgMembership(t *testing.T) {
	_, _, services := newFixture()
	github, _ := services.Get("github")

	_, err := github.Invoke(context.Background(), "grant_repo_access", "n1", service.Params{"username": "octocat", "repo": "infra"})

	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, service.ErrPreconditionFailed, svcErr.Kind)
}

func TestJiraCreateEpicDelegatesToCreateIssue(t *testing.T) {
	_, tr, services := newFixture()
	jira, _ := services.Get("jira")

	result, err := jira.Invoke(context.Background(), "create_epic", "n1", service.Params{"summary": "Onboard Alice"})
	require.NoError(t, err)
	require.Equal(t, "created", result["status"])
	require.Len(t, tr.Steps, 1)
	require.Equal(t, "create_issue", tr.Steps[0].Action)
}

func TestUnknownActionReturnsUnknownActionKind(t *testing.T) {
	_, _, services := newFixture()
	hr, _ := services.Get("hr")

	_, err := hr.Invoke(context.Background(), "fire_employee", "n1", service.Params{})

	var svcErr *service.Error
	require.True(t, errors.As(err, &svcErr))
	require.Equal(t, service.ErrUnknownAction, svcErr.Kind)
}
