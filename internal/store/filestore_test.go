package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wiredwork/orcheo/internal/domain/workflow"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSaveAssignsFirstVersionWhenUnset(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, workflow.Workflow{ID: "onboard-alice", Team: "people-ops"})
	require.NoError(t, err)
	require.Equal(t, 1, saved.Version)
}

func TestSaveIncrementsVersionOnSubsequentSaves(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	wf := workflow.Workflow{ID: "onboard-alice", Team: "people-ops"}
	first, err := s.Save(ctx, wf)
	require.NoError(t, err)
	require.Equal(t, 1, first.Version)

	wf.Version = 0
	second, err := s.Save(ctx, wf)
	require.NoError(t, err)
	require.Equal(t, 2, second.Version)
}

func TestLoadDefaultsToHighestVersion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	wf := workflow.Workflow{ID: "onboard-bob", Team: "people-ops", Name: "v1"}
	_, err := s.Save(ctx, wf)
	require.NoError(t, err)
	wf.Version = 0
	wf.Name = "v2"
	_, err = s.Save(ctx, wf)
	require.NoError(t, err)

	loaded, err := s.Load(ctx, "people-ops", "onboard-bob", 0)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Version)
	require.Equal(t, "v2", loaded.Name)
}

func TestLoadMissingWorkflowReturnsError(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "people-ops", "ghost", 0)
	require.Error(t, err)
}

func TestListTeamDedupesByHighestVersion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"onboard-alice", "onboard-bob"} {
		wf := workflow.Workflow{ID: id, Team: "people-ops"}
		_, err := s.Save(ctx, wf)
		require.NoError(t, err)
		wf.Version = 0
		_, err = s.Save(ctx, wf)
		require.NoError(t, err)
	}

	workflows, err := s.ListTeam(ctx, "people-ops")
	require.NoError(t, err)
	require.Len(t, workflows, 2)
	for _, wf := range workflows {
		require.Equal(t, 2, wf.Version)
	}
}

func TestListTeamReturnsEmptyForUnknownTeam(t *testing.T) {
	s := newTestStore(t)

	workflows, err := s.ListTeam(context.Background(), "ghost-team")
	require.NoError(t, err)
	require.Empty(t, workflows)
}
