package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicgrid/internal/domain/issue"
	vo "civicgrid/internal/domain/issue/valueobjects"
	"civicgrid/internal/shared/authorization"
	"civicgrid/internal/shared/errors"
)

type updateStatusFixture struct {
	uc          *UpdateStatusUseCase
	issues      *mockIssueRepository
	invalidator *mockInvalidator
	dispatcher  *mockDispatcher
}

func newUpdateStatusFixture(t *testing.T, stored *issue.Issue) *updateStatusFixture {
	t.Helper()
	f := &updateStatusFixture{
		issues:      &mockIssueRepository{},
		invalidator: &mockInvalidator{},
		dispatcher:  &mockDispatcher{},
	}
	if stored != nil {
		f.issues.FindByIDFunc = func(ctx context.Context, id uint) (*issue.Issue, error) {
			if id == stored.ID() {
				return stored, nil
			}
			return nil, nil
		}
	}
	f.uc = NewUpdateStatusUseCase(f.issues, &mockZoneLookup{}, &mockTxManager{}, f.invalidator, f.dispatcher, testLogger())
	return f
}

func TestUpdateStatus_HappyPath(t *testing.T) {
	stored := storedIssue(t, vo.StatusAssigned)
	f := newUpdateStatusFixture(t, stored)

	got, err := f.uc.Execute(context.Background(), UpdateStatusCommand{
		IssueID:   42,
		NewStatus: "IN_PROGRESS",
		ActorID:   7,
		ActorRole: authorization.RoleWardEngineer,
		Comment:   "crew on site",
	})
	require.NoError(t, err)

	assert.Equal(t, "IN_PROGRESS", got.Status)
	require.Len(t, f.issues.updated, 1)

	ref, ok := f.invalidator.last()
	require.True(t, ok)
	assert.Equal(t, uint(42), ref.IssueID)
	assert.Equal(t, uint(11), ref.WardID)

	assert.Contains(t, f.dispatcher.eventTypes(), "issue.status_changed")
}

func TestUpdateStatus_ForbiddenRole(t *testing.T) {
	f := newUpdateStatusFixture(t, nil)

	for _, role := range []authorization.Role{authorization.RoleCitizen, authorization.RoleFieldWorker} {
		_, err := f.uc.Execute(context.Background(), UpdateStatusCommand{
			IssueID:   42,
			NewStatus: "IN_PROGRESS",
			ActorID:   7,
			ActorRole: role,
		})
		require.Error(t, err)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
	}
	assert.Zero(t, f.issues.findByIDCalls)
}

func TestUpdateStatus_VerifySurfaceTargetsRejected(t *testing.T) {
	f := newUpdateStatusFixture(t, storedIssue(t, vo.StatusResolved))

	for _, target := range []string{"VERIFIED", "REOPENED"} {
		_, err := f.uc.Execute(context.Background(), UpdateStatusCommand{
			IssueID:   42,
			NewStatus: target,
			ActorID:   9,
			ActorRole: authorization.RoleZoneOfficer,
		})
		require.Error(t, err, target)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
	}
	assert.Empty(t, f.issues.updated)
}

func TestUpdateStatus_InvalidStatusValue(t *testing.T) {
	f := newUpdateStatusFixture(t, nil)

	_, err := f.uc.Execute(context.Background(), UpdateStatusCommand{
		IssueID:   42,
		NewStatus: "DONE",
		ActorID:   7,
		ActorRole: authorization.RoleWardEngineer,
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	stored := storedIssue(t, vo.StatusOpen)
	f := newUpdateStatusFixture(t, stored)

	_, err := f.uc.Execute(context.Background(), UpdateStatusCommand{
		IssueID:   42,
		NewStatus: "RESOLVED",
		ActorID:   7,
		ActorRole: authorization.RoleWardEngineer,
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidTransitionError(err))
	assert.Equal(t, vo.StatusOpen, stored.Status())
	assert.Empty(t, f.issues.updated)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	f := newUpdateStatusFixture(t, nil)

	_, err := f.uc.Execute(context.Background(), UpdateStatusCommand{
		IssueID:   404,
		NewStatus: "IN_PROGRESS",
		ActorID:   7,
		ActorRole: authorization.RoleSuperAdmin,
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
