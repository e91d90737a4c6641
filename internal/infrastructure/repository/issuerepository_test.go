package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicgrid/internal/domain/issue"
	vo "civicgrid/internal/domain/issue/valueobjects"
)

// buildReportedIssue assembles an auto-assigned issue the way the create flow
// does, ready to be handed to Save.
func buildReportedIssue(t *testing.T, ticketNumber string) *issue.Issue {
	t.Helper()

	i, err := issue.NewIssue(3, vo.PriorityMedium, 19.0765, 72.8777, "MG Road, Ward 11", 11, 5, 48)
	require.NoError(t, err)
	require.NoError(t, i.AssignOnCreate(7))

	photo, err := issue.NewMedia(0, vo.MediaBefore, "http://localhost:8080/static/media/pothole.jpg", "media/pothole.jpg")
	require.NoError(t, err)
	i.AttachMedia([]*issue.Media{photo})
	i.RecordCreation()
	require.NoError(t, i.SetTicketNumber(ticketNumber))
	return i
}

func TestIssueRepository_SaveAndFind(t *testing.T) {
	database := setupTestDB(t)
	repo := NewIssueRepository(database)
	ctx := context.Background()

	reported := buildReportedIssue(t, issue.FormatTicketNumber(2026, 1))
	require.NoError(t, repo.Save(ctx, reported))
	assert.NotZero(t, reported.ID())
	assert.Empty(t, reported.PendingHistory())
	assert.Empty(t, reported.PendingComments())

	t.Run("find by id loads media and history", func(t *testing.T) {
		found, err := repo.FindByID(ctx, reported.ID())
		require.NoError(t, err)
		require.NotNil(t, found)

		assert.Equal(t, reported.TicketNumber(), found.TicketNumber())
		assert.Equal(t, vo.StatusAssigned, found.Status())
		assert.Equal(t, uint(11), found.WardID())
		assert.Equal(t, uint(5), found.ReporterID())
		require.NotNil(t, found.AssigneeID())
		assert.Equal(t, uint(7), *found.AssigneeID())
		require.NotNil(t, found.SLATargetAt())

		require.Len(t, found.Media(), 1)
		assert.Equal(t, "media/pothole.jpg", found.Media()[0].ObjectKey())
		assert.Equal(t, vo.MediaBefore, found.Media()[0].Type())

		require.Len(t, found.History(), 1)
		assert.Equal(t, issue.ChangeCreate, found.History()[0].ChangeType())
	})

	t.Run("find by ticket number", func(t *testing.T) {
		found, err := repo.FindByTicketNumber(ctx, reported.TicketNumber())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, reported.ID(), found.ID())
	})

	t.Run("missing issue returns nil without error", func(t *testing.T) {
		found, err := repo.FindByID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestIssueRepository_UpdatePersistsTransition(t *testing.T) {
	database := setupTestDB(t)
	repo := NewIssueRepository(database)
	ctx := context.Background()

	reported := buildReportedIssue(t, issue.FormatTicketNumber(2026, 2))
	require.NoError(t, repo.Save(ctx, reported))

	loaded, err := repo.FindByID(ctx, reported.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	require.NoError(t, loaded.Transition(vo.StatusInProgress, 7, "crew on site"))
	require.NoError(t, repo.Update(ctx, loaded))

	found, err := repo.FindByID(ctx, loaded.ID())
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, vo.StatusInProgress, found.Status())
	require.NotNil(t, found.AssignedAt())
	require.Len(t, found.History(), 2)
	assert.Equal(t, issue.ChangeStatus, found.History()[1].ChangeType())
	assert.Equal(t, "IN_PROGRESS", found.History()[1].NewValue())
	assert.Equal(t, uint(7), found.History()[1].ChangedBy())
}

func TestIssueRepository_DuplicateTicketNumberRejected(t *testing.T) {
	database := setupTestDB(t)
	repo := NewIssueRepository(database)
	ctx := context.Background()

	first := buildReportedIssue(t, issue.FormatTicketNumber(2026, 3))
	require.NoError(t, repo.Save(ctx, first))

	second := buildReportedIssue(t, issue.FormatTicketNumber(2026, 3))
	require.Error(t, repo.Save(ctx, second))
}
