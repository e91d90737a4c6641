package issue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "civicgrid/internal/domain/issue/valueobjects"
	"civicgrid/internal/shared/errors"
)

func newTestIssue(t *testing.T, status vo.IssueStatus) *Issue {
	t.Helper()

	assigneeID := uint(7)
	createdAt := time.Now().UTC().Add(-2 * time.Hour)
	slaTarget := createdAt.Add(48 * time.Hour)
	assignedAt := createdAt

	i, err := ReconstructIssue(
		1,
		"CIV-2025-000042",
		3,
		vo.PriorityHigh,
		status,
		18.5204, 73.8567,
		"Shivajinagar, Pune",
		11,
		5,
		&assigneeID,
		createdAt, createdAt,
		&assignedAt, &slaTarget, nil, nil, nil,
	)
	require.NoError(t, err)
	return i
}

func TestNewIssue(t *testing.T) {
	i, err := NewIssue(3, vo.PriorityMedium, 18.5204, 73.8567, "FC Road", 11, 5, 24)
	require.NoError(t, err)

	assert.Equal(t, vo.StatusOpen, i.Status())
	assert.Equal(t, uint(11), i.WardID())
	assert.Nil(t, i.AssigneeID())
	require.NotNil(t, i.SLATargetAt())
	assert.Equal(t, i.CreatedAt().Add(24*time.Hour), *i.SLATargetAt())
}

func TestNewIssue_Validation(t *testing.T) {
	tests := []struct {
		name       string
		categoryID uint
		priority   vo.Priority
		lat, lon   float64
		wardID     uint
		reporterID uint
		slaHours   int
	}{
		{"zero category", 0, vo.PriorityLow, 18.5, 73.8, 11, 5, 24},
		{"invalid priority", 3, vo.Priority("URGENT"), 18.5, 73.8, 11, 5, 24},
		{"latitude out of range", 3, vo.PriorityLow, 91, 73.8, 11, 5, 24},
		{"longitude out of range", 3, vo.PriorityLow, 18.5, 181, 11, 5, 24},
		{"zero ward", 3, vo.PriorityLow, 18.5, 73.8, 0, 5, 24},
		{"zero reporter", 3, vo.PriorityLow, 18.5, 73.8, 11, 0, 24},
		{"zero sla hours", 3, vo.PriorityLow, 18.5, 73.8, 11, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIssue(tt.categoryID, tt.priority, tt.lat, tt.lon, "addr", tt.wardID, tt.reporterID, tt.slaHours)
			assert.Error(t, err)
		})
	}
}

func TestAssignOnCreate(t *testing.T) {
	i, err := NewIssue(3, vo.PriorityMedium, 18.5, 73.8, "addr", 11, 5, 24)
	require.NoError(t, err)

	require.NoError(t, i.AssignOnCreate(7))

	assert.Equal(t, vo.StatusAssigned, i.Status())
	require.NotNil(t, i.AssigneeID())
	assert.Equal(t, uint(7), *i.AssigneeID())
	require.NotNil(t, i.AssignedAt())
	assert.Equal(t, i.CreatedAt(), *i.AssignedAt())
}

func TestTransition_AllowedPairsProduceOneHistoryEntry(t *testing.T) {
	pairs := []struct {
		from, to vo.IssueStatus
	}{
		{vo.StatusOpen, vo.StatusAssigned},
		{vo.StatusOpen, vo.StatusRejected},
		{vo.StatusAssigned, vo.StatusInProgress},
		{vo.StatusAssigned, vo.StatusOpen},
		{vo.StatusInProgress, vo.StatusResolved},
		{vo.StatusInProgress, vo.StatusAssigned},
		{vo.StatusResolved, vo.StatusVerified},
		{vo.StatusResolved, vo.StatusReopened},
		{vo.StatusReopened, vo.StatusAssigned},
		{vo.StatusReopened, vo.StatusInProgress},
		{vo.StatusRejected, vo.StatusOpen},
	}

	for _, p := range pairs {
		t.Run(string(p.from)+"_to_"+string(p.to), func(t *testing.T) {
			i := newTestIssue(t, p.from)
			err := i.Transition(p.to, 9, "")
			require.NoError(t, err)
			assert.Equal(t, p.to, i.Status())

			pending := i.PendingHistory()
			require.Len(t, pending, 1)
			assert.Equal(t, ChangeStatus, pending[0].ChangeType())
			assert.Equal(t, p.from.String(), pending[0].OldValue())
			assert.Equal(t, p.to.String(), pending[0].NewValue())
			assert.Equal(t, uint(9), pending[0].ChangedBy())
		})
	}
}

func TestTransition_DisallowedPairsFail(t *testing.T) {
	all := []vo.IssueStatus{
		vo.StatusOpen, vo.StatusAssigned, vo.StatusInProgress, vo.StatusResolved,
		vo.StatusVerified, vo.StatusReopened, vo.StatusRejected,
	}

	for _, from := range all {
		for _, to := range all {
			if from.CanTransitionTo(to) {
				continue
			}
			i := newTestIssue(t, from)
			err := i.Transition(to, 9, "")
			require.Error(t, err, "%s -> %s should fail", from, to)
			assert.True(t, errors.IsInvalidTransitionError(err))
			assert.Equal(t, from, i.Status(), "status must be unchanged on failure")
			assert.Empty(t, i.PendingHistory(), "no history on failed transition")
		}
	}
}

func TestTransition_SideEffects(t *testing.T) {
	t.Run("entering in_progress sets assignedAt", func(t *testing.T) {
		i := newTestIssue(t, vo.StatusAssigned)
		before := *i.AssignedAt()

		require.NoError(t, i.Transition(vo.StatusInProgress, 9, ""))
		require.NotNil(t, i.AssignedAt())
		assert.True(t, i.AssignedAt().After(before))
	})

	t.Run("entering resolved sets resolvedAt", func(t *testing.T) {
		i := newTestIssue(t, vo.StatusInProgress)
		require.Nil(t, i.ResolvedAt())

		require.NoError(t, i.Transition(vo.StatusResolved, 9, ""))
		assert.NotNil(t, i.ResolvedAt())
	})

	t.Run("entering reopened clears resolution timestamps", func(t *testing.T) {
		i := newTestIssue(t, vo.StatusResolved)
		require.NoError(t, i.Transition(vo.StatusReopened, 9, "not fixed"))

		assert.Nil(t, i.ResolvedAt())
		assert.Nil(t, i.VerifiedAt())
	})
}

func TestTransition_CommentQueued(t *testing.T) {
	i := newTestIssue(t, vo.StatusAssigned)

	require.NoError(t, i.Transition(vo.StatusInProgress, 9, "started digging"))

	comments := i.PendingComments()
	require.Len(t, comments, 1)
	assert.Equal(t, "started digging", comments[0].Content())
	assert.Equal(t, uint(9), comments[0].UserID())

	// Empty comments are not persisted.
	i2 := newTestIssue(t, vo.StatusAssigned)
	require.NoError(t, i2.Transition(vo.StatusInProgress, 9, ""))
	assert.Empty(t, i2.PendingComments())
}

func TestApprove(t *testing.T) {
	t.Run("without after media fails precondition", func(t *testing.T) {
		i := newTestIssue(t, vo.StatusResolved)

		err := i.Approve(9, "")
		require.Error(t, err)
		assert.True(t, errors.IsPreconditionFailedError(err))
		assert.Equal(t, vo.StatusResolved, i.Status())
	})

	t.Run("with after media verifies", func(t *testing.T) {
		i := newTestIssue(t, vo.StatusResolved)
		after, err := ReconstructMedia(21, i.ID(), vo.MediaAfter, "https://cdn/x.jpg", "x.jpg", time.Now().UTC())
		require.NoError(t, err)
		i.AttachMedia([]*Media{after})

		require.NoError(t, i.Approve(9, "looks good"))
		assert.Equal(t, vo.StatusVerified, i.Status())
		assert.NotNil(t, i.VerifiedAt())
	})

	t.Run("on non-resolved issue fails transition", func(t *testing.T) {
		i := newTestIssue(t, vo.StatusInProgress)
		err := i.Approve(9, "")
		require.Error(t, err)
		assert.True(t, errors.IsInvalidTransitionError(err))
	})
}

func TestRejectResolution(t *testing.T) {
	i := newTestIssue(t, vo.StatusResolved)

	require.NoError(t, i.RejectResolution(9, "pothole still there"))
	assert.Equal(t, vo.StatusReopened, i.Status())
	assert.Nil(t, i.ResolvedAt())
	assert.Nil(t, i.VerifiedAt())
}

func TestReopenFromVerified(t *testing.T) {
	i := newTestIssue(t, vo.StatusVerified)

	before, err := ReconstructMedia(31, i.ID(), vo.MediaBefore, "https://cdn/b.jpg", "b.jpg", time.Now().UTC())
	require.NoError(t, err)
	after1, err := ReconstructMedia(32, i.ID(), vo.MediaAfter, "https://cdn/a1.jpg", "a1.jpg", time.Now().UTC())
	require.NoError(t, err)
	after2, err := ReconstructMedia(33, i.ID(), vo.MediaAfter, "https://cdn/a2.jpg", "a2.jpg", time.Now().UTC())
	require.NoError(t, err)
	i.AttachMedia([]*Media{before, after1, after2})

	removed, err := i.ReopenFromVerified(9, "work regressed")
	require.NoError(t, err)

	assert.Equal(t, vo.StatusAssigned, i.Status())
	assert.Nil(t, i.ResolvedAt())
	assert.Nil(t, i.VerifiedAt())

	require.Len(t, removed, 2)
	assert.Equal(t, vo.MediaAfter, removed[0].Type())
	assert.Equal(t, vo.MediaAfter, removed[1].Type())

	remaining := i.Media()
	require.Len(t, remaining, 1)
	assert.Equal(t, vo.MediaBefore, remaining[0].Type())

	t.Run("fails on non-verified issue", func(t *testing.T) {
		i := newTestIssue(t, vo.StatusResolved)
		_, err := i.ReopenFromVerified(9, "")
		require.Error(t, err)
		assert.True(t, errors.IsInvalidTransitionError(err))
	})
}

func TestReassign(t *testing.T) {
	i := newTestIssue(t, vo.StatusInProgress)

	require.NoError(t, i.Reassign(12, 9, "shifting load"))

	assert.Equal(t, vo.StatusAssigned, i.Status())
	require.NotNil(t, i.AssigneeID())
	assert.Equal(t, uint(12), *i.AssigneeID())

	pending := i.PendingHistory()
	require.Len(t, pending, 1)
	assert.Equal(t, ChangeAssignee, pending[0].ChangeType())
	assert.Equal(t, "7", pending[0].OldValue())
	assert.Equal(t, "12", pending[0].NewValue())

	t.Run("fails on verified issue", func(t *testing.T) {
		i := newTestIssue(t, vo.StatusVerified)
		err := i.Reassign(12, 9, "")
		require.Error(t, err)
		assert.True(t, errors.IsInvalidTransitionError(err))
	})
}

func TestSoftDelete(t *testing.T) {
	i := newTestIssue(t, vo.StatusOpen)
	require.Nil(t, i.DeletedAt())

	i.SoftDelete()
	first := i.DeletedAt()
	require.NotNil(t, first)

	// Idempotent.
	i.SoftDelete()
	assert.Equal(t, first, i.DeletedAt())
}

func TestFormatTicketNumber(t *testing.T) {
	assert.Equal(t, "CIV-2025-000001", FormatTicketNumber(2025, 1))
	assert.Equal(t, "CIV-2025-123456", FormatTicketNumber(2025, 123456))
	assert.Equal(t, "CIV-2026-000042", FormatTicketNumber(2026, 42))
}
