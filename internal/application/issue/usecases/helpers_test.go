package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"civicgrid/internal/domain/issue"
	vo "civicgrid/internal/domain/issue/valueobjects"
	"civicgrid/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLogger()
}

func uintPtr(v uint) *uint { return &v }

// storedIssue rebuilds a persisted issue in the given status with the
// timestamps that status implies.
func storedIssue(t *testing.T, status vo.IssueStatus) *issue.Issue {
	t.Helper()

	now := time.Now().UTC()
	created := now.Add(-2 * time.Hour)
	slaTarget := created.Add(48 * time.Hour)

	var (
		assigneeID *uint
		assignedAt *time.Time
		resolvedAt *time.Time
		verifiedAt *time.Time
	)
	if status != vo.StatusOpen && status != vo.StatusRejected {
		assigneeID = uintPtr(7)
		at := created.Add(10 * time.Minute)
		assignedAt = &at
	}
	if status == vo.StatusResolved || status == vo.StatusVerified {
		at := now.Add(-30 * time.Minute)
		resolvedAt = &at
	}
	if status == vo.StatusVerified {
		at := now.Add(-10 * time.Minute)
		verifiedAt = &at
	}

	i, err := issue.ReconstructIssue(
		42, "CIV-2025-000042", 3, vo.PriorityMedium, status,
		19.0765, 72.8777, "MG Road, Ward 11",
		11, 5, assigneeID,
		created, now,
		assignedAt, &slaTarget, resolvedAt, verifiedAt, nil,
	)
	require.NoError(t, err)
	return i
}

func afterMedia(t *testing.T, issueID uint, id uint) *issue.Media {
	t.Helper()
	m, err := issue.ReconstructMedia(id, issueID, vo.MediaAfter, "https://cdn.example/after.jpg", "media/after.jpg", time.Now().UTC())
	require.NoError(t, err)
	return m
}

func beforeMedia(t *testing.T, issueID uint, id uint) *issue.Media {
	t.Helper()
	m, err := issue.ReconstructMedia(id, issueID, vo.MediaBefore, "https://cdn.example/before.jpg", "media/before.jpg", time.Now().UTC())
	require.NoError(t, err)
	return m
}
