package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []IssueStatus{
	StatusOpen, StatusAssigned, StatusInProgress, StatusResolved,
	StatusVerified, StatusReopened, StatusRejected,
}

func TestIssueStatus_CanTransitionTo(t *testing.T) {
	allowed := map[IssueStatus][]IssueStatus{
		StatusOpen:       {StatusAssigned, StatusRejected},
		StatusAssigned:   {StatusInProgress, StatusOpen},
		StatusInProgress: {StatusResolved, StatusAssigned},
		StatusResolved:   {StatusVerified, StatusReopened},
		StatusVerified:   {StatusAssigned},
		StatusReopened:   {StatusAssigned, StatusInProgress},
		StatusRejected:   {StatusOpen},
	}

	for _, from := range allStatuses {
		allowedSet := make(map[IssueStatus]bool)
		for _, to := range allowed[from] {
			allowedSet[to] = true
		}
		for _, to := range allStatuses {
			got := from.CanTransitionTo(to)
			assert.Equal(t, allowedSet[to], got, "%s -> %s", from, to)
		}
	}
}

func TestIssueStatus_AllowedTransitions(t *testing.T) {
	assert.Equal(t, []string{"ASSIGNED", "REJECTED"}, StatusOpen.AllowedTransitions())
	assert.Equal(t, []string{"ASSIGNED"}, StatusVerified.AllowedTransitions())
}

func TestIsVerifySurfaceTarget(t *testing.T) {
	assert.True(t, IsVerifySurfaceTarget(StatusVerified))
	assert.True(t, IsVerifySurfaceTarget(StatusReopened))
	assert.False(t, IsVerifySurfaceTarget(StatusAssigned))
	assert.False(t, IsVerifySurfaceTarget(StatusResolved))
}

func TestNewIssueStatus(t *testing.T) {
	s, err := NewIssueStatus("IN_PROGRESS")
	assert.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	_, err = NewIssueStatus("in_progress")
	assert.Error(t, err)
}

func TestNewPriority(t *testing.T) {
	p, err := NewPriority("CRITICAL")
	assert.NoError(t, err)
	assert.Equal(t, PriorityCritical, p)

	_, err = NewPriority("URGENT")
	assert.Error(t, err)
}

func TestNewMediaType(t *testing.T) {
	m, err := NewMediaType("AFTER")
	assert.NoError(t, err)
	assert.Equal(t, MediaAfter, m)

	_, err = NewMediaType("DURING")
	assert.Error(t, err)
}
