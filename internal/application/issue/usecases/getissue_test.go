package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicgrid/internal/domain/issue"
	vo "civicgrid/internal/domain/issue/valueobjects"
	"civicgrid/internal/shared/errors"
)

func TestGetIssue_ByIDReadThrough(t *testing.T) {
	stored := storedIssue(t, vo.StatusAssigned)
	issues := &mockIssueRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) {
			if id == stored.ID() {
				return stored, nil
			}
			return nil, nil
		},
	}
	cache := newMockReadCache()
	uc := NewGetIssueUseCase(issues, cache, testLogger())

	first, err := uc.Execute(context.Background(), GetIssueQuery{IssueID: 42})
	require.NoError(t, err)
	assert.Equal(t, "CIV-2025-000042", first.TicketNumber)
	assert.Equal(t, 1, issues.findByIDCalls)

	// Second read is served from the cache.
	second, err := uc.Execute(context.Background(), GetIssueQuery{IssueID: 42})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, issues.findByIDCalls)
}

func TestGetIssue_ByTicketNumberWarmsCache(t *testing.T) {
	stored := storedIssue(t, vo.StatusAssigned)
	issues := &mockIssueRepository{
		FindByTicketNumberFunc: func(ctx context.Context, ticketNumber string) (*issue.Issue, error) {
			if ticketNumber == stored.TicketNumber() {
				return stored, nil
			}
			return nil, nil
		},
	}
	cache := newMockReadCache()
	uc := NewGetIssueUseCase(issues, cache, testLogger())

	got, err := uc.Execute(context.Background(), GetIssueQuery{TicketNumber: "CIV-2025-000042"})
	require.NoError(t, err)
	assert.Equal(t, uint(42), got.ID)

	_, ok := cache.GetIssueDetail(context.Background(), 42)
	assert.True(t, ok)
}

func TestGetIssue_NotFound(t *testing.T) {
	uc := NewGetIssueUseCase(&mockIssueRepository{}, newMockReadCache(), testLogger())

	_, err := uc.Execute(context.Background(), GetIssueQuery{IssueID: 404})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	_, err = uc.Execute(context.Background(), GetIssueQuery{TicketNumber: "CIV-2025-999999"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetIssue_MissingIdentifier(t *testing.T) {
	uc := NewGetIssueUseCase(&mockIssueRepository{}, newMockReadCache(), testLogger())

	_, err := uc.Execute(context.Background(), GetIssueQuery{})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
