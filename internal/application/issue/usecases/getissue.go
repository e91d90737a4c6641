package usecases

import (
	"context"
	"fmt"

	"civicgrid/internal/application/issue/dto"
	"civicgrid/internal/domain/issue"
	"civicgrid/internal/shared/errors"
	"civicgrid/internal/shared/logger"
)

// GetIssueQuery fetches one issue by ID or, when ID is zero, by ticket
// number.
type GetIssueQuery struct {
	IssueID      uint
	TicketNumber string
}

// GetIssueUseCase serves the issue detail read model through the lazy
// read-through cache. Ticket-number lookups bypass the cache on the way in
// but still warm it for subsequent by-ID reads.
type GetIssueUseCase struct {
	issues issue.IssueRepository
	cache  IssueReadCache
	logger logger.Interface
}

func NewGetIssueUseCase(issues issue.IssueRepository, cache IssueReadCache, log logger.Interface) *GetIssueUseCase {
	return &GetIssueUseCase{
		issues: issues,
		cache:  cache,
		logger: log.Named("issue.get"),
	}
}

func (uc *GetIssueUseCase) Execute(ctx context.Context, query GetIssueQuery) (*dto.IssueDTO, error) {
	if query.IssueID == 0 && query.TicketNumber == "" {
		return nil, errors.NewValidationError("issue ID or ticket number is required")
	}

	if query.IssueID != 0 {
		if cached, ok := uc.cache.GetIssueDetail(ctx, query.IssueID); ok {
			return cached, nil
		}
	}

	var (
		found *issue.Issue
		err   error
	)
	if query.IssueID != 0 {
		found, err = uc.issues.FindByID(ctx, query.IssueID)
	} else {
		found, err = uc.issues.FindByTicketNumber(ctx, query.TicketNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load issue: %w", err)
	}
	if found == nil {
		if query.IssueID != 0 {
			return nil, errors.NewNotFoundError(fmt.Sprintf("issue %d not found", query.IssueID))
		}
		return nil, errors.NewNotFoundError(fmt.Sprintf("issue %s not found", query.TicketNumber))
	}

	d := dto.FromIssue(found)
	uc.cache.SetIssueDetail(ctx, d)
	return d, nil
}
