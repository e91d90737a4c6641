package usecases

import (
	"context"
	"fmt"

	"civicgrid/internal/application/issue/dto"
	"civicgrid/internal/domain/issue"
	vo "civicgrid/internal/domain/issue/valueobjects"
	"civicgrid/internal/shared/errors"
	"civicgrid/internal/shared/logger"
	"civicgrid/internal/shared/utils"
)

// ListIssuesQuery filters the issue list. Zero-value fields are ignored.
type ListIssuesQuery struct {
	Status     string
	Priority   string
	CategoryID uint
	WardID     uint
	ZoneID     uint
	ReporterID uint
	AssigneeID uint
	Breached   *bool
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// ListIssuesResult is one page of the issue list.
type ListIssuesResult struct {
	Issues   []*dto.IssueDTO `json:"issues"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type ListIssuesUseCase struct {
	issues issue.IssueRepository
	logger logger.Interface
}

func NewListIssuesUseCase(issues issue.IssueRepository, log logger.Interface) *ListIssuesUseCase {
	return &ListIssuesUseCase{
		issues: issues,
		logger: log.Named("issue.list"),
	}
}

func (uc *ListIssuesUseCase) Execute(ctx context.Context, query ListIssuesQuery) (*ListIssuesResult, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	filter := issue.IssueFilter{
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		Breached:  query.Breached,
	}

	if query.Status != "" {
		status, err := vo.NewIssueStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if query.Priority != "" {
		priority, err := vo.NewPriority(query.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Priority = &priority
	}
	if query.CategoryID != 0 {
		filter.CategoryID = &query.CategoryID
	}
	if query.WardID != 0 {
		filter.WardID = &query.WardID
	}
	if query.ZoneID != 0 {
		filter.ZoneID = &query.ZoneID
	}
	if query.ReporterID != 0 {
		filter.ReporterID = &query.ReporterID
	}
	if query.AssigneeID != 0 {
		filter.AssigneeID = &query.AssigneeID
	}

	found, total, err := uc.issues.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	result := &ListIssuesResult{
		Issues:   make([]*dto.IssueDTO, 0, len(found)),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}
	for _, i := range found {
		result.Issues = append(result.Issues, dto.FromIssue(i))
	}
	return result, nil
}
