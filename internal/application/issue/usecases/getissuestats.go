package usecases

import (
	"context"
	"fmt"

	"civicgrid/internal/application/issue/dto"
	"civicgrid/internal/domain/issue"
	"civicgrid/internal/shared/logger"
)

// GetIssueStatsQuery computes lifecycle counters, either city-wide (nil ward)
// or scoped to one ward.
type GetIssueStatsQuery struct {
	WardID *uint
}

type GetIssueStatsUseCase struct {
	issues issue.IssueRepository
	cache  IssueReadCache
	logger logger.Interface
}

func NewGetIssueStatsUseCase(issues issue.IssueRepository, cache IssueReadCache, log logger.Interface) *GetIssueStatsUseCase {
	return &GetIssueStatsUseCase{
		issues: issues,
		cache:  cache,
		logger: log.Named("issue.stats"),
	}
}

func (uc *GetIssueStatsUseCase) Execute(ctx context.Context, query GetIssueStatsQuery) (*dto.StatsDTO, error) {
	if cached, ok := uc.cache.GetStats(ctx, query.WardID); ok {
		return cached, nil
	}

	stats, err := uc.issues.Stats(ctx, query.WardID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute issue stats: %w", err)
	}

	d := dto.FromStats(stats)
	uc.cache.SetStats(ctx, query.WardID, d)
	return d, nil
}
