package usecases

import (
	"context"

	"civicgrid/internal/application/issue/dto"
	"civicgrid/internal/domain/user"
)

// WardResolver maps a coordinate onto the containing ward.
type WardResolver interface {
	Resolve(ctx context.Context, lat, lon float64) (uint, error)
}

// AssigneePicker selects the responsible engineer for a ward and department.
type AssigneePicker interface {
	Select(ctx context.Context, wardID uint, department string) (*uint, error)
	Invalidate(wardID uint, department string)
}

// TransactionManager runs a function inside an atomic unit of work.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// InvalidationRef names the cache scopes touched by a mutation. Keys derived
// from it are always scoped by ward/zone/user identifiers; unscoped wildcard
// invalidation is a correctness bug, not a tuning knob.
type InvalidationRef struct {
	IssueID uint
	WardID  uint
	ZoneID  uint
	// UserIDs are the dashboards to drop: reporter plus old and new assignee.
	UserIDs []uint
}

// CacheInvalidator fans targeted deletions out across the read-cache
// namespaces. Implementations log failures and never surface them; cache is
// an optimization, not a correctness dependency of the write path.
type CacheInvalidator interface {
	InvalidateIssue(ctx context.Context, ref InvalidationRef)
}

// IssueReadCache is the lazy read-through store for hot read models.
type IssueReadCache interface {
	GetIssueDetail(ctx context.Context, issueID uint) (*dto.IssueDTO, bool)
	SetIssueDetail(ctx context.Context, d *dto.IssueDTO)
	GetStats(ctx context.Context, wardID *uint) (*dto.StatsDTO, bool)
	SetStats(ctx context.Context, wardID *uint, d *dto.StatsDTO)
}

// AssignmentNotifier delivers the "assignment made" notice. Strictly
// best-effort: failures are logged by the caller and never propagated.
type AssignmentNotifier interface {
	NotifyAssignment(ctx context.Context, recipient *user.User, ticketNumber, address string) error
}

// MediaStorage deletes media objects by reference when a verified resolution
// is invalidated.
type MediaStorage interface {
	Delete(ctx context.Context, objectKey string) error
}

// Executor interfaces consumed by the HTTP layer.

type CreateIssueExecutor interface {
	Execute(ctx context.Context, cmd CreateIssueCommand) (*dto.IssueDTO, error)
}

type UpdateStatusExecutor interface {
	Execute(ctx context.Context, cmd UpdateStatusCommand) (*dto.IssueDTO, error)
}

type AddAfterMediaExecutor interface {
	Execute(ctx context.Context, cmd AddAfterMediaCommand) (*dto.IssueDTO, error)
}

type ReassignIssueExecutor interface {
	Execute(ctx context.Context, cmd ReassignIssueCommand) (*dto.IssueDTO, error)
}

type VerifyResolutionExecutor interface {
	Execute(ctx context.Context, cmd VerifyResolutionCommand) (*dto.IssueDTO, error)
}

type ReopenIssueExecutor interface {
	Execute(ctx context.Context, cmd ReopenIssueCommand) (*dto.IssueDTO, error)
}

type GetIssueExecutor interface {
	Execute(ctx context.Context, query GetIssueQuery) (*dto.IssueDTO, error)
}

type ListIssuesExecutor interface {
	Execute(ctx context.Context, query ListIssuesQuery) (*ListIssuesResult, error)
}

type GetIssueStatsExecutor interface {
	Execute(ctx context.Context, query GetIssueStatsQuery) (*dto.StatsDTO, error)
}
