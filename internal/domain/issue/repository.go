package issue

import (
	"context"
	"time"

	vo "civicgrid/internal/domain/issue/valueobjects"
)

// IssueRepository persists the issue aggregate. Save and Update also persist
// pending history entries and comments in the surrounding transaction;
// soft-deleted issues are excluded from every read.
type IssueRepository interface {
	Save(ctx context.Context, i *Issue) error
	Update(ctx context.Context, i *Issue) error
	FindByID(ctx context.Context, id uint) (*Issue, error)
	FindByTicketNumber(ctx context.Context, ticketNumber string) (*Issue, error)
	List(ctx context.Context, filter IssueFilter) ([]*Issue, int64, error)
	DeleteAfterMedia(ctx context.Context, issueID uint) error
	Stats(ctx context.Context, wardID *uint) (*Stats, error)
}

// IssueFilter narrows List results. Nil fields are ignored.
type IssueFilter struct {
	Status     *vo.IssueStatus
	Priority   *vo.Priority
	CategoryID *uint
	WardID     *uint
	ZoneID     *uint
	ReporterID *uint
	AssigneeID *uint
	Breached   *bool
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// Stats aggregates lifecycle counters for dashboards.
type Stats struct {
	Total                int64
	Open                 int64
	InProgress           int64
	Resolved             int64
	Verified             int64
	ResolvedWithinTarget int64
	TotalResolved        int64
	ComputedAt           time.Time
}

// Compliance returns the SLA compliance percentage of the set.
func (s *Stats) Compliance() float64 {
	return SLACompliance(s.ResolvedWithinTarget, s.TotalResolved)
}
