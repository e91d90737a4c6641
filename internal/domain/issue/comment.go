package issue

import (
	"time"

	"civicgrid/internal/shared/biztime"
)

// Comment is an operator note attached to an issue alongside a transition.
type Comment struct {
	id        uint
	issueID   uint
	userID    uint
	content   string
	createdAt time.Time
}

func NewComment(issueID, userID uint, content string) *Comment {
	return &Comment{
		issueID:   issueID,
		userID:    userID,
		content:   content,
		createdAt: biztime.NowUTC(),
	}
}

func ReconstructComment(id, issueID, userID uint, content string, createdAt time.Time) *Comment {
	return &Comment{
		id:        id,
		issueID:   issueID,
		userID:    userID,
		content:   content,
		createdAt: createdAt,
	}
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) IssueID() uint        { return c.issueID }
func (c *Comment) UserID() uint         { return c.userID }
func (c *Comment) Content() string      { return c.content }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

func (c *Comment) SetID(id uint) {
	if c.id == 0 {
		c.id = id
	}
}

// SetIssueID backfills the owning issue ID on comments recorded before the
// issue row existed.
func (c *Comment) SetIssueID(issueID uint) {
	if c.issueID == 0 {
		c.issueID = issueID
	}
}
