package models

import "time"

type IssueModel struct {
	ID           uint   `gorm:"primaryKey"`
	TicketNumber string `gorm:"uniqueIndex;size:20;not null"`
	CategoryID   uint   `gorm:"not null;index"`
	Priority     string `gorm:"size:20;not null;index"`
	Status       string `gorm:"size:20;not null;index"`
	Latitude     float64
	Longitude    float64
	Address      string `gorm:"size:500"`
	WardID       uint   `gorm:"not null;index"`
	ReporterID   uint   `gorm:"not null;index"`
	AssigneeID   *uint  `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	AssignedAt   *time.Time
	SLATargetAt  *time.Time `gorm:"index"`
	ResolvedAt   *time.Time
	VerifiedAt   *time.Time
	DeletedAt    *time.Time `gorm:"index"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (IssueModel) TableName() string {
	return "issues"
}

type IssueMediaModel struct {
	ID        uint   `gorm:"primaryKey"`
	IssueID   uint   `gorm:"not null;index"`
	MediaType string `gorm:"size:10;not null;index"`
	URL       string `gorm:"size:500;not null"`
	ObjectKey string `gorm:"size:255"`
	CreatedAt time.Time
}

func (IssueMediaModel) TableName() string {
	return "issue_media"
}

type IssueHistoryModel struct {
	ID         uint      `gorm:"primaryKey"`
	IssueID    uint      `gorm:"not null;index"`
	ChangeType string    `gorm:"size:20;not null"`
	OldValue   string    `gorm:"size:100"`
	NewValue   string    `gorm:"size:100"`
	ChangedBy  uint      `gorm:"not null;index"`
	Comment    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"index"`
}

func (IssueHistoryModel) TableName() string {
	return "issue_history"
}

type IssueCommentModel struct {
	ID        uint      `gorm:"primaryKey"`
	IssueID   uint      `gorm:"not null;index"`
	UserID    uint      `gorm:"not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (IssueCommentModel) TableName() string {
	return "issue_comments"
}

// TicketCounterModel holds one row per calendar year. The sequencer
// increments Value under a row lock so concurrent creations never share a
// ticket number.
type TicketCounterModel struct {
	Year      int    `gorm:"primaryKey;autoIncrement:false"`
	Value     uint64 `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (TicketCounterModel) TableName() string {
	return "ticket_counters"
}
