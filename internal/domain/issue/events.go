package issue

import "time"

type IssueCreatedEvent struct {
	IssueID      uint
	TicketNumber string
	WardID       uint
	ReporterID   uint
	AssigneeID   *uint
	Status       string
	Priority     string
	Timestamp    time.Time
}

func (e IssueCreatedEvent) GetEventType() string { return "issue.created" }

type IssueStatusChangedEvent struct {
	IssueID   uint
	OldStatus string
	NewStatus string
	ChangedBy uint
	Timestamp time.Time
}

func (e IssueStatusChangedEvent) GetEventType() string { return "issue.status_changed" }

type IssueReassignedEvent struct {
	IssueID       uint
	OldAssigneeID *uint
	NewAssigneeID uint
	ReassignedBy  uint
	Timestamp     time.Time
}

func (e IssueReassignedEvent) GetEventType() string { return "issue.reassigned" }

type IssueReopenedEvent struct {
	IssueID     uint
	FromStatus  string
	ReopenedBy  uint
	MediaPurged int
	Timestamp   time.Time
}

func (e IssueReopenedEvent) GetEventType() string { return "issue.reopened" }
