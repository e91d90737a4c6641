package issue

import (
	"time"

	"civicgrid/internal/shared/biztime"
)

// ChangeType classifies a history entry.
type ChangeType string

const (
	ChangeCreate   ChangeType = "CREATE"
	ChangeStatus   ChangeType = "STATUS"
	ChangeAssignee ChangeType = "ASSIGNEE"
	ChangeMedia    ChangeType = "MEDIA"
)

func (c ChangeType) String() string {
	return string(c)
}

// HistoryEntry is an append-only audit record. Entries are never mutated or
// deleted once written.
type HistoryEntry struct {
	id         uint
	issueID    uint
	changeType ChangeType
	oldValue   string
	newValue   string
	changedBy  uint
	comment    string
	createdAt  time.Time
}

func NewHistoryEntry(issueID uint, changeType ChangeType, oldValue, newValue string, changedBy uint, comment string) *HistoryEntry {
	return &HistoryEntry{
		issueID:    issueID,
		changeType: changeType,
		oldValue:   oldValue,
		newValue:   newValue,
		changedBy:  changedBy,
		comment:    comment,
		createdAt:  biztime.NowUTC(),
	}
}

func ReconstructHistoryEntry(id, issueID uint, changeType ChangeType, oldValue, newValue string, changedBy uint, comment string, createdAt time.Time) *HistoryEntry {
	return &HistoryEntry{
		id:         id,
		issueID:    issueID,
		changeType: changeType,
		oldValue:   oldValue,
		newValue:   newValue,
		changedBy:  changedBy,
		comment:    comment,
		createdAt:  createdAt,
	}
}

func (h *HistoryEntry) ID() uint               { return h.id }
func (h *HistoryEntry) IssueID() uint          { return h.issueID }
func (h *HistoryEntry) ChangeType() ChangeType { return h.changeType }
func (h *HistoryEntry) OldValue() string       { return h.oldValue }
func (h *HistoryEntry) NewValue() string       { return h.newValue }
func (h *HistoryEntry) ChangedBy() uint        { return h.changedBy }
func (h *HistoryEntry) Comment() string        { return h.comment }
func (h *HistoryEntry) CreatedAt() time.Time   { return h.createdAt }

func (h *HistoryEntry) SetID(id uint) {
	if h.id == 0 {
		h.id = id
	}
}

// SetIssueID backfills the owning issue ID on entries recorded before the
// issue row existed.
func (h *HistoryEntry) SetIssueID(issueID uint) {
	if h.issueID == 0 {
		h.issueID = issueID
	}
}
