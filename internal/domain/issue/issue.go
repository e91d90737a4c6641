package issue

import (
	"fmt"
	"time"

	vo "civicgrid/internal/domain/issue/valueobjects"
	"civicgrid/internal/shared/biztime"
	"civicgrid/internal/shared/errors"
)

// Issue is the aggregate root of the civic-issue lifecycle. All status
// mutations go through it so that timestamps, history entries and comments
// stay consistent with the state change.
type Issue struct {
	id           uint
	ticketNumber string
	categoryID   uint
	priority     vo.Priority
	status       vo.IssueStatus
	latitude     float64
	longitude    float64
	address      string
	wardID       uint
	reporterID   uint
	assigneeID   *uint
	createdAt    time.Time
	updatedAt    time.Time
	assignedAt   *time.Time
	slaTargetAt  *time.Time
	resolvedAt   *time.Time
	verifiedAt   *time.Time
	deletedAt    *time.Time
	media        []*Media
	history      []*HistoryEntry

	pendingHistory  []*HistoryEntry
	pendingComments []*Comment
}

// NewIssue creates a new issue in OPEN status. Every created issue must
// already be resolved to a ward; creation with a zero ward is rejected.
func NewIssue(
	categoryID uint,
	priority vo.Priority,
	latitude, longitude float64,
	address string,
	wardID uint,
	reporterID uint,
	slaHours int,
) (*Issue, error) {
	if categoryID == 0 {
		return nil, fmt.Errorf("category ID is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("latitude out of range: %f", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("longitude out of range: %f", longitude)
	}
	if wardID == 0 {
		return nil, fmt.Errorf("ward ID is required")
	}
	if reporterID == 0 {
		return nil, fmt.Errorf("reporter ID is required")
	}
	if slaHours <= 0 {
		return nil, fmt.Errorf("SLA hours must be positive")
	}

	now := biztime.NowUTC()
	slaTarget := SLATarget(now, slaHours)

	return &Issue{
		categoryID:  categoryID,
		priority:    priority,
		status:      vo.StatusOpen,
		latitude:    latitude,
		longitude:   longitude,
		address:     address,
		wardID:      wardID,
		reporterID:  reporterID,
		createdAt:   now,
		updatedAt:   now,
		slaTargetAt: &slaTarget,
	}, nil
}

// ReconstructIssue rebuilds an issue from persisted state.
func ReconstructIssue(
	id uint,
	ticketNumber string,
	categoryID uint,
	priority vo.Priority,
	status vo.IssueStatus,
	latitude, longitude float64,
	address string,
	wardID uint,
	reporterID uint,
	assigneeID *uint,
	createdAt, updatedAt time.Time,
	assignedAt, slaTargetAt, resolvedAt, verifiedAt, deletedAt *time.Time,
) (*Issue, error) {
	if id == 0 {
		return nil, fmt.Errorf("issue ID cannot be zero")
	}
	if len(ticketNumber) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if wardID == 0 {
		return nil, fmt.Errorf("ward ID is required")
	}

	return &Issue{
		id:           id,
		ticketNumber: ticketNumber,
		categoryID:   categoryID,
		priority:     priority,
		status:       status,
		latitude:     latitude,
		longitude:    longitude,
		address:      address,
		wardID:       wardID,
		reporterID:   reporterID,
		assigneeID:   assigneeID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		assignedAt:   assignedAt,
		slaTargetAt:  slaTargetAt,
		resolvedAt:   resolvedAt,
		verifiedAt:   verifiedAt,
		deletedAt:    deletedAt,
	}, nil
}

func (i *Issue) ID() uint                { return i.id }
func (i *Issue) TicketNumber() string    { return i.ticketNumber }
func (i *Issue) CategoryID() uint        { return i.categoryID }
func (i *Issue) Priority() vo.Priority   { return i.priority }
func (i *Issue) Status() vo.IssueStatus  { return i.status }
func (i *Issue) Latitude() float64       { return i.latitude }
func (i *Issue) Longitude() float64      { return i.longitude }
func (i *Issue) Address() string         { return i.address }
func (i *Issue) WardID() uint            { return i.wardID }
func (i *Issue) ReporterID() uint        { return i.reporterID }
func (i *Issue) AssigneeID() *uint       { return i.assigneeID }
func (i *Issue) CreatedAt() time.Time    { return i.createdAt }
func (i *Issue) UpdatedAt() time.Time    { return i.updatedAt }
func (i *Issue) AssignedAt() *time.Time  { return i.assignedAt }
func (i *Issue) SLATargetAt() *time.Time { return i.slaTargetAt }
func (i *Issue) ResolvedAt() *time.Time  { return i.resolvedAt }
func (i *Issue) VerifiedAt() *time.Time  { return i.verifiedAt }
func (i *Issue) DeletedAt() *time.Time   { return i.deletedAt }

func (i *Issue) Media() []*Media {
	out := make([]*Media, len(i.media))
	copy(out, i.media)
	return out
}

func (i *Issue) History() []*HistoryEntry {
	out := make([]*HistoryEntry, len(i.history))
	copy(out, i.history)
	return out
}

// PendingHistory returns history entries recorded since the aggregate was
// loaded. The repository persists them in the same transaction as the state
// change and clears them via ClearPending.
func (i *Issue) PendingHistory() []*HistoryEntry {
	out := make([]*HistoryEntry, len(i.pendingHistory))
	copy(out, i.pendingHistory)
	return out
}

// PendingComments returns operator comments recorded since the aggregate was
// loaded.
func (i *Issue) PendingComments() []*Comment {
	out := make([]*Comment, len(i.pendingComments))
	copy(out, i.pendingComments)
	return out
}

// ClearPending drops recorded pending history and comments after persistence.
func (i *Issue) ClearPending() {
	i.pendingHistory = nil
	i.pendingComments = nil
}

func (i *Issue) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("issue ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("issue ID cannot be zero")
	}
	i.id = id
	return nil
}

// SetTicketNumber attaches the minted ticket number. It can be set only once.
func (i *Issue) SetTicketNumber(number string) error {
	if len(i.ticketNumber) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	i.ticketNumber = number
	return nil
}

// AttachMedia sets the loaded media collection. Used by repositories.
func (i *Issue) AttachMedia(media []*Media) {
	i.media = media
}

// AttachHistory sets the loaded history collection. Used by repositories.
func (i *Issue) AttachHistory(history []*HistoryEntry) {
	i.history = history
}

// AssignOnCreate assigns an engineer to a freshly created, not yet persisted
// issue. The initial status becomes ASSIGNED and assignedAt matches createdAt
// so that auto-assigned issues carry no artificial delay.
func (i *Issue) AssignOnCreate(assigneeID uint) error {
	if i.id != 0 {
		return fmt.Errorf("issue is already persisted")
	}
	if !i.status.IsOpen() {
		return fmt.Errorf("initial assignment requires OPEN status")
	}
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}

	i.assigneeID = &assigneeID
	assignedAt := i.createdAt
	i.assignedAt = &assignedAt
	i.status = vo.StatusAssigned
	return nil
}

// RecordCreation appends the initial CREATE history entry. Called once after
// the issue is fully composed, before the first save. When the issue was
// auto-assigned the entry records the assignee next to the initial status.
func (i *Issue) RecordCreation() {
	newValue := i.status.String()
	if i.assigneeID != nil {
		newValue = fmt.Sprintf("%s assignee=%d", newValue, *i.assigneeID)
	}
	i.appendHistory(ChangeCreate, "", newValue, i.reporterID, "")
}

// Transition moves the issue to newStatus, applying the derived timestamp
// side effects and recording one history entry. An optional operator comment
// is attached to the history entry and also queued as a regular comment.
//
// Callers gate VERIFIED and REOPENED targets: those belong to the dedicated
// verify/reopen surface and carry stricter role requirements.
func (i *Issue) Transition(newStatus vo.IssueStatus, changedBy uint, comment string) error {
	if !newStatus.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid status: %s", newStatus))
	}
	if changedBy == 0 {
		return errors.NewValidationError("changed by user ID is required")
	}
	if !i.status.CanTransitionTo(newStatus) {
		return errors.NewInvalidTransitionError(i.status.String(), newStatus.String(), i.status.AllowedTransitions())
	}

	oldStatus := i.status
	now := biztime.NowUTC()

	i.status = newStatus
	i.updatedAt = now

	switch {
	case newStatus.IsInProgress():
		// Work started: assignedAt reflects the moment the engineer picked it up.
		i.assignedAt = &now
	case newStatus.IsResolved():
		i.resolvedAt = &now
	case newStatus.IsVerified():
		i.verifiedAt = &now
	case newStatus.IsReopened():
		i.resolvedAt = nil
		i.verifiedAt = nil
	}

	i.appendHistory(ChangeStatus, oldStatus.String(), newStatus.String(), changedBy, comment)
	i.queueComment(changedBy, comment)
	return nil
}

// Reassign hands the issue to a different engineer. The status becomes
// ASSIGNED regardless of the current non-terminal state and the old/new
// assignee pair is recorded in history. Ward and activity checks on the
// target belong to the use case.
func (i *Issue) Reassign(newAssigneeID uint, changedBy uint, comment string) error {
	if newAssigneeID == 0 {
		return errors.NewValidationError("assignee ID cannot be zero")
	}
	if changedBy == 0 {
		return errors.NewValidationError("changed by user ID is required")
	}
	if i.status.IsVerified() || i.status.IsRejected() {
		return errors.NewInvalidTransitionError(i.status.String(), vo.StatusAssigned.String(), i.status.AllowedTransitions())
	}

	oldValue := ""
	if i.assigneeID != nil {
		oldValue = fmt.Sprintf("%d", *i.assigneeID)
	}

	now := biztime.NowUTC()
	i.assigneeID = &newAssigneeID
	i.assignedAt = &now
	i.status = vo.StatusAssigned
	i.updatedAt = now

	i.appendHistory(ChangeAssignee, oldValue, fmt.Sprintf("%d", newAssigneeID), changedBy, comment)
	i.queueComment(changedBy, comment)
	return nil
}

// AfterMediaCount returns the number of AFTER-type media items attached.
func (i *Issue) AfterMediaCount() int {
	count := 0
	for _, m := range i.media {
		if m.Type() == vo.MediaAfter {
			count++
		}
	}
	return count
}

// AddMedia attaches a media item and records an upload history entry.
func (i *Issue) AddMedia(media *Media, uploadedBy uint) error {
	if media == nil {
		return errors.NewValidationError("media cannot be nil")
	}
	if media.IssueID() != i.id {
		return errors.NewValidationError("media issue ID mismatch")
	}

	i.media = append(i.media, media)
	i.updatedAt = biztime.NowUTC()
	i.appendHistory(ChangeMedia, "", media.Type().String(), uploadedBy, "")
	return nil
}

// Approve moves a RESOLVED issue to VERIFIED. At least one AFTER media item
// must exist; resolving without after-photos is allowed, verification is not.
func (i *Issue) Approve(changedBy uint, comment string) error {
	if !i.status.IsResolved() {
		return errors.NewInvalidTransitionError(i.status.String(), vo.StatusVerified.String(), i.status.AllowedTransitions())
	}
	if i.AfterMediaCount() == 0 {
		return errors.NewPreconditionFailedError(
			"cannot verify resolution without after-photos",
			fmt.Sprintf("issue %d has no AFTER media", i.id),
		)
	}
	return i.Transition(vo.StatusVerified, changedBy, comment)
}

// RejectResolution moves a RESOLVED issue back to REOPENED, clearing the
// resolution timestamps.
func (i *Issue) RejectResolution(changedBy uint, comment string) error {
	if !i.status.IsResolved() {
		return errors.NewInvalidTransitionError(i.status.String(), vo.StatusReopened.String(), i.status.AllowedTransitions())
	}
	return i.Transition(vo.StatusReopened, changedBy, comment)
}

// ReopenFromVerified invalidates a verified resolution: the issue returns to
// ASSIGNED, resolution timestamps are cleared and every AFTER media item is
// detached. The removed media is returned so the caller can delete the rows
// and backing storage objects; BEFORE media is untouched.
func (i *Issue) ReopenFromVerified(changedBy uint, comment string) ([]*Media, error) {
	if !i.status.IsVerified() {
		return nil, errors.NewInvalidTransitionError(i.status.String(), vo.StatusAssigned.String(), i.status.AllowedTransitions())
	}
	if changedBy == 0 {
		return nil, errors.NewValidationError("changed by user ID is required")
	}

	now := biztime.NowUTC()
	oldStatus := i.status

	i.status = vo.StatusAssigned
	i.resolvedAt = nil
	i.verifiedAt = nil
	i.updatedAt = now

	var removed []*Media
	kept := i.media[:0]
	for _, m := range i.media {
		if m.Type() == vo.MediaAfter {
			removed = append(removed, m)
		} else {
			kept = append(kept, m)
		}
	}
	i.media = kept

	i.appendHistory(ChangeStatus, oldStatus.String(), i.status.String(), changedBy, comment)
	i.queueComment(changedBy, comment)
	return removed, nil
}

// SoftDelete marks the issue deleted. Deleted issues are excluded from all
// subsequent reads; there is no hard delete.
func (i *Issue) SoftDelete() {
	if i.deletedAt != nil {
		return
	}
	now := biztime.NowUTC()
	i.deletedAt = &now
	i.updatedAt = now
}

// IsBreached reports whether the issue has missed its SLA target.
func (i *Issue) IsBreached() bool {
	if i.slaTargetAt == nil {
		return false
	}
	return SLABreached(*i.slaTargetAt, i.resolvedAt)
}

func (i *Issue) appendHistory(changeType ChangeType, oldValue, newValue string, changedBy uint, comment string) {
	entry := NewHistoryEntry(i.id, changeType, oldValue, newValue, changedBy, comment)
	i.history = append(i.history, entry)
	i.pendingHistory = append(i.pendingHistory, entry)
}

func (i *Issue) queueComment(userID uint, content string) {
	if content == "" {
		return
	}
	i.pendingComments = append(i.pendingComments, NewComment(i.id, userID, content))
}
