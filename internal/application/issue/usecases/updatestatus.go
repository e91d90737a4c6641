package usecases

import (
	"context"
	"fmt"

	"civicgrid/internal/application/issue/dto"
	"civicgrid/internal/domain/issue"
	vo "civicgrid/internal/domain/issue/valueobjects"
	"civicgrid/internal/domain/shared/events"
	"civicgrid/internal/shared/authorization"
	"civicgrid/internal/shared/biztime"
	"civicgrid/internal/shared/errors"
	"civicgrid/internal/shared/logger"
)

// UpdateStatusCommand moves an issue along the generic lifecycle surface.
type UpdateStatusCommand struct {
	IssueID   uint
	NewStatus string
	ActorID   uint
	ActorRole authorization.Role
	Comment   string
}

// UpdateStatusUseCase performs role-gated status transitions. VERIFIED and
// REOPENED are never reachable here; they belong to the verification and
// reopen use cases.
type UpdateStatusUseCase struct {
	issues      issue.IssueRepository
	zones       WardZoneLookup
	txManager   TransactionManager
	invalidator CacheInvalidator
	dispatcher  events.EventDispatcher
	logger      logger.Interface
}

func NewUpdateStatusUseCase(
	issues issue.IssueRepository,
	zones WardZoneLookup,
	txManager TransactionManager,
	invalidator CacheInvalidator,
	dispatcher events.EventDispatcher,
	log logger.Interface,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		issues:      issues,
		zones:       zones,
		txManager:   txManager,
		invalidator: invalidator,
		dispatcher:  dispatcher,
		logger:      log.Named("issue.update_status"),
	}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, cmd UpdateStatusCommand) (*dto.IssueDTO, error) {
	if !authorization.Can(cmd.ActorRole, authorization.CanTransition) {
		return nil, errors.NewForbiddenError("role cannot change issue status")
	}

	newStatus, err := vo.NewIssueStatus(cmd.NewStatus)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if vo.IsVerifySurfaceTarget(newStatus) {
		return nil, errors.NewForbiddenError(
			fmt.Sprintf("status %s is set through the verification surface", newStatus),
		)
	}

	var (
		updated   *issue.Issue
		oldStatus vo.IssueStatus
	)
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		found, err := uc.issues.FindByID(txCtx, cmd.IssueID)
		if err != nil {
			return fmt.Errorf("failed to load issue: %w", err)
		}
		if found == nil {
			return errors.NewNotFoundError(fmt.Sprintf("issue %d not found", cmd.IssueID))
		}

		oldStatus = found.Status()
		if err := found.Transition(newStatus, cmd.ActorID, cmd.Comment); err != nil {
			return err
		}
		if err := uc.issues.Update(txCtx, found); err != nil {
			return fmt.Errorf("failed to update issue: %w", err)
		}
		updated = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("issue status changed",
		"issue_id", updated.ID(),
		"old_status", oldStatus.String(),
		"new_status", updated.Status().String(),
		"changed_by", cmd.ActorID,
	)

	uc.invalidator.InvalidateIssue(ctx, invalidationRefFor(ctx, uc.zones, uc.logger, updated))

	if err := uc.dispatcher.Publish(issue.IssueStatusChangedEvent{
		IssueID:   updated.ID(),
		OldStatus: oldStatus.String(),
		NewStatus: updated.Status().String(),
		ChangedBy: cmd.ActorID,
		Timestamp: biztime.NowUTC(),
	}); err != nil {
		uc.logger.Warnw("failed to publish issue.status_changed", "issue_id", updated.ID(), "error", err)
	}

	return dto.FromIssue(updated), nil
}

// invalidationRefFor builds the standard mutation invalidation scope: the
// issue, its ward and zone, the reporter and the current assignee.
func invalidationRefFor(ctx context.Context, zones WardZoneLookup, log logger.Interface, i *issue.Issue) InvalidationRef {
	ref := InvalidationRef{
		IssueID: i.ID(),
		WardID:  i.WardID(),
		UserIDs: []uint{i.ReporterID()},
	}
	if zoneID, err := zones.ZoneID(ctx, i.WardID()); err == nil {
		ref.ZoneID = zoneID
	} else {
		log.Warnw("zone lookup failed, skipping zone invalidation", "ward_id", i.WardID(), "error", err)
	}
	if i.AssigneeID() != nil {
		ref.UserIDs = append(ref.UserIDs, *i.AssigneeID())
	}
	return ref
}
