package usecases

import (
	"context"
	"fmt"

	"civicgrid/internal/application/issue/dto"
	"civicgrid/internal/domain/issue"
	"civicgrid/internal/domain/shared/events"
	"civicgrid/internal/domain/user"
	"civicgrid/internal/shared/authorization"
	"civicgrid/internal/shared/biztime"
	"civicgrid/internal/shared/errors"
	"civicgrid/internal/shared/goroutine"
	"civicgrid/internal/shared/logger"
)

// ReassignIssueCommand hands an issue to a different engineer.
type ReassignIssueCommand struct {
	IssueID       uint
	NewAssigneeID uint
	ActorID       uint
	ActorRole     authorization.Role
	Comment       string
}

// ReassignIssueUseCase validates the target engineer against the issue's ward
// and records the handover. The selector cache for the ward is dropped so the
// next auto-assignment sees current availability.
type ReassignIssueUseCase struct {
	issues      issue.IssueRepository
	users       user.UserRepository
	zones       WardZoneLookup
	selector    AssigneePicker
	txManager   TransactionManager
	invalidator CacheInvalidator
	notifier    AssignmentNotifier
	dispatcher  events.EventDispatcher
	logger      logger.Interface
}

func NewReassignIssueUseCase(
	issues issue.IssueRepository,
	users user.UserRepository,
	zones WardZoneLookup,
	selector AssigneePicker,
	txManager TransactionManager,
	invalidator CacheInvalidator,
	notifier AssignmentNotifier,
	dispatcher events.EventDispatcher,
	log logger.Interface,
) *ReassignIssueUseCase {
	return &ReassignIssueUseCase{
		issues:      issues,
		users:       users,
		zones:       zones,
		selector:    selector,
		txManager:   txManager,
		invalidator: invalidator,
		notifier:    notifier,
		dispatcher:  dispatcher,
		logger:      log.Named("issue.reassign"),
	}
}

func (uc *ReassignIssueUseCase) Execute(ctx context.Context, cmd ReassignIssueCommand) (*dto.IssueDTO, error) {
	if !authorization.Can(cmd.ActorRole, authorization.CanReassign) {
		return nil, errors.NewForbiddenError("role cannot reassign issues")
	}
	if cmd.NewAssigneeID == 0 {
		return nil, errors.NewValidationError("assignee ID is required")
	}

	var (
		updated       *issue.Issue
		target        *user.User
		oldAssigneeID *uint
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		found, err := uc.issues.FindByID(txCtx, cmd.IssueID)
		if err != nil {
			return fmt.Errorf("failed to load issue: %w", err)
		}
		if found == nil {
			return errors.NewNotFoundError(fmt.Sprintf("issue %d not found", cmd.IssueID))
		}

		target, err = uc.users.FindByID(txCtx, cmd.NewAssigneeID)
		if err != nil {
			return fmt.Errorf("failed to load assignee: %w", err)
		}
		if target == nil {
			return errors.NewInvalidAssigneeError(fmt.Sprintf("user %d not found", cmd.NewAssigneeID))
		}
		if !target.IsActive() {
			return errors.NewInvalidAssigneeError(fmt.Sprintf("user %d is inactive", cmd.NewAssigneeID))
		}
		if !target.BelongsToWard(found.WardID()) {
			return errors.NewInvalidAssigneeError(
				fmt.Sprintf("user %d is not scoped to ward %d", cmd.NewAssigneeID, found.WardID()),
			)
		}

		oldAssigneeID = found.AssigneeID()
		if err := found.Reassign(cmd.NewAssigneeID, cmd.ActorID, cmd.Comment); err != nil {
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

	uc.logger.Infow("issue reassigned",
		"issue_id", updated.ID(),
		"new_assignee_id", cmd.NewAssigneeID,
		"reassigned_by", cmd.ActorID,
	)

	uc.selector.Invalidate(updated.WardID(), target.Department())

	ref := invalidationRefFor(ctx, uc.zones, uc.logger, updated)
	if oldAssigneeID != nil && *oldAssigneeID != cmd.NewAssigneeID {
		ref.UserIDs = append(ref.UserIDs, *oldAssigneeID)
	}
	uc.invalidator.InvalidateIssue(ctx, ref)

	ticket := updated.TicketNumber()
	address := updated.Address()
	goroutine.SafeGo(uc.logger, "notify-reassignment", func() {
		if err := uc.notifier.NotifyAssignment(context.Background(), target, ticket, address); err != nil {
			uc.logger.Warnw("assignment notice failed", "assignee_id", cmd.NewAssigneeID, "error", err)
		}
	})

	if err := uc.dispatcher.Publish(issue.IssueReassignedEvent{
		IssueID:       updated.ID(),
		OldAssigneeID: oldAssigneeID,
		NewAssigneeID: cmd.NewAssigneeID,
		ReassignedBy:  cmd.ActorID,
		Timestamp:     biztime.NowUTC(),
	}); err != nil {
		uc.logger.Warnw("failed to publish issue.reassigned", "issue_id", updated.ID(), "error", err)
	}

	return dto.FromIssue(updated), nil
}
