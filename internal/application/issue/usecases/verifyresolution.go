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

// VerifyResolutionCommand settles a RESOLVED issue: approval verifies it,
// rejection sends it back to REOPENED.
type VerifyResolutionCommand struct {
	IssueID   uint
	Approve   bool
	ActorID   uint
	ActorRole authorization.Role
	Comment   string
}

type VerifyResolutionUseCase struct {
	issues      issue.IssueRepository
	zones       WardZoneLookup
	txManager   TransactionManager
	invalidator CacheInvalidator
	dispatcher  events.EventDispatcher
	logger      logger.Interface
}

func NewVerifyResolutionUseCase(
	issues issue.IssueRepository,
	zones WardZoneLookup,
	txManager TransactionManager,
	invalidator CacheInvalidator,
	dispatcher events.EventDispatcher,
	log logger.Interface,
) *VerifyResolutionUseCase {
	return &VerifyResolutionUseCase{
		issues:      issues,
		zones:       zones,
		txManager:   txManager,
		invalidator: invalidator,
		dispatcher:  dispatcher,
		logger:      log.Named("issue.verify"),
	}
}

func (uc *VerifyResolutionUseCase) Execute(ctx context.Context, cmd VerifyResolutionCommand) (*dto.IssueDTO, error) {
	if !authorization.Can(cmd.ActorRole, authorization.CanVerify) {
		return nil, errors.NewForbiddenError("role cannot verify resolutions")
	}

	var (
		updated   *issue.Issue
		oldStatus vo.IssueStatus
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		found, err := uc.issues.FindByID(txCtx, cmd.IssueID)
		if err != nil {
			return fmt.Errorf("failed to load issue: %w", err)
		}
		if found == nil {
			return errors.NewNotFoundError(fmt.Sprintf("issue %d not found", cmd.IssueID))
		}

		oldStatus = found.Status()
		if cmd.Approve {
			err = found.Approve(cmd.ActorID, cmd.Comment)
		} else {
			err = found.RejectResolution(cmd.ActorID, cmd.Comment)
		}
		if err != nil {
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

	uc.logger.Infow("resolution reviewed",
		"issue_id", updated.ID(),
		"approved", cmd.Approve,
		"new_status", updated.Status().String(),
		"reviewed_by", cmd.ActorID,
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
