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
	"civicgrid/internal/shared/goroutine"
	"civicgrid/internal/shared/logger"
)

// ReopenIssueCommand invalidates a verified resolution. The issue returns to
// ASSIGNED and its AFTER media is purged from the database and storage.
type ReopenIssueCommand struct {
	IssueID   uint
	ActorID   uint
	ActorRole authorization.Role
	Comment   string
}

type ReopenIssueUseCase struct {
	issues      issue.IssueRepository
	zones       WardZoneLookup
	txManager   TransactionManager
	invalidator CacheInvalidator
	storage     MediaStorage
	dispatcher  events.EventDispatcher
	logger      logger.Interface
}

func NewReopenIssueUseCase(
	issues issue.IssueRepository,
	zones WardZoneLookup,
	txManager TransactionManager,
	invalidator CacheInvalidator,
	storage MediaStorage,
	dispatcher events.EventDispatcher,
	log logger.Interface,
) *ReopenIssueUseCase {
	return &ReopenIssueUseCase{
		issues:      issues,
		zones:       zones,
		txManager:   txManager,
		invalidator: invalidator,
		storage:     storage,
		dispatcher:  dispatcher,
		logger:      log.Named("issue.reopen"),
	}
}

func (uc *ReopenIssueUseCase) Execute(ctx context.Context, cmd ReopenIssueCommand) (*dto.IssueDTO, error) {
	if !authorization.Can(cmd.ActorRole, authorization.CanVerify) {
		return nil, errors.NewForbiddenError("role cannot reopen verified issues")
	}

	var (
		updated    *issue.Issue
		removed    []*issue.Media
		fromStatus vo.IssueStatus
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		found, err := uc.issues.FindByID(txCtx, cmd.IssueID)
		if err != nil {
			return fmt.Errorf("failed to load issue: %w", err)
		}
		if found == nil {
			return errors.NewNotFoundError(fmt.Sprintf("issue %d not found", cmd.IssueID))
		}

		fromStatus = found.Status()
		removed, err = found.ReopenFromVerified(cmd.ActorID, cmd.Comment)
		if err != nil {
			return err
		}
		if err := uc.issues.Update(txCtx, found); err != nil {
			return fmt.Errorf("failed to update issue: %w", err)
		}
		if err := uc.issues.DeleteAfterMedia(txCtx, found.ID()); err != nil {
			return fmt.Errorf("failed to delete after-media rows: %w", err)
		}
		updated = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("verified issue reopened",
		"issue_id", updated.ID(),
		"reopened_by", cmd.ActorID,
		"media_purged", len(removed),
	)

	// Storage objects are purged after commit; an orphaned object is
	// preferable to a media row pointing at a deleted object.
	if len(removed) > 0 {
		keys := make([]string, 0, len(removed))
		for _, m := range removed {
			if m.ObjectKey() != "" {
				keys = append(keys, m.ObjectKey())
			}
		}
		goroutine.SafeGo(uc.logger, "purge-after-media", func() {
			for _, key := range keys {
				if err := uc.storage.Delete(context.Background(), key); err != nil {
					uc.logger.Warnw("failed to delete media object", "object_key", key, "error", err)
				}
			}
		})
	}

	uc.invalidator.InvalidateIssue(ctx, invalidationRefFor(ctx, uc.zones, uc.logger, updated))

	if err := uc.dispatcher.Publish(issue.IssueReopenedEvent{
		IssueID:     updated.ID(),
		FromStatus:  fromStatus.String(),
		ReopenedBy:  cmd.ActorID,
		MediaPurged: len(removed),
		Timestamp:   biztime.NowUTC(),
	}); err != nil {
		uc.logger.Warnw("failed to publish issue.reopened", "issue_id", updated.ID(), "error", err)
	}

	return dto.FromIssue(updated), nil
}
