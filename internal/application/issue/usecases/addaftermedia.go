package usecases

import (
	"context"
	"fmt"

	"civicgrid/internal/application/issue/dto"
	"civicgrid/internal/domain/issue"
	vo "civicgrid/internal/domain/issue/valueobjects"
	"civicgrid/internal/shared/authorization"
	"civicgrid/internal/shared/errors"
	"civicgrid/internal/shared/logger"
)

// AddAfterMediaCommand attaches one AFTER photo to an issue. AFTER media is
// the proof-of-work required before a resolution can be verified.
type AddAfterMediaCommand struct {
	IssueID   uint
	ActorID   uint
	ActorRole authorization.Role
	URL       string
	ObjectKey string
}

type AddAfterMediaUseCase struct {
	issues      issue.IssueRepository
	zones       WardZoneLookup
	txManager   TransactionManager
	invalidator CacheInvalidator
	logger      logger.Interface
}

func NewAddAfterMediaUseCase(
	issues issue.IssueRepository,
	zones WardZoneLookup,
	txManager TransactionManager,
	invalidator CacheInvalidator,
	log logger.Interface,
) *AddAfterMediaUseCase {
	return &AddAfterMediaUseCase{
		issues:      issues,
		zones:       zones,
		txManager:   txManager,
		invalidator: invalidator,
		logger:      log.Named("issue.add_after_media"),
	}
}

func (uc *AddAfterMediaUseCase) Execute(ctx context.Context, cmd AddAfterMediaCommand) (*dto.IssueDTO, error) {
	if !authorization.Can(cmd.ActorRole, authorization.CanUploadAfterMedia) {
		return nil, errors.NewForbiddenError("role cannot upload after-media")
	}

	var updated *issue.Issue
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		found, err := uc.issues.FindByID(txCtx, cmd.IssueID)
		if err != nil {
			return fmt.Errorf("failed to load issue: %w", err)
		}
		if found == nil {
			return errors.NewNotFoundError(fmt.Sprintf("issue %d not found", cmd.IssueID))
		}

		media, err := issue.NewMedia(found.ID(), vo.MediaAfter, cmd.URL, cmd.ObjectKey)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := found.AddMedia(media, cmd.ActorID); err != nil {
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

	uc.logger.Infow("after-media attached",
		"issue_id", updated.ID(),
		"uploaded_by", cmd.ActorID,
		"after_media_count", updated.AfterMediaCount(),
	)

	uc.invalidator.InvalidateIssue(ctx, invalidationRefFor(ctx, uc.zones, uc.logger, updated))
	return dto.FromIssue(updated), nil
}
