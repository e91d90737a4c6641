// Package usecases implements the application operations of the issue
// lifecycle. Each use case owns one operation: it validates the command,
// coordinates domain objects and repositories inside a transaction and
// performs the post-commit cache and notification work.
package usecases

import (
	"context"
	"fmt"
	"sync"

	"civicgrid/internal/application/issue/dto"
	"civicgrid/internal/domain/category"
	"civicgrid/internal/domain/issue"
	vo "civicgrid/internal/domain/issue/valueobjects"
	"civicgrid/internal/domain/shared/events"
	"civicgrid/internal/domain/user"
	"civicgrid/internal/shared/biztime"
	"civicgrid/internal/shared/errors"
	"civicgrid/internal/shared/goroutine"
	"civicgrid/internal/shared/logger"
)

// MediaInput describes one media item submitted with the report.
type MediaInput struct {
	Type      string
	URL       string
	ObjectKey string
}

// CreateIssueCommand carries the data needed to report a new issue.
type CreateIssueCommand struct {
	ReporterID uint
	CategoryID uint
	Priority   string
	Latitude   float64
	Longitude  float64
	Address    string
	Media      []MediaInput
}

// CreateIssueUseCase reports a new issue: it resolves the ward from the
// coordinate, mints the ticket number, auto-assigns an engineer when one is
// available and persists everything atomically.
type CreateIssueUseCase struct {
	issues      issue.IssueRepository
	categories  category.CategoryRepository
	users       user.UserRepository
	resolver    WardResolver
	zones       WardZoneLookup
	selector    AssigneePicker
	sequencer   issue.Sequencer
	txManager   TransactionManager
	invalidator CacheInvalidator
	notifier    AssignmentNotifier
	dispatcher  events.EventDispatcher
	logger      logger.Interface
}

// WardZoneLookup maps a ward onto its owning zone for cache scoping.
type WardZoneLookup interface {
	ZoneID(ctx context.Context, wardID uint) (uint, error)
}

func NewCreateIssueUseCase(
	issues issue.IssueRepository,
	categories category.CategoryRepository,
	users user.UserRepository,
	resolver WardResolver,
	zones WardZoneLookup,
	selector AssigneePicker,
	sequencer issue.Sequencer,
	txManager TransactionManager,
	invalidator CacheInvalidator,
	notifier AssignmentNotifier,
	dispatcher events.EventDispatcher,
	log logger.Interface,
) *CreateIssueUseCase {
	return &CreateIssueUseCase{
		issues:      issues,
		categories:  categories,
		users:       users,
		resolver:    resolver,
		zones:       zones,
		selector:    selector,
		sequencer:   sequencer,
		txManager:   txManager,
		invalidator: invalidator,
		notifier:    notifier,
		dispatcher:  dispatcher,
		logger:      log.Named("issue.create"),
	}
}

func (uc *CreateIssueUseCase) Execute(ctx context.Context, cmd CreateIssueCommand) (*dto.IssueDTO, error) {
	if cmd.ReporterID == 0 {
		return nil, errors.NewValidationError("reporter ID is required")
	}

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	// Category lookup and ward resolution are independent reads; run them
	// concurrently and join before touching the selector, which needs the
	// resolved ward.
	var (
		wg      sync.WaitGroup
		cat     *category.Category
		catErr  error
		wardID  uint
		wardErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		cat, catErr = uc.categories.FindByID(ctx, cmd.CategoryID)
	}()
	go func() {
		defer wg.Done()
		wardID, wardErr = uc.resolver.Resolve(ctx, cmd.Latitude, cmd.Longitude)
	}()
	wg.Wait()

	if wardErr != nil {
		return nil, wardErr
	}
	if catErr != nil {
		return nil, fmt.Errorf("failed to load category: %w", catErr)
	}
	// An unknown category is bad input on the report, not a missing resource.
	if cat == nil {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown category %d", cmd.CategoryID))
	}

	assigneeID, err := uc.selector.Select(ctx, wardID, cat.Department())
	if err != nil {
		return nil, fmt.Errorf("failed to select assignee: %w", err)
	}

	newIssue, err := issue.NewIssue(
		cmd.CategoryID,
		priority,
		cmd.Latitude, cmd.Longitude,
		cmd.Address,
		wardID,
		cmd.ReporterID,
		cat.SLAHours(),
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if assigneeID != nil {
		if err := newIssue.AssignOnCreate(*assigneeID); err != nil {
			return nil, fmt.Errorf("failed to auto-assign: %w", err)
		}
	}

	initialMedia := make([]*issue.Media, 0, len(cmd.Media))
	for _, m := range cmd.Media {
		mediaType, err := vo.NewMediaType(m.Type)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		item, err := issue.NewMedia(0, mediaType, m.URL, m.ObjectKey)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		initialMedia = append(initialMedia, item)
	}
	newIssue.AttachMedia(initialMedia)
	newIssue.RecordCreation()

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		ticket, err := uc.sequencer.Next(txCtx, newIssue.CreatedAt().Year())
		if err != nil {
			return fmt.Errorf("failed to mint ticket number: %w", err)
		}
		if err := newIssue.SetTicketNumber(ticket); err != nil {
			return err
		}
		return uc.issues.Save(txCtx, newIssue)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("issue created",
		"issue_id", newIssue.ID(),
		"ticket_number", newIssue.TicketNumber(),
		"ward_id", wardID,
		"status", newIssue.Status().String(),
	)

	uc.afterCreate(ctx, newIssue)
	return dto.FromIssue(newIssue), nil
}

// afterCreate runs the post-commit side effects: cache invalidation, the
// best-effort assignment notice and the domain event.
func (uc *CreateIssueUseCase) afterCreate(ctx context.Context, newIssue *issue.Issue) {
	uc.invalidator.InvalidateIssue(ctx, invalidationRefFor(ctx, uc.zones, uc.logger, newIssue))

	if newIssue.AssigneeID() != nil {
		assigneeID := *newIssue.AssigneeID()
		ticket := newIssue.TicketNumber()
		address := newIssue.Address()
		goroutine.SafeGo(uc.logger, "notify-assignment", func() {
			recipient, err := uc.users.FindByID(context.Background(), assigneeID)
			if err != nil || recipient == nil {
				uc.logger.Warnw("assignment notice skipped", "assignee_id", assigneeID, "error", err)
				return
			}
			if err := uc.notifier.NotifyAssignment(context.Background(), recipient, ticket, address); err != nil {
				uc.logger.Warnw("assignment notice failed", "assignee_id", assigneeID, "error", err)
			}
		})
	}

	if err := uc.dispatcher.Publish(issue.IssueCreatedEvent{
		IssueID:      newIssue.ID(),
		TicketNumber: newIssue.TicketNumber(),
		WardID:       newIssue.WardID(),
		ReporterID:   newIssue.ReporterID(),
		AssigneeID:   newIssue.AssigneeID(),
		Status:       newIssue.Status().String(),
		Priority:     newIssue.Priority().String(),
		Timestamp:    biztime.NowUTC(),
	}); err != nil {
		uc.logger.Warnw("failed to publish issue.created", "issue_id", newIssue.ID(), "error", err)
	}
}
