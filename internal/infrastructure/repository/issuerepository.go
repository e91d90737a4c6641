// Package repository contains the gorm-backed persistence adapters.
package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"civicgrid/internal/domain/issue"
	"civicgrid/internal/infrastructure/persistence/mappers"
	"civicgrid/internal/infrastructure/persistence/models"
	"civicgrid/internal/shared/biztime"
	"civicgrid/internal/shared/db"
)

// allowedIssueOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedIssueOrderByFields = map[string]bool{
	"id":            true,
	"ticket_number": true,
	"status":        true,
	"priority":      true,
	"ward_id":       true,
	"assignee_id":   true,
	"created_at":    true,
	"updated_at":    true,
	"sla_target_at": true,
}

// IssueRepository persists the issue aggregate. Find methods return
// (nil, nil) when no row matches; callers translate that into their own
// not-found error.
type IssueRepository struct {
	db     *gorm.DB
	mapper mappers.IssueMapper
}

func NewIssueRepository(database *gorm.DB) *IssueRepository {
	return &IssueRepository{
		db:     database,
		mapper: mappers.NewIssueMapper(),
	}
}

var _ issue.IssueRepository = (*IssueRepository)(nil)

// Save inserts a new issue with its initial media, pending history and
// pending comments. Runs inside the caller's transaction.
func (r *IssueRepository) Save(ctx context.Context, i *issue.Issue) error {
	tx := db.GetTxFromContext(ctx, r.db)

	model := r.mapper.ToModel(i)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save issue: %w", err)
	}
	if err := i.SetID(model.ID); err != nil {
		return err
	}

	for _, media := range i.Media() {
		media.SetIssueID(model.ID)
		mediaModel := r.mapper.MediaToModel(media)
		if err := tx.Create(mediaModel).Error; err != nil {
			return fmt.Errorf("failed to save issue media: %w", err)
		}
		if err := media.SetID(mediaModel.ID); err != nil {
			return err
		}
	}

	if err := r.persistPending(tx, i); err != nil {
		return err
	}
	i.ClearPending()
	return nil
}

// Update writes the issue row plus any history entries, comments and media
// recorded since the aggregate was loaded.
func (r *IssueRepository) Update(ctx context.Context, i *issue.Issue) error {
	tx := db.GetTxFromContext(ctx, r.db)

	model := r.mapper.ToModel(i)
	result := tx.
		Model(&models.IssueModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update issue: %w", result.Error)
	}

	for _, media := range i.Media() {
		if media.ID() != 0 {
			continue
		}
		mediaModel := r.mapper.MediaToModel(media)
		if err := tx.Create(mediaModel).Error; err != nil {
			return fmt.Errorf("failed to save issue media: %w", err)
		}
		if err := media.SetID(mediaModel.ID); err != nil {
			return err
		}
	}

	if err := r.persistPending(tx, i); err != nil {
		return err
	}
	i.ClearPending()
	return nil
}

func (r *IssueRepository) persistPending(tx *gorm.DB, i *issue.Issue) error {
	for _, entry := range i.PendingHistory() {
		entry.SetIssueID(i.ID())
		historyModel := r.mapper.HistoryToModel(entry)
		if err := tx.Create(historyModel).Error; err != nil {
			return fmt.Errorf("failed to save history entry: %w", err)
		}
		entry.SetID(historyModel.ID)
	}

	for _, comment := range i.PendingComments() {
		comment.SetIssueID(i.ID())
		commentModel := r.mapper.CommentToModel(comment)
		if err := tx.Create(commentModel).Error; err != nil {
			return fmt.Errorf("failed to save comment: %w", err)
		}
		comment.SetID(commentModel.ID)
	}
	return nil
}

func (r *IssueRepository) FindByID(ctx context.Context, id uint) (*issue.Issue, error) {
	var model models.IssueModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("id = ? AND deleted_at IS NULL", id).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}
	return r.hydrate(ctx, &model)
}

func (r *IssueRepository) FindByTicketNumber(ctx context.Context, ticketNumber string) (*issue.Issue, error) {
	var model models.IssueModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("ticket_number = ? AND deleted_at IS NULL", ticketNumber).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}
	return r.hydrate(ctx, &model)
}

// hydrate converts the row and loads the media and history collections.
func (r *IssueRepository) hydrate(ctx context.Context, model *models.IssueModel) (*issue.Issue, error) {
	i, err := r.mapper.ToDomain(model)
	if err != nil {
		return nil, err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	var mediaModels []models.IssueMediaModel
	if err := tx.
		Where("issue_id = ?", model.ID).
		Order("created_at asc").
		Find(&mediaModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load issue media: %w", err)
	}
	media := make([]*issue.Media, 0, len(mediaModels))
	for idx := range mediaModels {
		m, err := r.mapper.MediaToDomain(&mediaModels[idx])
		if err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	i.AttachMedia(media)

	var historyModels []models.IssueHistoryModel
	if err := tx.
		Where("issue_id = ?", model.ID).
		Order("created_at asc, id asc").
		Find(&historyModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load issue history: %w", err)
	}
	history := make([]*issue.HistoryEntry, 0, len(historyModels))
	for idx := range historyModels {
		history = append(history, r.mapper.HistoryToDomain(&historyModels[idx]))
	}
	i.AttachHistory(history)

	return i, nil
}

func (r *IssueRepository) List(ctx context.Context, filter issue.IssueFilter) ([]*issue.Issue, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.IssueModel{}).Where("deleted_at IS NULL")

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.WardID != nil {
		query = query.Where("ward_id = ?", *filter.WardID)
	}
	if filter.ZoneID != nil {
		query = query.Where("ward_id IN (?)",
			tx.Model(&models.WardModel{}).Select("id").Where("zone_id = ?", *filter.ZoneID))
	}
	if filter.ReporterID != nil {
		query = query.Where("reporter_id = ?", *filter.ReporterID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Breached != nil {
		now := biztime.NowUTC()
		if *filter.Breached {
			query = query.Where(
				"sla_target_at IS NOT NULL AND ((resolved_at IS NULL AND sla_target_at < ?) OR resolved_at > sla_target_at)",
				now,
			)
		} else {
			query = query.Where(
				"sla_target_at IS NULL OR (resolved_at IS NULL AND sla_target_at >= ?) OR resolved_at <= sla_target_at",
				now,
			)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count issues: %w", err)
	}

	orderBy := "created_at"
	if filter.SortBy != "" && allowedIssueOrderByFields[filter.SortBy] {
		orderBy = filter.SortBy
	}
	direction := "desc"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "asc"
	}

	var rows []models.IssueModel
	if err := query.
		Order(fmt.Sprintf("%s %s", orderBy, direction)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list issues: %w", err)
	}

	issues := make([]*issue.Issue, 0, len(rows))
	for idx := range rows {
		i, err := r.mapper.ToDomain(&rows[idx])
		if err != nil {
			return nil, 0, err
		}
		issues = append(issues, i)
	}
	return issues, total, nil
}

// DeleteAfterMedia removes all AFTER media rows of an issue. Used when a
// verified resolution is invalidated.
func (r *IssueRepository) DeleteAfterMedia(ctx context.Context, issueID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.
		Where("issue_id = ? AND media_type = ?", issueID, "AFTER").
		Delete(&models.IssueMediaModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete after-media: %w", result.Error)
	}
	return nil
}

// Stats computes the lifecycle counters, either city-wide (nil ward) or for
// one ward.
func (r *IssueRepository) Stats(ctx context.Context, wardID *uint) (*issue.Stats, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	base := func() *gorm.DB {
		q := tx.Model(&models.IssueModel{}).Where("deleted_at IS NULL")
		if wardID != nil {
			q = q.Where("ward_id = ?", *wardID)
		}
		return q
	}

	stats := &issue.Stats{ComputedAt: biztime.NowUTC()}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count issues: %w", err)
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := base().
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count issues by status: %w", err)
	}
	for _, c := range counts {
		switch c.Status {
		case "OPEN":
			stats.Open = c.Count
		case "IN_PROGRESS":
			stats.InProgress = c.Count
		case "RESOLVED":
			stats.Resolved = c.Count
		case "VERIFIED":
			stats.Verified = c.Count
		}
	}

	if err := base().
		Where("resolved_at IS NOT NULL").
		Count(&stats.TotalResolved).Error; err != nil {
		return nil, fmt.Errorf("failed to count resolved issues: %w", err)
	}

	if err := base().
		Where("resolved_at IS NOT NULL AND sla_target_at IS NOT NULL AND resolved_at <= sla_target_at").
		Count(&stats.ResolvedWithinTarget).Error; err != nil {
		return nil, fmt.Errorf("failed to count on-target resolutions: %w", err)
	}

	return stats, nil
}
