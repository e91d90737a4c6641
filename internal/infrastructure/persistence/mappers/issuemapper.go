// Package mappers converts between domain entities and persistence models.
package mappers

import (
	"civicgrid/internal/domain/issue"
	vo "civicgrid/internal/domain/issue/valueobjects"
	"civicgrid/internal/infrastructure/persistence/models"
)

// IssueMapper handles the conversion between issue domain entities and
// persistence models.
type IssueMapper interface {
	ToModel(i *issue.Issue) *models.IssueModel
	ToDomain(model *models.IssueModel) (*issue.Issue, error)
	MediaToModel(m *issue.Media) *models.IssueMediaModel
	MediaToDomain(model *models.IssueMediaModel) (*issue.Media, error)
	HistoryToModel(h *issue.HistoryEntry) *models.IssueHistoryModel
	HistoryToDomain(model *models.IssueHistoryModel) *issue.HistoryEntry
	CommentToModel(c *issue.Comment) *models.IssueCommentModel
}

type IssueMapperImpl struct{}

func NewIssueMapper() IssueMapper {
	return &IssueMapperImpl{}
}

func (m *IssueMapperImpl) ToModel(i *issue.Issue) *models.IssueModel {
	return &models.IssueModel{
		ID:           i.ID(),
		TicketNumber: i.TicketNumber(),
		CategoryID:   i.CategoryID(),
		Priority:     i.Priority().String(),
		Status:       i.Status().String(),
		Latitude:     i.Latitude(),
		Longitude:    i.Longitude(),
		Address:      i.Address(),
		WardID:       i.WardID(),
		ReporterID:   i.ReporterID(),
		AssigneeID:   i.AssigneeID(),
		CreatedAt:    i.CreatedAt(),
		UpdatedAt:    i.UpdatedAt(),
		AssignedAt:   i.AssignedAt(),
		SLATargetAt:  i.SLATargetAt(),
		ResolvedAt:   i.ResolvedAt(),
		VerifiedAt:   i.VerifiedAt(),
		DeletedAt:    i.DeletedAt(),
	}
}

func (m *IssueMapperImpl) ToDomain(model *models.IssueModel) (*issue.Issue, error) {
	return issue.ReconstructIssue(
		model.ID,
		model.TicketNumber,
		model.CategoryID,
		vo.Priority(model.Priority),
		vo.IssueStatus(model.Status),
		model.Latitude, model.Longitude,
		model.Address,
		model.WardID,
		model.ReporterID,
		model.AssigneeID,
		model.CreatedAt, model.UpdatedAt,
		model.AssignedAt, model.SLATargetAt, model.ResolvedAt, model.VerifiedAt, model.DeletedAt,
	)
}

func (m *IssueMapperImpl) MediaToModel(media *issue.Media) *models.IssueMediaModel {
	return &models.IssueMediaModel{
		ID:        media.ID(),
		IssueID:   media.IssueID(),
		MediaType: media.Type().String(),
		URL:       media.URL(),
		ObjectKey: media.ObjectKey(),
		CreatedAt: media.CreatedAt(),
	}
}

func (m *IssueMapperImpl) MediaToDomain(model *models.IssueMediaModel) (*issue.Media, error) {
	return issue.ReconstructMedia(
		model.ID,
		model.IssueID,
		vo.MediaType(model.MediaType),
		model.URL,
		model.ObjectKey,
		model.CreatedAt,
	)
}

func (m *IssueMapperImpl) HistoryToModel(h *issue.HistoryEntry) *models.IssueHistoryModel {
	return &models.IssueHistoryModel{
		ID:         h.ID(),
		IssueID:    h.IssueID(),
		ChangeType: h.ChangeType().String(),
		OldValue:   h.OldValue(),
		NewValue:   h.NewValue(),
		ChangedBy:  h.ChangedBy(),
		Comment:    h.Comment(),
		CreatedAt:  h.CreatedAt(),
	}
}

func (m *IssueMapperImpl) HistoryToDomain(model *models.IssueHistoryModel) *issue.HistoryEntry {
	return issue.ReconstructHistoryEntry(
		model.ID,
		model.IssueID,
		issue.ChangeType(model.ChangeType),
		model.OldValue,
		model.NewValue,
		model.ChangedBy,
		model.Comment,
		model.CreatedAt,
	)
}

func (m *IssueMapperImpl) CommentToModel(c *issue.Comment) *models.IssueCommentModel {
	return &models.IssueCommentModel{
		ID:        c.ID(),
		IssueID:   c.IssueID(),
		UserID:    c.UserID(),
		Content:   c.Content(),
		CreatedAt: c.CreatedAt(),
	}
}
