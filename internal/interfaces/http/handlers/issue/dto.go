package issue

import (
	"civicgrid/internal/application/issue/usecases"
	"civicgrid/internal/shared/authorization"
)

type MediaRequest struct {
	Type      string `json:"type" binding:"required,oneof=BEFORE AFTER"`
	URL       string `json:"url" binding:"required,url"`
	ObjectKey string `json:"object_key"`
}

type CreateIssueRequest struct {
	CategoryID uint           `json:"category_id" binding:"required"`
	Priority   string         `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	Latitude   float64        `json:"latitude" binding:"latitude"`
	Longitude  float64        `json:"longitude" binding:"longitude"`
	Address    string         `json:"address" binding:"required,max=500"`
	Media      []MediaRequest `json:"media" binding:"omitempty,dive"`
}

func (r CreateIssueRequest) ToCommand(reporterID uint) usecases.CreateIssueCommand {
	cmd := usecases.CreateIssueCommand{
		ReporterID: reporterID,
		CategoryID: r.CategoryID,
		Priority:   r.Priority,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		Address:    r.Address,
	}
	for _, m := range r.Media {
		cmd.Media = append(cmd.Media, usecases.MediaInput{
			Type:      m.Type,
			URL:       m.URL,
			ObjectKey: m.ObjectKey,
		})
	}
	return cmd
}

type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment" binding:"max=2000"`
}

func (r UpdateStatusRequest) ToCommand(issueID, actorID uint, role authorization.Role) usecases.UpdateStatusCommand {
	return usecases.UpdateStatusCommand{
		IssueID:   issueID,
		NewStatus: r.Status,
		ActorID:   actorID,
		ActorRole: role,
		Comment:   r.Comment,
	}
}

type ReassignRequest struct {
	AssigneeID uint   `json:"assignee_id" binding:"required"`
	Comment    string `json:"comment" binding:"max=2000"`
}

func (r ReassignRequest) ToCommand(issueID, actorID uint, role authorization.Role) usecases.ReassignIssueCommand {
	return usecases.ReassignIssueCommand{
		IssueID:       issueID,
		NewAssigneeID: r.AssigneeID,
		ActorID:       actorID,
		ActorRole:     role,
		Comment:       r.Comment,
	}
}

type VerifyRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment" binding:"max=2000"`
}

func (r VerifyRequest) ToCommand(issueID, actorID uint, role authorization.Role) usecases.VerifyResolutionCommand {
	return usecases.VerifyResolutionCommand{
		IssueID:   issueID,
		Approve:   r.Approve,
		ActorID:   actorID,
		ActorRole: role,
		Comment:   r.Comment,
	}
}

type ReopenRequest struct {
	Comment string `json:"comment" binding:"required,max=2000"`
}

func (r ReopenRequest) ToCommand(issueID, actorID uint, role authorization.Role) usecases.ReopenIssueCommand {
	return usecases.ReopenIssueCommand{
		IssueID:   issueID,
		ActorID:   actorID,
		ActorRole: role,
		Comment:   r.Comment,
	}
}

type AddAfterMediaRequest struct {
	URL       string `json:"url" binding:"required,url"`
	ObjectKey string `json:"object_key"`
}

func (r AddAfterMediaRequest) ToCommand(issueID, actorID uint, role authorization.Role) usecases.AddAfterMediaCommand {
	return usecases.AddAfterMediaCommand{
		IssueID:   issueID,
		ActorID:   actorID,
		ActorRole: role,
		URL:       r.URL,
		ObjectKey: r.ObjectKey,
	}
}
