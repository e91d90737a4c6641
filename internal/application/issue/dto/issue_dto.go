// Package dto holds the read models returned by issue use cases.
package dto

import (
	"time"

	"civicgrid/internal/domain/issue"
)

type MediaDTO struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryDTO struct {
	ID         uint      `json:"id"`
	ChangeType string    `json:"change_type"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	ChangedBy  uint      `json:"changed_by"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type IssueDTO struct {
	ID           uint         `json:"id"`
	TicketNumber string       `json:"ticket_number"`
	CategoryID   uint         `json:"category_id"`
	Priority     string       `json:"priority"`
	Status       string       `json:"status"`
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	Address      string       `json:"address"`
	WardID       uint         `json:"ward_id"`
	ReporterID   uint         `json:"reporter_id"`
	AssigneeID   *uint        `json:"assignee_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	AssignedAt   *time.Time   `json:"assigned_at,omitempty"`
	SLATargetAt  *time.Time   `json:"sla_target_at,omitempty"`
	ResolvedAt   *time.Time   `json:"resolved_at,omitempty"`
	VerifiedAt   *time.Time   `json:"verified_at,omitempty"`
	SLABreached  bool         `json:"sla_breached"`
	Media        []MediaDTO   `json:"media,omitempty"`
	History      []HistoryDTO `json:"history,omitempty"`
}

// FromIssue assembles the read model from the aggregate.
func FromIssue(i *issue.Issue) *IssueDTO {
	d := &IssueDTO{
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
		SLABreached:  i.IsBreached(),
	}

	for _, m := range i.Media() {
		d.Media = append(d.Media, MediaDTO{
			ID:        m.ID(),
			Type:      m.Type().String(),
			URL:       m.URL(),
			CreatedAt: m.CreatedAt(),
		})
	}

	for _, h := range i.History() {
		d.History = append(d.History, HistoryDTO{
			ID:         h.ID(),
			ChangeType: h.ChangeType().String(),
			OldValue:   h.OldValue(),
			NewValue:   h.NewValue(),
			ChangedBy:  h.ChangedBy(),
			Comment:    h.Comment(),
			CreatedAt:  h.CreatedAt(),
		})
	}

	return d
}

type StatsDTO struct {
	Total                int64     `json:"total"`
	Open                 int64     `json:"open"`
	InProgress           int64     `json:"in_progress"`
	Resolved             int64     `json:"resolved"`
	Verified             int64     `json:"verified"`
	TotalResolved        int64     `json:"total_resolved"`
	ResolvedWithinTarget int64     `json:"resolved_within_target"`
	SLACompliancePct     float64   `json:"sla_compliance_pct"`
	ComputedAt           time.Time `json:"computed_at"`
}

// FromStats assembles the stats read model.
func FromStats(s *issue.Stats) *StatsDTO {
	return &StatsDTO{
		Total:                s.Total,
		Open:                 s.Open,
		InProgress:           s.InProgress,
		Resolved:             s.Resolved,
		Verified:             s.Verified,
		TotalResolved:        s.TotalResolved,
		ResolvedWithinTarget: s.ResolvedWithinTarget,
		SLACompliancePct:     s.Compliance(),
		ComputedAt:           s.ComputedAt,
	}
}
