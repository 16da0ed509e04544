package dto

import (
	"time"

	"github.com/yukikurage/issue-tracker-api/internal/models"
)

// IssueDTO represents an issue in API responses
type IssueDTO struct {
	ID         uint64               `json:"id"`
	Title      string               `json:"title"`
	Desc       string               `json:"desc"`
	Status     models.IssueStatus   `json:"status"`
	Priority   models.IssuePriority `json:"priority"`
	ProjectID  uint64               `json:"project_id"`
	ReporterID uint64               `json:"reporter_id"`
	AssigneeID *uint64              `json:"assignee_id"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// ToIssueDTO converts an Issue model to IssueDTO
func ToIssueDTO(issue models.Issue) IssueDTO {
	return IssueDTO{
		ID:         issue.ID,
		Title:      issue.Title,
		Desc:       issue.Desc,
		Status:     issue.Status,
		Priority:   issue.Priority,
		ProjectID:  issue.ProjectID,
		ReporterID: issue.ReporterID,
		AssigneeID: issue.AssigneeID,
		CreatedAt:  issue.CreatedAt,
		UpdatedAt:  issue.UpdatedAt,
	}
}

// ToIssueListDTO converts a slice of Issue models
func ToIssueListDTO(issues []models.Issue) []IssueDTO {
	items := make([]IssueDTO, len(issues))
	for i, issue := range issues {
		items[i] = ToIssueDTO(issue)
	}
	return items
}
