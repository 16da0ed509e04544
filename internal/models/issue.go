package models

import "time"

type IssueStatus string

const (
	IssueStatusOpen   IssueStatus = "open"
	IssueStatusClosed IssueStatus = "closed"
)

type IssuePriority string

const (
	IssuePriorityLow    IssuePriority = "low"
	IssuePriorityMedium IssuePriority = "medium"
	IssuePriorityHigh   IssuePriority = "high"
)

type Issue struct {
	ID         uint64        `gorm:"primarykey" json:"id"`
	Title      string        `gorm:"type:varchar(100);not null;uniqueIndex:uq_issues_project_title" json:"title"`
	Desc       string        `gorm:"type:text" json:"desc"`
	Status     IssueStatus   `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Priority   IssuePriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	ProjectID  uint64        `gorm:"not null;index;uniqueIndex:uq_issues_project_title" json:"project_id"`
	ReporterID uint64        `gorm:"not null;index" json:"reporter_id"`
	// AssigneeID is stored as given; it is not checked against the users table.
	AssigneeID *uint64   `gorm:"index" json:"assignee_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Project  Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Reporter User      `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Comments []Comment `gorm:"foreignKey:IssueID" json:"comments,omitempty"`
}
