package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/issue-tracker-api/internal/models"
	"github.com/yukikurage/issue-tracker-api/internal/query"
	"github.com/yukikurage/issue-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrIssueNotFound   = errors.New("issue not found")
	ErrIssueTitleTaken = errors.New("the issue title is already taken in this project")
	ErrNotReporter     = errors.New("only the issue reporter can perform this action")
	ErrTitleEmpty      = errors.New("title cannot be empty")
)

// IssueService handles issue business logic.
type IssueService struct {
	issueRepo   repository.IssueRepository
	projectRepo repository.ProjectRepository
}

// NewIssueService creates a new IssueService.
func NewIssueService(issueRepo repository.IssueRepository, projectRepo repository.ProjectRepository) *IssueService {
	return &IssueService{
		issueRepo:   issueRepo,
		projectRepo: projectRepo,
	}
}

// CreateIssueInput represents input for creating an issue.
type CreateIssueInput struct {
	Title      string
	Desc       string
	Status     models.IssueStatus
	Priority   models.IssuePriority
	AssigneeID *uint64
}

// UpdateIssueInput represents a partial update; only non-nil fields change.
type UpdateIssueInput struct {
	Title      *string
	Desc       *string
	Status     *models.IssueStatus
	Priority   *models.IssuePriority
	AssigneeID *uint64
}

// CreateIssue creates an issue in a project. Titles are unique per project.
// The assignee is recorded as given without an existence check.
func (s *IssueService) CreateIssue(projectID uint64, input CreateIssueInput, reporterID uint64) (*models.Issue, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleEmpty
	}

	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	taken, err := s.issueRepo.TitleTaken(projectID, title, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check issue title: %w", err)
	}
	if taken {
		return nil, ErrIssueTitleTaken
	}

	if input.Status == "" {
		input.Status = models.IssueStatusOpen
	}
	if input.Priority == "" {
		input.Priority = models.IssuePriorityMedium
	}

	issue := &models.Issue{
		Title:      title,
		Desc:       input.Desc,
		Status:     input.Status,
		Priority:   input.Priority,
		ProjectID:  projectID,
		ReporterID: reporterID,
		AssigneeID: input.AssigneeID,
	}

	if err := s.issueRepo.Create(issue); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrIssueTitleTaken
		}
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	return issue, nil
}

// ListIssues retrieves a project's issues according to the list parameters.
func (s *IssueService) ListIssues(projectID uint64, params query.Params) ([]models.Issue, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	issues, err := s.issueRepo.ListByProject(projectID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	return issues, nil
}

// GetIssue retrieves an issue by ID.
func (s *IssueService) GetIssue(id uint64) (*models.Issue, error) {
	issue, err := s.issueRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	return issue, nil
}

// UpdateIssue applies a partial update. Only the reporter may modify an
// issue; the title is re-checked for uniqueness only when it is provided and
// differs from the current one.
func (s *IssueService) UpdateIssue(id uint64, input UpdateIssueInput, actorID uint64) (*models.Issue, error) {
	issue, err := s.issueRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	if issue.ReporterID != actorID {
		return nil, ErrNotReporter
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		if title != issue.Title {
			taken, err := s.issueRepo.TitleTaken(issue.ProjectID, title, issue.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check issue title: %w", err)
			}
			if taken {
				return nil, ErrIssueTitleTaken
			}
			issue.Title = title
		}
	}
	if input.Desc != nil {
		issue.Desc = *input.Desc
	}
	if input.Status != nil {
		issue.Status = *input.Status
	}
	if input.Priority != nil {
		issue.Priority = *input.Priority
	}
	if input.AssigneeID != nil {
		issue.AssigneeID = input.AssigneeID
	}

	if err := s.issueRepo.Update(issue); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrIssueTitleTaken
		}
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}

	return issue, nil
}

// DeleteIssue deletes an issue and its comments. Only the reporter may delete.
func (s *IssueService) DeleteIssue(id, actorID uint64) error {
	issue, err := s.issueRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIssueNotFound
		}
		return fmt.Errorf("failed to find issue: %w", err)
	}

	if issue.ReporterID != actorID {
		return ErrNotReporter
	}

	if err := s.issueRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}

	return nil
}
