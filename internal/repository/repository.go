package repository

import (
	"github.com/yukikurage/issue-tracker-api/internal/models"
	"github.com/yukikurage/issue-tracker-api/internal/query"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username (exact, case-sensitive)
	FindByUsername(username string) (*models.User, error)

	// Update saves changes to a user
	Update(user *models.User) error

	// List retrieves users with filtering and pagination
	List(params query.Params) ([]models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindByOwnerAndName finds a project by its (owner, name) pair
	FindByOwnerAndName(ownerID uint64, name string) (*models.Project, error)

	// List retrieves projects with filtering and pagination
	List(params query.Params) ([]models.Project, error)

	// Delete deletes a project together with its issues and their comments
	Delete(id uint64) error
}

// IssueRepository defines the interface for issue data access
type IssueRepository interface {
	// Create creates a new issue
	Create(issue *models.Issue) error

	// FindByID finds an issue by ID
	FindByID(id uint64) (*models.Issue, error)

	// TitleTaken reports whether another issue in the project already uses
	// the title; excludeID ignores one issue (0 excludes nothing)
	TitleTaken(projectID uint64, title string, excludeID uint64) (bool, error)

	// ListByProject retrieves a project's issues with filtering and pagination
	ListByProject(projectID uint64, params query.Params) ([]models.Issue, error)

	// Update saves changes to an issue
	Update(issue *models.Issue) error

	// Delete deletes an issue together with its comments
	Delete(id uint64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(id uint64) (*models.Comment, error)

	// ListByIssue retrieves an issue's comments with filtering and pagination
	ListByIssue(issueID uint64, params query.Params) ([]models.Comment, error)

	// Update saves changes to a comment
	Update(comment *models.Comment) error

	// Delete deletes a comment
	Delete(id uint64) error
}
