package repository

import (
	"github.com/yukikurage/issue-tracker-api/internal/models"
	"github.com/yukikurage/issue-tracker-api/internal/query"
	"gorm.io/gorm"
)

// GormIssueRepository is a GORM implementation of IssueRepository
type GormIssueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new IssueRepository
func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &GormIssueRepository{db: db}
}

// Create creates a new issue
func (r *GormIssueRepository) Create(issue *models.Issue) error {
	return r.db.Create(issue).Error
}

// FindByID finds an issue by ID
func (r *GormIssueRepository) FindByID(id uint64) (*models.Issue, error) {
	var issue models.Issue
	if err := r.db.First(&issue, id).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

// TitleTaken reports whether another issue in the project already uses the title
func (r *GormIssueRepository) TitleTaken(projectID uint64, title string, excludeID uint64) (bool, error) {
	var count int64
	q := r.db.Model(&models.Issue{}).
		Where("project_id = ? AND title = ?", projectID, title)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByProject retrieves a project's issues with filtering and pagination
func (r *GormIssueRepository) ListByProject(projectID uint64, params query.Params) ([]models.Issue, error) {
	var issues []models.Issue
	if err := r.db.Model(&models.Issue{}).
		Where("project_id = ?", projectID).
		Scopes(params.Scope()).
		Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

// Update saves changes to an issue
func (r *GormIssueRepository) Update(issue *models.Issue) error {
	return r.db.Save(issue).Error
}

// Delete deletes an issue and its comments in a transaction
func (r *GormIssueRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Issue{}, id).Error
	})
}
