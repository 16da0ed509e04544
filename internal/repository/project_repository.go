package repository

import (
	"github.com/yukikurage/issue-tracker-api/internal/models"
	"github.com/yukikurage/issue-tracker-api/internal/query"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByOwnerAndName finds a project by its (owner, name) pair
func (r *GormProjectRepository) FindByOwnerAndName(ownerID uint64, name string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("owner_id = ? AND name = ?", ownerID, name).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects with filtering and pagination
func (r *GormProjectRepository) List(params query.Params) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Model(&models.Project{}).
		Scopes(params.Scope()).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Delete deletes a project and all dependent rows in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var issueIDs []uint64
		if err := tx.Model(&models.Issue{}).
			Where("project_id = ?", id).
			Pluck("id", &issueIDs).Error; err != nil {
			return err
		}

		if len(issueIDs) > 0 {
			if err := tx.Where("issue_id IN ?", issueIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Issue{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}
