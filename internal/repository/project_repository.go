package repository

import (
	"time"

	"github.com/mtakahara/project-task-api/internal/database"
	"github.com/mtakahara/project-task-api/internal/models"
	"github.com/mtakahara/project-task-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project. Both timestamps start equal; only task
// mutations move the last modified date afterwards.
func (r *GormProjectRepository) Create(project *models.Project) error {
	now := time.Now()
	project.CreationDate = now
	project.LastModifiedDate = now
	return r.db.Omit(clause.Associations).Create(project).Error
}

// FindByUserID lists all projects owned by a user with their tasks
func (r *GormProjectRepository) FindByUserID(userID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Preload("Tasks").
		Where("user_id = ?", userID).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// FindPageByUserID lists one page of a user's projects, most recently
// modified first
func (r *GormProjectRepository) FindPageByUserID(userID uint64, params utils.PaginationParams) ([]models.Project, int64, error) {
	query := r.db.Model(&models.Project{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	if err := query.
		Order("last_modified_date DESC").
		Scopes(database.Paginate(params)).
		Preload("Tasks").
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// FindByIDAndUserID finds a project only if it is owned by the user.
// A wrong id and someone else's id are indistinguishable to the caller.
func (r *GormProjectRepository) FindByIDAndUserID(id, userID uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.Preload("Tasks").Preload("User").
		Where("id = ? AND user_id = ?", id, userID).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindModifiedSince lists a user's projects modified at or after since,
// newest first
func (r *GormProjectRepository) FindModifiedSince(userID uint64, since time.Time) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Preload("Tasks").
		Where("user_id = ? AND last_modified_date >= ?", userID, since).
		Order("last_modified_date DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project. Loaded associations are left untouched.
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Omit(clause.Associations).Save(project).Error
}

// Delete deletes a project and its tasks in one transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}
