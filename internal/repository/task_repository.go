package repository

import (
	"time"

	"github.com/mtakahara/project-task-api/internal/database"
	"github.com/mtakahara/project-task-api/internal/models"
	"github.com/mtakahara/project-task-api/internal/utils"
	"gorm.io/gorm"
)

// taskSortColumns whitelists client-facing sort keys to real columns.
var taskSortColumns = map[string]string{
	"creation_date": "creation_date",
	"creationDate":  "creation_date",
	"due_date":      "due_date",
	"dueDate":       "due_date",
	"title":         "title",
	"status":        "status",
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a task and stamps the parent project's last modified
// date in the same transaction
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		task.CreationDate = now
		task.UpdateDate = now

		if err := tx.Create(task).Error; err != nil {
			return err
		}

		return touchProject(tx, task.ProjectID, now)
	})
}

// FindByProjectID lists all tasks of a project
func (r *GormTaskRepository) FindByProjectID(projectID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("project_id = ?", projectID).
		Order("creation_date DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindPageByProjectID lists one page of a project's tasks
func (r *GormTaskRepository) FindPageByProjectID(projectID uint64, params utils.PaginationParams, sort TaskSort) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := taskSortColumns[sort.Field]
	if !ok {
		column = "creation_date"
	}
	order := column + " ASC"
	if sort.Descending {
		order = column + " DESC"
	}

	var tasks []models.Task
	if err := query.
		Order(order).
		Scopes(database.Paginate(params)).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// FindByIDAndProjectID finds a task only if it belongs to the project
func (r *GormTaskRepository) FindByIDAndProjectID(id, projectID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND project_id = ?", id, projectID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update saves a task and stamps the parent project's last modified
// date in the same transaction
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		task.UpdateDate = now

		if err := tx.Save(task).Error; err != nil {
			return err
		}

		return touchProject(tx, task.ProjectID, now)
	})
}

// Delete deletes a task and stamps the parent project's last modified
// date in the same transaction
func (r *GormTaskRepository) Delete(id, projectID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND project_id = ?", id, projectID).
			Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return touchProject(tx, projectID, time.Now())
	})
}

func touchProject(tx *gorm.DB, projectID uint64, at time.Time) error {
	return tx.Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("last_modified_date", at).Error
}
