package repository

import (
	"time"

	"github.com/mtakahara/project-task-api/internal/models"
	"github.com/mtakahara/project-task-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email (exact match)
	FindByEmail(email string) (*models.User, error)

	// ExistsByEmail reports whether a user with the given email exists
	ExistsByEmail(email string) (bool, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByUserID lists all projects owned by a user, tasks included
	FindByUserID(userID uint64) ([]models.Project, error)

	// FindPageByUserID lists one page of a user's projects ordered by
	// last modified date, newest first
	FindPageByUserID(userID uint64, params utils.PaginationParams) ([]models.Project, int64, error)

	// FindByIDAndUserID finds a project only if it is owned by the user
	FindByIDAndUserID(id, userID uint64) (*models.Project, error)

	// FindModifiedSince lists a user's projects modified at or after
	// since, newest first
	FindModifiedSince(userID uint64, since time.Time) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project and all of its tasks
	Delete(id uint64) error
}

// TaskSort holds sorting options for task pages
type TaskSort struct {
	Field      string
	Descending bool
}

// TaskRepository defines the interface for task data access. Mutating
// methods stamp the parent project's last modified date in the same
// transaction as the task write.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByProjectID lists all tasks of a project
	FindByProjectID(projectID uint64) ([]models.Task, error)

	// FindPageByProjectID lists one page of a project's tasks
	FindPageByProjectID(projectID uint64, params utils.PaginationParams, sort TaskSort) ([]models.Task, int64, error)

	// FindByIDAndProjectID finds a task only if it belongs to the project
	FindByIDAndProjectID(id, projectID uint64) (*models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id, projectID uint64) error
}
