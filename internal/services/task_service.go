package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mtakahara/project-task-api/internal/models"
	"github.com/mtakahara/project-task-api/internal/repository"
	"github.com/mtakahara/project-task-api/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound is returned when a task does not exist within the
	// caller's project. Like ErrProjectNotFound it leaks nothing about
	// other tenants' data.
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskTitleRequired = errors.New("title is required")
)

// TaskService handles task business logic. Every operation first runs
// the project through the ownership check, then resolves the task
// within that project.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// CreateTaskInput represents input for creating or updating a task
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

// CreateTask creates a task in an owned project. New tasks always start
// in progress regardless of request contents.
func (s *TaskService) CreateTask(projectID uint64, input CreateTaskInput, userID uint64) (*models.Task, *models.Project, error) {
	if input.Title == "" {
		return nil, nil, ErrTaskTitleRequired
	}

	project, err := s.guardProject(projectID, userID)
	if err != nil {
		return nil, nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      models.TaskStatusInProgress,
		ProjectID:   project.ID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, project, nil
}

// ListTasks returns all tasks of an owned project
func (s *TaskService) ListTasks(projectID, userID uint64) ([]models.Task, *models.Project, error) {
	project, err := s.guardProject(projectID, userID)
	if err != nil {
		return nil, nil, err
	}

	tasks, err := s.taskRepo.FindByProjectID(projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, project, nil
}

// ListTasksPage returns one page of an owned project's tasks
func (s *TaskService) ListTasksPage(projectID, userID uint64, params utils.PaginationParams, sort repository.TaskSort) ([]models.Task, int64, *models.Project, error) {
	project, err := s.guardProject(projectID, userID)
	if err != nil {
		return nil, 0, nil, err
	}

	tasks, total, err := s.taskRepo.FindPageByProjectID(projectID, params, sort)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, project, nil
}

// GetTask returns a task if the user owns its project
func (s *TaskService) GetTask(projectID, taskID, userID uint64) (*models.Task, *models.Project, error) {
	project, err := s.guardProject(projectID, userID)
	if err != nil {
		return nil, nil, err
	}

	task, err := s.guardTask(taskID, projectID)
	if err != nil {
		return nil, nil, err
	}

	return task, project, nil
}

// UpdateTask updates title, description, and due date of a task in an
// owned project
func (s *TaskService) UpdateTask(projectID, taskID uint64, input CreateTaskInput, userID uint64) (*models.Task, *models.Project, error) {
	if input.Title == "" {
		return nil, nil, ErrTaskTitleRequired
	}

	project, err := s.guardProject(projectID, userID)
	if err != nil {
		return nil, nil, err
	}

	task, err := s.guardTask(taskID, projectID)
	if err != nil {
		return nil, nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.DueDate = input.DueDate

	if err := s.taskRepo.Update(task); err != nil {
		return nil, nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, project, nil
}

// CompleteTask marks a task as completed
func (s *TaskService) CompleteTask(projectID, taskID, userID uint64) (*models.Task, *models.Project, error) {
	project, err := s.guardProject(projectID, userID)
	if err != nil {
		return nil, nil, err
	}

	task, err := s.guardTask(taskID, projectID)
	if err != nil {
		return nil, nil, err
	}

	task.Status = models.TaskStatusCompleted

	if err := s.taskRepo.Update(task); err != nil {
		return nil, nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return task, project, nil
}

// DeleteTask deletes a task from an owned project
func (s *TaskService) DeleteTask(projectID, taskID, userID uint64) error {
	if _, err := s.guardProject(projectID, userID); err != nil {
		return err
	}

	task, err := s.guardTask(taskID, projectID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID, projectID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// guardProject resolves a project through the ownership filter
func (s *TaskService) guardProject(projectID, userID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByIDAndUserID(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// guardTask resolves a task within an already-guarded project
func (s *TaskService) guardTask(taskID, projectID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDAndProjectID(taskID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}
