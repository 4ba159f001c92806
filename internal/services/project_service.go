package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mtakahara/project-task-api/internal/constants"
	"github.com/mtakahara/project-task-api/internal/models"
	"github.com/mtakahara/project-task-api/internal/repository"
	"github.com/mtakahara/project-task-api/internal/utils"
	"gorm.io/gorm"
)

// ErrProjectNotFound covers both a missing project and a project owned
// by someone else. Callers never learn which.
var ErrProjectNotFound = errors.New("project not found or access denied")

var ErrProjectTitleRequired = errors.New("title is required")

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProjectInput represents input for creating or updating a project
type CreateProjectInput struct {
	Title       string
	Description string
}

// CreateProject creates a project owned by the user
func (s *ProjectService) CreateProject(input CreateProjectInput, user *models.User) (*models.Project, error) {
	if input.Title == "" {
		return nil, ErrProjectTitleRequired
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		UserID:      user.ID,
		User:        *user,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjects returns all projects owned by the user
func (s *ProjectService) ListProjects(userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.FindByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ListProjectsPage returns one page of the user's projects, most
// recently modified first
func (s *ProjectService) ListProjectsPage(userID uint64, params utils.PaginationParams) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.FindPageByUserID(userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// ListRecentProjects returns the user's projects modified within the
// trailing window, newest first
func (s *ProjectService) ListRecentProjects(userID uint64) ([]models.Project, error) {
	since := time.Now().Add(-constants.RecentWindow)
	projects, err := s.projectRepo.FindModifiedSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project if the user owns it
func (s *ProjectService) GetProject(projectID, userID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByIDAndUserID(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// UpdateProject updates title and description of an owned project. The
// last modified date is left alone; only task mutations advance it.
func (s *ProjectService) UpdateProject(projectID uint64, input CreateProjectInput, userID uint64) (*models.Project, error) {
	if input.Title == "" {
		return nil, ErrProjectTitleRequired
	}

	project, err := s.GetProject(projectID, userID)
	if err != nil {
		return nil, err
	}

	project.Title = input.Title
	project.Description = input.Description

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject deletes an owned project along with all of its tasks
func (s *ProjectService) DeleteProject(projectID, userID uint64) error {
	if _, err := s.GetProject(projectID, userID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
