package dto

import (
	"time"

	"github.com/mtakahara/project-task-api/internal/models"
)

// ProjectResponse is the full project view, owner fields included
type ProjectResponse struct {
	ID                 uint64    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	OwnerName          string    `json:"owner_name"`
	OwnerEmail         string    `json:"owner_email"`
	CreationDate       time.Time `json:"creation_date"`
	LastModifiedDate   time.Time `json:"last_modified_date"`
	TotalTasks         int       `json:"total_tasks"`
	CompletedTasks     int       `json:"completed_tasks"`
	ProgressPercentage float64   `json:"progress_percentage"`
}

// ProjectSummaryResponse is the compact project view used in listings
type ProjectSummaryResponse struct {
	ID                 uint64    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	CreationDate       time.Time `json:"creation_date"`
	LastModifiedDate   time.Time `json:"last_modified_date"`
	TotalTasks         int       `json:"total_tasks"`
	CompletedTasks     int       `json:"completed_tasks"`
	ProgressPercentage float64   `json:"progress_percentage"`
}

// ProjectPageResponse is a paginated list of project summaries
type ProjectPageResponse struct {
	Projects   []ProjectSummaryResponse `json:"projects"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"page_size"`
	TotalCount int64                    `json:"total_count"`
	TotalPages int                      `json:"total_pages"`
}

// ToProjectResponse converts a Project model (with tasks and owner
// loaded) to ProjectResponse
func ToProjectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:                 project.ID,
		Title:              project.Title,
		Description:        project.Description,
		OwnerName:          project.User.Name,
		OwnerEmail:         project.User.Email,
		CreationDate:       project.CreationDate,
		LastModifiedDate:   project.LastModifiedDate,
		TotalTasks:         project.TotalTasks(),
		CompletedTasks:     project.CompletedTasks(),
		ProgressPercentage: project.ProgressPercentage(),
	}
}

// ToProjectSummaryResponse converts a Project model (with tasks loaded)
// to ProjectSummaryResponse
func ToProjectSummaryResponse(project models.Project) ProjectSummaryResponse {
	return ProjectSummaryResponse{
		ID:                 project.ID,
		Title:              project.Title,
		Description:        project.Description,
		CreationDate:       project.CreationDate,
		LastModifiedDate:   project.LastModifiedDate,
		TotalTasks:         project.TotalTasks(),
		CompletedTasks:     project.CompletedTasks(),
		ProgressPercentage: project.ProgressPercentage(),
	}
}

// ToProjectSummaryResponses converts a slice of projects
func ToProjectSummaryResponses(projects []models.Project) []ProjectSummaryResponse {
	summaries := make([]ProjectSummaryResponse, len(projects))
	for i, p := range projects {
		summaries[i] = ToProjectSummaryResponse(p)
	}
	return summaries
}

// ToProjectPageResponse converts one page of projects
func ToProjectPageResponse(projects []models.Project, page, pageSize int, totalCount int64) ProjectPageResponse {
	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return ProjectPageResponse{
		Projects:   ToProjectSummaryResponses(projects),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
