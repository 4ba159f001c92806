package dto

import (
	"time"

	"github.com/mtakahara/project-task-api/internal/models"
)

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID           uint64            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	DueDate      *time.Time        `json:"due_date"`
	CreationDate time.Time         `json:"creation_date"`
	UpdateDate   time.Time         `json:"update_date"`
	Status       models.TaskStatus `json:"status"`
	ProjectID    uint64            `json:"project_id"`
	ProjectTitle string            `json:"project_title,omitempty"`
}

// TaskPageResponse is a paginated list of tasks
type TaskPageResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
	TotalPages int            `json:"total_pages"`
}

// ToTaskResponse converts a Task model to TaskResponse. projectTitle
// may be empty when the parent was not loaded alongside the task.
func ToTaskResponse(task models.Task, projectTitle string) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		DueDate:      task.DueDate,
		CreationDate: task.CreationDate,
		UpdateDate:   task.UpdateDate,
		Status:       task.Status,
		ProjectID:    task.ProjectID,
		ProjectTitle: projectTitle,
	}
}

// ToTaskResponses converts a slice of tasks
func ToTaskResponses(tasks []models.Task, projectTitle string) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		responses[i] = ToTaskResponse(t, projectTitle)
	}
	return responses
}

// ToTaskPageResponse converts one page of tasks
func ToTaskPageResponse(tasks []models.Task, projectTitle string, page, pageSize int, totalCount int64) TaskPageResponse {
	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return TaskPageResponse{
		Tasks:      ToTaskResponses(tasks, projectTitle),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
