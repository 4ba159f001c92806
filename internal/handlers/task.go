package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mtakahara/project-task-api/internal/constants"
	"github.com/mtakahara/project-task-api/internal/dto"
	apierrors "github.com/mtakahara/project-task-api/internal/errors"
	"github.com/mtakahara/project-task-api/internal/repository"
	"github.com/mtakahara/project-task-api/internal/services"
	"github.com/mtakahara/project-task-api/internal/utils"
)

// TaskHandler coordinates task HTTP handlers. All routes are nested
// under /projects/:projectId, so every operation carries the owner
// chain in its path.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// taskRequest is shared by create and update.
type taskRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// CreateTask creates a task in an owned project.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, projectID, ok := projectRequestIDs(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, project, err := h.taskService.CreateTask(projectID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(*task, project.Title))
}

// ListTasks returns all tasks of an owned project.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, projectID, ok := projectRequestIDs(c)
	if !ok {
		return
	}

	tasks, project, err := h.taskService.ListTasks(projectID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponses(tasks, project.Title))
}

// ListTasksPage returns one sortable page of an owned project's tasks.
func (h *TaskHandler) ListTasksPage(c *gin.Context) {
	userID, projectID, ok := projectRequestIDs(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c, constants.DefaultTaskPageSize)
	sort := repository.TaskSort{
		Field:      c.DefaultQuery("sort_by", "creation_date"),
		Descending: !strings.EqualFold(c.DefaultQuery("sort_direction", "DESC"), "ASC"),
	}

	tasks, total, project, err := h.taskService.ListTasksPage(projectID, userID, params, sort)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskPageResponse(tasks, project.Title, params.Page, params.Limit, total))
}

// GetTask returns one task of an owned project.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, projectID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	task, project, err := h.taskService.GetTask(projectID, taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task, project.Title))
}

// UpdateTask updates a task in an owned project.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, projectID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, project, err := h.taskService.UpdateTask(projectID, taskID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task, project.Title))
}

// CompleteTask marks a task as completed.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, projectID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	task, project, err := h.taskService.CompleteTask(projectID, taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task, project.Title))
}

// DeleteTask deletes a task from an owned project.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, projectID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(projectID, taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// taskRequestIDs extracts the authenticated user ID plus the
// :projectId and :taskId path parameters, responding on failure.
func taskRequestIDs(c *gin.Context) (userID, projectID, taskID uint64, ok bool) {
	userID, projectID, ok = projectRequestIDs(c)
	if !ok {
		return 0, 0, 0, false
	}

	taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, 0, 0, false
	}

	return userID, projectID, taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
