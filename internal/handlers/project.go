package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mtakahara/project-task-api/internal/constants"
	"github.com/mtakahara/project-task-api/internal/dto"
	apierrors "github.com/mtakahara/project-task-api/internal/errors"
	"github.com/mtakahara/project-task-api/internal/middleware"
	"github.com/mtakahara/project-task-api/internal/services"
	"github.com/mtakahara/project-task-api/internal/utils"
)

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
	authService    *services.AuthService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, authService *services.AuthService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		authService:    authService,
	}
}

// CreateProject creates a project owned by the current user.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ProjectRequest struct {
		Title       string `json:"title" binding:"required,max=255"`
		Description string `json:"description"`
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
	}, user)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectResponse(*project))
}

// ListProjects returns all of the current user's projects.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projects, err := h.projectService.ListProjects(userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectSummaryResponses(projects))
}

// ListProjectsPage returns one page of the current user's projects,
// most recently modified first.
func (h *ProjectHandler) ListProjectsPage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c, constants.DefaultProjectPageSize)

	projects, total, err := h.projectService.ListProjectsPage(userID, params)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectPageResponse(projects, params.Page, params.Limit, total))
}

// ListRecentProjects returns projects modified within the trailing
// window, newest first.
func (h *ProjectHandler) ListRecentProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projects, err := h.projectService.ListRecentProjects(userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectSummaryResponses(projects))
}

// GetProject returns a single owned project with owner and progress
// fields.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, projectID, ok := projectRequestIDs(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(*project))
}

// UpdateProject updates an owned project's title and description.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, projectID, ok := projectRequestIDs(c)
	if !ok {
		return
	}

	type ProjectRequest struct {
		Title       string `json:"title" binding:"required,max=255"`
		Description string `json:"description"`
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(projectID, services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
	}, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(*project))
}

// DeleteProject deletes an owned project and all of its tasks.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, projectID, ok := projectRequestIDs(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(projectID, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// projectRequestIDs extracts the authenticated user ID and the
// :projectId path parameter, responding on failure.
func projectRequestIDs(c *gin.Context) (userID, projectID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, 0, false
	}

	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return 0, 0, false
	}

	return userID, projectID, true
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
