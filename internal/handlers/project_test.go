package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mtakahara/project-task-api/internal/database"
	"github.com/mtakahara/project-task-api/internal/dto"
	"github.com/mtakahara/project-task-api/internal/middleware"
	"github.com/mtakahara/project-task-api/internal/models"
	"github.com/mtakahara/project-task-api/internal/repository"
	"github.com/mtakahara/project-task-api/internal/services"
	"github.com/mtakahara/project-task-api/internal/token"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

// setupAPITestEnv builds the full protected route surface over an
// in-memory database. Shared by project and task handler tests.
func setupAPITestEnv(t *testing.T) apiTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	tokens := token.NewService("test-secret", time.Hour)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, tokens)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)

	authHandler := NewAuthHandler(authService)
	projectHandler := NewProjectHandler(projectService, authService)
	taskHandler := NewTaskHandler(taskService)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	projects := api.Group("/projects")
	projects.Use(middleware.RequireAuth(tokens, userRepo))
	{
		projects.POST("", projectHandler.CreateProject)
		projects.GET("", projectHandler.ListProjectsPage)
		projects.GET("/all", projectHandler.ListProjects)
		projects.GET("/recent", projectHandler.ListRecentProjects)
		projects.GET("/:projectId", projectHandler.GetProject)
		projects.PUT("/:projectId", projectHandler.UpdateProject)
		projects.DELETE("/:projectId", projectHandler.DeleteProject)

		tasks := projects.Group("/:projectId/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasksPage)
			tasks.GET("/all", taskHandler.ListTasks)
			tasks.GET("/:taskId", taskHandler.GetTask)
			tasks.PUT("/:taskId", taskHandler.UpdateTask)
			tasks.PATCH("/:taskId/complete", taskHandler.CompleteTask)
			tasks.DELETE("/:taskId", taskHandler.DeleteTask)
		}
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return apiTestEnv{db: db, router: r}
}

// registerUser registers a user through the API and returns their token.
func registerUser(t *testing.T, env apiTestEnv, name, email string) string {
	t.Helper()

	w := postJSON(t, env.router, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)
	return response.Token
}

// doAuthJSON performs an authenticated request with an optional JSON body.
func doAuthJSON(t *testing.T, env apiTestEnv, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// createProject creates a project through the API and returns its response.
func createProject(t *testing.T, env apiTestEnv, bearer, title string) dto.ProjectResponse {
	t.Helper()

	w := doAuthJSON(t, env, http.MethodPost, "/api/projects", bearer, map[string]string{
		"title":       title,
		"description": "test project",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ProjectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestProjectHandler_CreateProject(t *testing.T) {
	env := setupAPITestEnv(t)
	bearer := registerUser(t, env, "Alice", "a@x.com")

	project := createProject(t, env, bearer, "P1")

	require.Equal(t, "P1", project.Title)
	require.Equal(t, "Alice", project.OwnerName)
	require.Equal(t, "a@x.com", project.OwnerEmail)
	require.Equal(t, 0, project.TotalTasks)
	require.Equal(t, 0, project.CompletedTasks)
	require.Equal(t, 0.0, project.ProgressPercentage)
	require.False(t, project.CreationDate.IsZero())
	require.False(t, project.LastModifiedDate.Before(project.CreationDate))
}

func TestProjectHandler_GetProject_OtherUserGets404(t *testing.T) {
	env := setupAPITestEnv(t)
	alice := registerUser(t, env, "Alice", "a@x.com")
	bob := registerUser(t, env, "Bob", "b@x.com")

	project := createProject(t, env, alice, "P1")

	// The owner sees it
	w := doAuthJSON(t, env, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Bob gets the same answer as for a project that does not exist
	w = doAuthJSON(t, env, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), bob, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doAuthJSON(t, env, http.MethodGet, "/api/projects/99999", alice, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_UpdateProject(t *testing.T) {
	env := setupAPITestEnv(t)
	alice := registerUser(t, env, "Alice", "a@x.com")
	bob := registerUser(t, env, "Bob", "b@x.com")

	project := createProject(t, env, alice, "P1")

	w := doAuthJSON(t, env, http.MethodPut, fmt.Sprintf("/api/projects/%d", project.ID), alice, map[string]string{
		"title":       "P1 renamed",
		"description": "updated",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated dto.ProjectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "P1 renamed", updated.Title)
	require.Equal(t, "updated", updated.Description)

	// Renaming a project does not count as task activity
	require.WithinDuration(t, project.LastModifiedDate, updated.LastModifiedDate, time.Millisecond)

	// Not reachable for another user
	w = doAuthJSON(t, env, http.MethodPut, fmt.Sprintf("/api/projects/%d", project.ID), bob, map[string]string{
		"title": "hijacked",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_ListProjects_ScopedToOwner(t *testing.T) {
	env := setupAPITestEnv(t)
	alice := registerUser(t, env, "Alice", "a@x.com")
	bob := registerUser(t, env, "Bob", "b@x.com")

	createProject(t, env, alice, "Alice 1")
	createProject(t, env, alice, "Alice 2")
	createProject(t, env, bob, "Bob 1")

	w := doAuthJSON(t, env, http.MethodGet, "/api/projects/all", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []dto.ProjectSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		require.NotEqual(t, "Bob 1", s.Title)
	}
}

func TestProjectHandler_ListProjectsPage(t *testing.T) {
	env := setupAPITestEnv(t)
	alice := registerUser(t, env, "Alice", "a@x.com")

	for i := 1; i <= 8; i++ {
		createProject(t, env, alice, fmt.Sprintf("P%d", i))
		time.Sleep(2 * time.Millisecond)
	}

	w := doAuthJSON(t, env, http.MethodGet, "/api/projects?page=1&size=6", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page dto.ProjectPageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Equal(t, 1, page.Page)
	require.Equal(t, 6, page.PageSize)
	require.Equal(t, int64(8), page.TotalCount)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Projects, 6)

	// Most recently modified first
	require.Equal(t, "P8", page.Projects[0].Title)

	w = doAuthJSON(t, env, http.MethodGet, "/api/projects?page=2&size=6", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Projects, 2)
	require.Equal(t, "P1", page.Projects[1].Title)
}

func TestProjectHandler_ListRecentProjects(t *testing.T) {
	env := setupAPITestEnv(t)
	alice := registerUser(t, env, "Alice", "a@x.com")

	fresh := createProject(t, env, alice, "Fresh")
	stale := createProject(t, env, alice, "Stale")

	// Age the second project beyond the trailing window
	old := time.Now().Add(-30 * 24 * time.Hour)
	require.NoError(t, env.db.Model(&models.Project{}).
		Where("id = ?", stale.ID).
		Update("last_modified_date", old).Error)

	w := doAuthJSON(t, env, http.MethodGet, "/api/projects/recent", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []dto.ProjectSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	require.Equal(t, fresh.ID, summaries[0].ID)
}

func TestProjectHandler_DeleteProject_CascadesTasks(t *testing.T) {
	env := setupAPITestEnv(t)
	alice := registerUser(t, env, "Alice", "a@x.com")
	bob := registerUser(t, env, "Bob", "b@x.com")

	project := createProject(t, env, alice, "P1")

	w := doAuthJSON(t, env, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", project.ID), alice, map[string]string{
		"title": "T1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Someone else cannot delete it
	w = doAuthJSON(t, env, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), bob, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doAuthJSON(t, env, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), alice, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var projectCount, taskCount int64
	require.NoError(t, env.db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&projectCount).Error)
	require.NoError(t, env.db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&taskCount).Error)
	require.Equal(t, int64(0), projectCount)
	require.Equal(t, int64(0), taskCount)
}
