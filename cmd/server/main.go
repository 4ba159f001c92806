package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/mtakahara/project-task-api/internal/config"
	"github.com/mtakahara/project-task-api/internal/database"
	"github.com/mtakahara/project-task-api/internal/handlers"
	"github.com/mtakahara/project-task-api/internal/middleware"
	"github.com/mtakahara/project-task-api/internal/repository"
	"github.com/mtakahara/project-task-api/internal/services"
	"github.com/mtakahara/project-task-api/internal/token"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Token service: signing secret and TTL come from configuration,
	// loaded once at startup
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, tokens)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService, authService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Task API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.RequireAuth(tokens, userRepo), authHandler.GetCurrentUser)
		}

		// Project routes (protected)
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

			// Task routes, nested under the owning project
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
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
