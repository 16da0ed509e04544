package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/issue-tracker-api/internal/auth"
	"github.com/yukikurage/issue-tracker-api/internal/config"
	"github.com/yukikurage/issue-tracker-api/internal/database"
	"github.com/yukikurage/issue-tracker-api/internal/handlers"
	"github.com/yukikurage/issue-tracker-api/internal/middleware"
	"github.com/yukikurage/issue-tracker-api/internal/repository"
	"github.com/yukikurage/issue-tracker-api/internal/services"
)

func main() {
	// Load configuration; an empty signing secret aborts startup.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
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

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	tokens := auth.NewTokenService(cfg.SecretKey, cfg.SigningMethod, cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, tokens)
	projectService := services.NewProjectService(projectRepo)
	issueService := services.NewIssueService(issueRepo, projectRepo)
	commentService := services.NewCommentService(commentRepo, issueRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	issueHandler := handlers.NewIssueHandler(issueService)
	commentHandler := handlers.NewCommentHandler(commentService)

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Auth routes (public)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// User routes (protected)
	users := r.Group("/users")
	users.Use(requireAuth)
	{
		users.GET("/me", userHandler.Me)
		users.POST("/me/change-password", userHandler.ChangePassword)
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
	}

	// Project routes; listing and reading are public
	projects := r.Group("/projects")
	{
		projects.GET("", projectHandler.List)
		projects.GET("/:id", projectHandler.Get)
		projects.POST("", requireAuth, projectHandler.Create)
		projects.DELETE("/:id", requireAuth, projectHandler.Delete)
		projects.POST("/:id/issues", requireAuth, issueHandler.Create)
		projects.GET("/:id/issues", requireAuth, issueHandler.ListByProject)
	}

	// Issue routes; reading is public
	issues := r.Group("/issues")
	{
		issues.GET("/:id", issueHandler.Get)
		issues.PATCH("/:id", requireAuth, issueHandler.Update)
		issues.DELETE("/:id", requireAuth, issueHandler.Delete)
		issues.POST("/:id/comments", requireAuth, commentHandler.Create)
		issues.GET("/:id/comments", requireAuth, commentHandler.ListByIssue)
	}

	// Comment routes; reading is public
	comments := r.Group("/comments")
	{
		comments.GET("/:id", commentHandler.Get)
		comments.PATCH("/:id", requireAuth, commentHandler.Update)
		comments.DELETE("/:id", requireAuth, commentHandler.Delete)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
