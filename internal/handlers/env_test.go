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
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/issue-tracker-api/internal/auth"
	"github.com/yukikurage/issue-tracker-api/internal/dto"
	"github.com/yukikurage/issue-tracker-api/internal/middleware"
	"github.com/yukikurage/issue-tracker-api/internal/models"
	"github.com/yukikurage/issue-tracker-api/internal/repository"
	"github.com/yukikurage/issue-tracker-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	tokens      *auth.TokenService
	authService *services.AuthService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Issue{},
		&models.Comment{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	tokens := auth.NewTokenService("test-secret", jwt.SigningMethodHS256, time.Hour)
	authService := services.NewAuthService(userRepo, tokens)
	projectService := services.NewProjectService(projectRepo)
	issueService := services.NewIssueService(issueRepo, projectRepo)
	commentService := services.NewCommentService(commentRepo, issueRepo)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(authService)
	projectHandler := NewProjectHandler(projectService)
	issueHandler := NewIssueHandler(issueService)
	commentHandler := NewCommentHandler(commentService)

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	r := gin.New()

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	users := r.Group("/users")
	users.Use(requireAuth)
	{
		users.GET("/me", userHandler.Me)
		users.POST("/me/change-password", userHandler.ChangePassword)
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
	}

	projects := r.Group("/projects")
	{
		projects.GET("", projectHandler.List)
		projects.GET("/:id", projectHandler.Get)
		projects.POST("", requireAuth, projectHandler.Create)
		projects.DELETE("/:id", requireAuth, projectHandler.Delete)
		projects.POST("/:id/issues", requireAuth, issueHandler.Create)
		projects.GET("/:id/issues", requireAuth, issueHandler.ListByProject)
	}

	issues := r.Group("/issues")
	{
		issues.GET("/:id", issueHandler.Get)
		issues.PATCH("/:id", requireAuth, issueHandler.Update)
		issues.DELETE("/:id", requireAuth, issueHandler.Delete)
		issues.POST("/:id/comments", requireAuth, commentHandler.Create)
		issues.GET("/:id/comments", requireAuth, commentHandler.ListByIssue)
	}

	comments := r.Group("/comments")
	{
		comments.GET("/:id", commentHandler.Get)
		comments.PATCH("/:id", requireAuth, commentHandler.Update)
		comments.DELETE("/:id", requireAuth, commentHandler.Delete)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:          db,
		router:      r,
		tokens:      tokens,
		authService: authService,
	}
}

func projectIssuesURL(projectID uint64) string {
	return fmt.Sprintf("/projects/%d/issues", projectID)
}

func issueCommentsURL(issueID uint64) string {
	return fmt.Sprintf("/issues/%d/comments", issueID)
}

func (env testEnv) do(t *testing.T, method, url, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env testEnv) registerUser(t *testing.T, username, password string) dto.UserDTO {
	t.Helper()

	w := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user
}

func (env testEnv) loginToken(t *testing.T, username, password string) string {
	t.Helper()

	w := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "bearer", resp.TokenType)
	return resp.AccessToken
}

func (env testEnv) createProject(t *testing.T, token, name string) dto.ProjectDTO {
	t.Helper()

	w := env.do(t, http.MethodPost, "/projects", token, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var project dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	return project
}

func (env testEnv) createIssue(t *testing.T, token string, projectID uint64, payload map[string]any) dto.IssueDTO {
	t.Helper()

	url := projectIssuesURL(projectID)
	w := env.do(t, http.MethodPost, url, token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var issue dto.IssueDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issue))
	return issue
}

func (env testEnv) createComment(t *testing.T, token string, issueID uint64, content string) dto.CommentDTO {
	t.Helper()

	w := env.do(t, http.MethodPost, issueCommentsURL(issueID), token, map[string]string{"content": content})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var comment dto.CommentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
	return comment
}
