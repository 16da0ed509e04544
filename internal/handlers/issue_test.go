package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/issue-tracker-api/internal/dto"
	"github.com/yukikurage/issue-tracker-api/internal/models"
)

func TestIssueHandler_Create_Defaults(t *testing.T) {
	env := setupTestEnv(t)

	user := env.registerUser(t, "reporter", "supersecret")
	token := env.loginToken(t, "reporter", "supersecret")
	project := env.createProject(t, token, "P1")

	issue := env.createIssue(t, token, project.ID, map[string]any{"title": "Bug1"})
	require.Equal(t, models.IssueStatusOpen, issue.Status)
	require.Equal(t, models.IssuePriorityMedium, issue.Priority)
	require.Equal(t, user.ID, issue.ReporterID)
	require.Nil(t, issue.AssigneeID)
}

func TestIssueHandler_Create_MissingProject(t *testing.T) {
	env := setupTestEnv(t)

	env.registerUser(t, "reporter", "supersecret")
	token := env.loginToken(t, "reporter", "supersecret")

	w := env.do(t, http.MethodPost, "/projects/9999/issues", token, map[string]any{"title": "Bug"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestIssueHandler_Create_InvalidEnum(t *testing.T) {
	env := setupTestEnv(t)

	env.registerUser(t, "reporter", "supersecret")
	token := env.loginToken(t, "reporter", "supersecret")
	project := env.createProject(t, token, "P1")

	w := env.do(t, http.MethodPost, projectIssuesURL(project.ID), token, map[string]any{
		"title":  "Bug",
		"status": "reopened",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, projectIssuesURL(project.ID), token, map[string]any{
		"title":    "Bug",
		"priority": "urgent",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueHandler_Create_TitleUniquePerProject(t *testing.T) {
	env := setupTestEnv(t)

	env.registerUser(t, "reporter", "supersecret")
	token := env.loginToken(t, "reporter", "supersecret")
	p1 := env.createProject(t, token, "P1")
	p2 := env.createProject(t, token, "P2")

	env.createIssue(t, token, p1.ID, map[string]any{"title": "Crash on save"})

	w := env.do(t, http.MethodPost, projectIssuesURL(p1.ID), token, map[string]any{"title": "Crash on save"})
	require.Equal(t, http.StatusConflict, w.Code)

	// The same title in a different project is allowed.
	env.createIssue(t, token, p2.ID, map[string]any{"title": "Crash on save"})
}

func TestIssueHandler_List(t *testing.T) {
	env := setupTestEnv(t)

	env.registerUser(t, "reporter", "supersecret")
	token := env.loginToken(t, "reporter", "supersecret")
	project := env.createProject(t, token, "P1")
	env.createIssue(t, token, project.ID, map[string]any{"title": "Login broken", "priority": "high"})
	env.createIssue(t, token, project.ID, map[string]any{"title": "Slow login page"})
	env.createIssue(t, token, project.ID, map[string]any{"title": "Typo in footer", "status": "closed"})

	// Listing a project's issues requires a token.
	w := env.do(t, http.MethodGet, projectIssuesURL(project.ID), "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, projectIssuesURL(project.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var issues []dto.IssueDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issues))
	require.Len(t, issues, 3)

	w = env.do(t, http.MethodGet, projectIssuesURL(project.ID)+"?q=LOGIN", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issues))
	require.Len(t, issues, 2)

	w = env.do(t, http.MethodGet, projectIssuesURL(project.ID)+"?sort_by=priority&sort_dir=desc&limit=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issues))
	require.Len(t, issues, 1)

	w = env.do(t, http.MethodGet, projectIssuesURL(project.ID)+"?limit=201", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, projectIssuesURL(project.ID)+"?sort_by=reporter_id", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/projects/9999/issues", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestIssueHandler_Update_ReporterOnly(t *testing.T) {
	env := setupTestEnv(t)

	env.registerUser(t, "reporter", "password1")
	env.registerUser(t, "assignee", "password2")
	reporterToken := env.loginToken(t, "reporter", "password1")
	otherToken := env.loginToken(t, "assignee", "password2")

	assignee := env.registerUser(t, "worker", "password3")
	project := env.createProject(t, reporterToken, "P1")
	issue := env.createIssue(t, reporterToken, project.ID, map[string]any{
		"title":       "Bug1",
		"assignee_id": assignee.ID,
	})

	url := fmt.Sprintf("/issues/%d", issue.ID)

	// Assignee status grants no privilege; only the reporter may modify.
	w := env.do(t, http.MethodPatch, url, otherToken, map[string]any{"status": "closed"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPatch, url, reporterToken, map[string]any{"status": "closed"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated dto.IssueDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, models.IssueStatusClosed, updated.Status)
	// Unprovided fields keep their values.
	require.Equal(t, "Bug1", updated.Title)
	require.NotNil(t, updated.AssigneeID)
}

func TestIssueHandler_Update_TitleConflict(t *testing.T) {
	env := setupTestEnv(t)

	env.registerUser(t, "reporter", "supersecret")
	token := env.loginToken(t, "reporter", "supersecret")
	project := env.createProject(t, token, "P1")
	env.createIssue(t, token, project.ID, map[string]any{"title": "First"})
	second := env.createIssue(t, token, project.ID, map[string]any{"title": "Second"})

	url := fmt.Sprintf("/issues/%d", second.ID)

	// Renaming onto an existing title in the same project conflicts.
	w := env.do(t, http.MethodPatch, url, token, map[string]any{"title": "First"})
	require.Equal(t, http.StatusConflict, w.Code)

	// Re-sending the current title is not a conflict.
	w = env.do(t, http.MethodPatch, url, token, map[string]any{"title": "Second"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestIssueHandler_Delete(t *testing.T) {
	env := setupTestEnv(t)

	env.registerUser(t, "reporter", "password1")
	env.registerUser(t, "other", "password2")
	reporterToken := env.loginToken(t, "reporter", "password1")
	otherToken := env.loginToken(t, "other", "password2")

	project := env.createProject(t, reporterToken, "P1")
	issue := env.createIssue(t, reporterToken, project.ID, map[string]any{"title": "Bug1"})
	comment := env.createComment(t, reporterToken, issue.ID, "to be cascaded")

	url := fmt.Sprintf("/issues/%d", issue.ID)

	w := env.do(t, http.MethodDelete, url, otherToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, url, reporterToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, url, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Comments go with the issue.
	w = env.do(t, http.MethodGet, fmt.Sprintf("/comments/%d", comment.ID), "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// The register → project → issue → patch → delete flow end to end.
func TestIssueLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	env.registerUser(t, "alice", "pw1")
	token := env.loginToken(t, "alice", "pw1")

	project := env.createProject(t, token, "P1")
	issue := env.createIssue(t, token, project.ID, map[string]any{"title": "Bug1"})
	require.Equal(t, models.IssueStatusOpen, issue.Status)
	require.Equal(t, models.IssuePriorityMedium, issue.Priority)

	url := fmt.Sprintf("/issues/%d", issue.ID)

	w := env.do(t, http.MethodPatch, url, token, map[string]any{"status": "closed"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, url, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.IssueDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, models.IssueStatusClosed, got.Status)

	w = env.do(t, http.MethodDelete, url, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, url, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
