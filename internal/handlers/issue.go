package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/issue-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/issue-tracker-api/internal/errors"
	"github.com/yukikurage/issue-tracker-api/internal/middleware"
	"github.com/yukikurage/issue-tracker-api/internal/models"
	"github.com/yukikurage/issue-tracker-api/internal/query"
	"github.com/yukikurage/issue-tracker-api/internal/services"
)

var issueListSpec = query.Spec{
	MaxLimit:     200,
	SearchColumn: "title",
	SortColumns: map[string]string{
		"id":         "id",
		"title":      "title",
		"status":     "status",
		"priority":   "priority",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
}

// IssueHandler serves issue CRUD.
type IssueHandler struct {
	issueService *services.IssueService
}

// NewIssueHandler creates a new IssueHandler.
func NewIssueHandler(issueService *services.IssueService) *IssueHandler {
	return &IssueHandler{
		issueService: issueService,
	}
}

// Create files an issue under a project, reported by the current user.
func (h *IssueHandler) Create(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateIssueRequest struct {
		Title      string  `json:"title" binding:"required,max=100"`
		Desc       string  `json:"desc"`
		Status     string  `json:"status" binding:"omitempty,oneof=open closed"`
		Priority   string  `json:"priority" binding:"omitempty,oneof=low medium high"`
		AssigneeID *uint64 `json:"assignee_id"`
	}

	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	issue, err := h.issueService.CreateIssue(projectID, services.CreateIssueInput{
		Title:      req.Title,
		Desc:       req.Desc,
		Status:     models.IssueStatus(req.Status),
		Priority:   models.IssuePriority(req.Priority),
		AssigneeID: req.AssigneeID,
	}, user.ID)
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToIssueDTO(*issue))
}

// ListByProject returns a project's issues matching the list parameters.
func (h *IssueHandler) ListByProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	params, err := query.Parse(c, issueListSpec)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	issues, err := h.issueService.ListIssues(projectID, params)
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueListDTO(issues))
}

// Get returns one issue by ID.
func (h *IssueHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	issue, err := h.issueService.GetIssue(id)
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueDTO(*issue))
}

// Update applies a partial update to an issue.
func (h *IssueHandler) Update(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateIssueRequest struct {
		Title      *string `json:"title" binding:"omitempty,max=100"`
		Desc       *string `json:"desc"`
		Status     *string `json:"status" binding:"omitempty,oneof=open closed"`
		Priority   *string `json:"priority" binding:"omitempty,oneof=low medium high"`
		AssigneeID *uint64 `json:"assignee_id"`
	}

	var req UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateIssueInput{
		Title:      req.Title,
		Desc:       req.Desc,
		AssigneeID: req.AssigneeID,
	}
	if req.Status != nil {
		status := models.IssueStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := models.IssuePriority(*req.Priority)
		input.Priority = &priority
	}

	issue, err := h.issueService.UpdateIssue(id, input, user.ID)
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueDTO(*issue))
}

// Delete removes an issue and its comments.
func (h *IssueHandler) Delete(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.issueService.DeleteIssue(id, user.ID); err != nil {
		respondIssueError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondIssueError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrIssueNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrIssueTitleTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotReporter):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
