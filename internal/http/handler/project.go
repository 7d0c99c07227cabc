package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"chordfund.app/api-server/internal/http/dto"
	"chordfund.app/api-server/internal/service"
	"chordfund.app/api-server/internal/store"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projects service.ProjectService
	auth     service.AuthService
}

func NewProjectHandler(projects service.ProjectService, auth service.AuthService) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		auth:     auth,
	}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.Create(ctx, req.Name, req.Slug, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create project", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) GetBySlug(c *gin.Context) {
	ctx := c.Request.Context()

	project, err := h.projects.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get project", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get project"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) AddMember(c *gin.Context) {
	ctx := c.Request.Context()

	if _, ok := h.requireUser(c); !ok {
		return
	}

	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.projects.AddMember(ctx, projectID, req.Email, req.Name, req.Role)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to add team member", "error", err, "project_id", projectID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add team member"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamMemberResponse(member))
}

func (h *ProjectHandler) ListMembers(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	members, err := h.projects.ListMembers(ctx, projectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list team members", "error", err, "project_id", projectID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list team members"})
		return
	}

	resp := make([]*dto.TeamMemberResponse, len(members))
	for i := range members {
		resp[i] = dto.ToTeamMemberResponse(&members[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProjectHandler) requireUser(c *gin.Context) (user *userIdentity, ok bool) {
	ctx := c.Request.Context()

	sessionID, err := sessionIDFromCookie(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return nil, false
	}

	u, err := h.auth.ValidateSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return nil, false
		}
		slog.ErrorContext(ctx, "failed to validate session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
		return nil, false
	}

	return &userIdentity{ID: u.ID, Email: u.Email}, true
}

type userIdentity struct {
	Email string
	ID    int64
}
