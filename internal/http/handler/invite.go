package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"chordfund.app/api-server/internal/flow"
	"chordfund.app/api-server/internal/http/dto"
	"chordfund.app/api-server/internal/mail"
	"chordfund.app/api-server/internal/service"
	"github.com/gin-gonic/gin"
)

type InviteHandler struct {
	invites  service.InviteService
	identity service.IdentityProvider
	baseURL  string
}

func NewInviteHandler(invites service.InviteService, identity service.IdentityProvider, baseURL string) *InviteHandler {
	return &InviteHandler{
		invites:  invites,
		identity: identity,
		baseURL:  baseURL,
	}
}

// Send dispatches (or re-dispatches) the invite email for an existing team
// member. The token is committed before any delivery attempt, so a failed
// delivery can always be retried against the same link.
func (h *InviteHandler) Send(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SendInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if req.Email == "" || req.Name == "" || req.ProjectID == "" || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	projectID, err := strconv.ParseInt(req.ProjectID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	err = h.invites.Send(ctx, service.SendInviteParams{
		ProjectID: projectID,
		Email:     req.Email,
		Name:      req.Name,
		Role:      req.Role,
	})
	if err != nil {
		if errors.Is(err, service.ErrInviteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No team member found for given email and projectId"})
			return
		}
		var deliveryErr *mail.DeliveryError
		if errors.As(err, &deliveryErr) {
			slog.ErrorContext(ctx, "invite delivery failed",
				"status", deliveryErr.StatusCode,
				"project_id", projectID,
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": deliveryErr.Payload})
			return
		}
		slog.ErrorContext(ctx, "failed to send invite", "error", err, "project_id", projectID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Verify backs the acceptance page: it runs the flow up to Ready and
// projects the invite details, or reports why it cannot proceed.
func (h *InviteHandler) Verify(c *gin.Context) {
	ctx := c.Request.Context()

	f := h.newFlow(c)
	state, err := f.Begin(ctx)
	if err != nil {
		// Client went away mid-verification; nothing to report.
		c.Abort()
		return
	}

	switch s := state.(type) {
	case flow.Ready:
		c.JSON(http.StatusOK, dto.ToInviteDetailsResponse(&s.Details))
	case flow.AwaitingLogin:
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "not authenticated",
			"login_url": s.LoginURL,
		})
	case flow.Failed:
		c.JSON(failureStatus(s), gin.H{"error": s.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": flow.MsgInvalidInvite})
	}
}

// Accept confirms the invite for the authenticated visitor, binding the
// wallet address and returning the project redirect.
func (h *InviteHandler) Accept(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": flow.MsgInvalidLink})
		return
	}

	sessionID, sessionErr := sessionIDFromCookie(c)
	f := flow.NewAcceptance(h.identity, h.invites, h.baseURL, flow.Params{
		Token:      req.Token,
		ProjectID:  req.ProjectID,
		SessionID:  sessionID,
		HasSession: sessionErr == nil,
	})

	state, err := f.Begin(ctx)
	if err != nil {
		c.Abort()
		return
	}
	if _, ok := state.(flow.Ready); ok {
		state, err = f.Confirm(ctx, req.WalletAddress)
		if err != nil {
			c.Abort()
			return
		}
	}

	switch s := state.(type) {
	case flow.Accepted:
		c.JSON(http.StatusOK, dto.AcceptInviteResponse{RedirectURL: s.RedirectURL})
	case flow.AwaitingLogin:
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "not authenticated",
			"login_url": s.LoginURL,
		})
	case flow.Failed:
		c.JSON(failureStatus(s), gin.H{"error": s.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": flow.MsgAcceptFailed})
	}
}

func (h *InviteHandler) newFlow(c *gin.Context) *flow.Acceptance {
	sessionID, err := sessionIDFromCookie(c)
	return flow.NewAcceptance(h.identity, h.invites, h.baseURL, flow.Params{
		Token:      c.Query("token"),
		ProjectID:  c.Query("project_id"),
		SessionID:  sessionID,
		HasSession: err == nil,
	})
}

func failureStatus(f flow.Failed) int {
	switch f.Kind {
	case flow.FailInvalidLink:
		return http.StatusBadRequest
	case flow.FailNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
