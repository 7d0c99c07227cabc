package dto

import (
	"strconv"

	"chordfund.app/api-server/internal/service"
)

type SendInviteRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	ProjectID string `json:"projectId"`
	Role      string `json:"role"`
}

type InviteDetailsResponse struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
	Role        string `json:"role"`
	InviterName string `json:"inviter_name,omitempty"`
}

func ToInviteDetailsResponse(details *service.InviteDetails) *InviteDetailsResponse {
	return &InviteDetailsResponse{
		ProjectID:   strconv.FormatInt(details.ProjectID, 10),
		ProjectName: details.ProjectName,
		Role:        details.Role,
		InviterName: details.InviterName,
	}
}

type AcceptInviteRequest struct {
	Token         string `json:"token"`
	ProjectID     string `json:"project_id"`
	WalletAddress string `json:"wallet_address"`
}

type AcceptInviteResponse struct {
	RedirectURL string `json:"redirect_url"`
}
