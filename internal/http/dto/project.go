package dto

import (
	"strconv"
	"time"

	"chordfund.app/api-server/internal/model"
)

type CreateProjectRequest struct {
	Slug *string `json:"slug,omitempty" binding:"omitempty,min=1,max=255"`
	Name string  `json:"name" binding:"required,min=1,max=255"`
}

type ProjectResponse struct {
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	ID            int64     `json:"id,string"`
	CreatorUserID int64     `json:"creator_user_id,string"`
}

func ToProjectResponse(project *model.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:            project.ID,
		Name:          project.Name,
		Slug:          project.Slug,
		CreatorUserID: project.CreatorUserID,
		CreatedAt:     project.CreatedAt,
		UpdatedAt:     project.UpdatedAt,
	}
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Role  string `json:"role" binding:"required,min=1,max=64"`
}

type TeamMemberResponse struct {
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	Status        string  `json:"status"`
	WalletAddress *string `json:"wallet_address,omitempty"`
	ID            string  `json:"id"`
	ProjectID     string  `json:"project_id"`
}

func ToTeamMemberResponse(member *model.TeamMember) *TeamMemberResponse {
	return &TeamMemberResponse{
		ID:            strconv.FormatInt(member.ID, 10),
		ProjectID:     strconv.FormatInt(member.ProjectID, 10),
		Email:         member.Email,
		Name:          member.Name,
		Role:          member.Role,
		Status:        string(member.Status),
		WalletAddress: member.WalletAddress,
	}
}
