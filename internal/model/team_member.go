package model

import "time"

// InviteStatus tracks the forward-only invite lifecycle of a team member.
type InviteStatus string

const (
	InviteStatusNotInvited InviteStatus = "not_invited"
	InviteStatusInvited    InviteStatus = "invited"
	InviteStatusAccepted   InviteStatus = "accepted"
)

// TeamMember is a person attached to a project roster. (project_id, email)
// is unique; the invite token is minted lazily on first dispatch and never
// regenerated.
type TeamMember struct {
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Email         string       `json:"email"`
	Name          string       `json:"name"`
	Role          string       `json:"role"`
	Status        InviteStatus `json:"status"`
	InviteToken   *string      `json:"invite_token,omitempty"`
	WalletAddress *string      `json:"wallet_address,omitempty"`
	ID            int64        `json:"id"`
	ProjectID     int64        `json:"project_id"`
}
