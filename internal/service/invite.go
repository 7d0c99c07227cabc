package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"chordfund.app/api-server/internal/mail"
	"chordfund.app/api-server/internal/model"
	"chordfund.app/api-server/internal/store"
	"github.com/google/uuid"
)

var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrInviteNotFound = errors.New("no team member found for given email and projectId")
)

const inviteSubject = "You've been invited to join a project on Chordfund"

// InviteLink is the result of token issuance: the credential and the
// ready-to-send absolute URL.
type InviteLink struct {
	Member *model.TeamMember
	Token  string
	URL    string
}

// InviteDetails is the minimal display payload for the acceptance page.
type InviteDetails struct {
	ProjectName string
	ProjectSlug string
	Role        string
	InviterName string
	ProjectID   int64
}

type SendInviteParams struct {
	Email     string
	Name      string
	Role      string
	ProjectID int64
}

type InviteService interface {
	// EnsureInvite guarantees an invite token exists for the team member
	// identified by (projectID, email) and returns the acceptance link.
	// Issuance is idempotent: an existing token is reused without a write.
	EnsureInvite(ctx context.Context, projectID int64, email string) (*InviteLink, error)
	// Send ensures the token and dispatches the invite email. Sending is
	// not idempotent; each call delivers one email.
	Send(ctx context.Context, params SendInviteParams) error
	Verify(ctx context.Context, token string) (*InviteDetails, error)
	Accept(ctx context.Context, token, walletAddress string) (*model.TeamMember, error)
}

type inviteService struct {
	members  store.TeamMemberStore
	projects store.ProjectStore
	users    store.UserStore
	mailer   mail.Mailer
	baseURL  string
	from     string
}

func NewInviteService(
	members store.TeamMemberStore,
	projects store.ProjectStore,
	users store.UserStore,
	mailer mail.Mailer,
	baseURL string,
	from string,
) InviteService {
	return &inviteService{
		members:  members,
		projects: projects,
		users:    users,
		mailer:   mailer,
		baseURL:  baseURL,
		from:     from,
	}
}

func (s *inviteService) EnsureInvite(ctx context.Context, projectID int64, email string) (*InviteLink, error) {
	if projectID == 0 || email == "" {
		return nil, ErrMissingFields
	}

	member, err := s.members.GetByProjectAndEmail(ctx, projectID, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("looking up team member: %w", err)
	}

	if member.InviteToken != nil {
		return s.inviteLink(member, *member.InviteToken), nil
	}

	token := uuid.NewString()
	updated, err := s.members.SetInviteToken(ctx, projectID, email, token)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("persisting invite token: %w", err)
		}
		// The conditional write matched nothing: a concurrent issuance won.
		// Use the winner's token so every dispatched link stays valid.
		updated, err = s.members.GetByProjectAndEmail(ctx, projectID, email)
		if err != nil {
			return nil, fmt.Errorf("re-reading team member after token conflict: %w", err)
		}
		if updated.InviteToken == nil {
			return nil, fmt.Errorf("invite token write did not apply for project %d", projectID)
		}
		token = *updated.InviteToken
	}

	slog.InfoContext(ctx, "invite token issued",
		"project_id", projectID,
		"member_id", updated.ID,
	)

	return s.inviteLink(updated, token), nil
}

func (s *inviteService) Send(ctx context.Context, params SendInviteParams) error {
	link, err := s.EnsureInvite(ctx, params.ProjectID, params.Email)
	if err != nil {
		return err
	}

	html, err := mail.RenderInvite(params.Name, params.Role, link.URL)
	if err != nil {
		return err
	}

	err = s.mailer.Send(ctx, mail.Message{
		From:    s.from,
		To:      params.Email,
		Subject: inviteSubject,
		HTML:    html,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to deliver invite email",
			"error", err,
			"project_id", params.ProjectID,
		)
		return err
	}

	slog.InfoContext(ctx, "invite email sent",
		"project_id", params.ProjectID,
		"role", params.Role,
	)
	return nil
}

func (s *inviteService) Verify(ctx context.Context, token string) (*InviteDetails, error) {
	if token == "" {
		return nil, ErrMissingFields
	}

	member, err := s.members.GetByInviteToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("looking up invite token: %w", err)
	}

	project, err := s.projects.GetByID(ctx, member.ProjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("looking up project: %w", err)
	}

	details := &InviteDetails{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		ProjectSlug: project.Slug,
		Role:        member.Role,
	}

	inviter, err := s.users.GetByID(ctx, project.CreatorUserID)
	if err == nil {
		details.InviterName = inviter.Name
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("looking up inviter: %w", err)
	}

	return details, nil
}

func (s *inviteService) Accept(ctx context.Context, token, walletAddress string) (*model.TeamMember, error) {
	if token == "" || walletAddress == "" {
		return nil, ErrMissingFields
	}

	member, err := s.members.Accept(ctx, token, walletAddress)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("accepting invite: %w", err)
	}

	slog.InfoContext(ctx, "invite accepted",
		"project_id", member.ProjectID,
		"member_id", member.ID,
	)

	return member, nil
}

func (s *inviteService) inviteLink(member *model.TeamMember, token string) *InviteLink {
	return &InviteLink{
		Member: member,
		Token:  token,
		URL:    fmt.Sprintf("%s/invite?token=%s&project_id=%d", s.baseURL, token, member.ProjectID),
	}
}
