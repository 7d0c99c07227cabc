package store

import (
	"context"
	"errors"

	"chordfund.app/api-server/internal/model"
)

var ErrNotFound = errors.New("not found")

type TeamMemberStore interface {
	GetByProjectAndEmail(ctx context.Context, projectID int64, email string) (*model.TeamMember, error)
	GetByInviteToken(ctx context.Context, token string) (*model.TeamMember, error)
	Create(ctx context.Context, member *model.TeamMember) error
	// SetInviteToken only applies when the row has no token yet; it returns
	// ErrNotFound when the row is missing or another writer already won.
	SetInviteToken(ctx context.Context, projectID int64, email, token string) (*model.TeamMember, error)
	Accept(ctx context.Context, token, walletAddress string) (*model.TeamMember, error)
	ListByProject(ctx context.Context, projectID int64) ([]model.TeamMember, error)
}

type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	GetBySlug(ctx context.Context, slug string) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
	ListByCreator(ctx context.Context, userID int64) ([]model.Project, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpsertByWorkOSID(ctx context.Context, user *model.User) error
}

type SessionStore interface {
	GetByID(ctx context.Context, id int64) (*model.Session, error)
	GetValid(ctx context.Context, id int64) (*model.Session, error) // checks expiry
	Create(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context) error
}
