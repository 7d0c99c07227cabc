package service

import (
	"context"
	"errors"
)

var ErrAuthRequired = errors.New("authentication required")

// Identity is what the identity provider knows about the visiting user.
// WalletAddress is empty until a wallet has been bound.
type Identity struct {
	Email         string
	Name          string
	WalletAddress string
	UserID        int64
}

// IdentityProvider gates the acceptance flow: it reports the current
// identity or ErrAuthRequired, and supplies the login interaction URL.
type IdentityProvider interface {
	Identify(ctx context.Context, sessionID int64) (*Identity, error)
	LoginURL(state string) (string, error)
}

type sessionIdentityProvider struct {
	auth AuthService
}

func NewIdentityProvider(auth AuthService) IdentityProvider {
	return &sessionIdentityProvider{auth: auth}
}

func (p *sessionIdentityProvider) Identify(ctx context.Context, sessionID int64) (*Identity, error) {
	user, err := p.auth.ValidateSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrUserNotFound) {
			return nil, ErrAuthRequired
		}
		return nil, err
	}

	identity := &Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}
	if user.WalletAddress != nil {
		identity.WalletAddress = *user.WalletAddress
	}
	return identity, nil
}

func (p *sessionIdentityProvider) LoginURL(state string) (string, error) {
	return p.auth.GetAuthorizationURL(state)
}
