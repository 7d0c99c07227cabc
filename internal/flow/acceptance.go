// Package flow drives the invite acceptance lifecycle as an explicit state
// machine: checking-auth, verifying-invite, ready, accepting, and the two
// terminal shapes (accepted, failed). Invalid combinations of the old
// loading/checking/error flags are unrepresentable here.
package flow

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"chordfund.app/api-server/internal/service"
)

const (
	MsgInvalidLink   = "Invalid invite link"
	MsgInvalidInvite = "Invalid or expired invite"
	MsgAcceptFailed  = "Failed to accept invite"
)

type FailureKind string

const (
	FailInvalidLink FailureKind = "invalid_link"
	FailNotFound    FailureKind = "invite_not_found"
	FailPersistence FailureKind = "persistence"
)

// State is the tagged union of acceptance flow states.
type State interface {
	acceptanceState()
}

type CheckingAuth struct{}

// AwaitingLogin suspends the flow until the identity provider reports an
// authenticated session. The provider owns the timeout contract.
type AwaitingLogin struct {
	LoginURL string
}

type VerifyingInvite struct{}

type Ready struct {
	Details service.InviteDetails
}

type Accepting struct{}

type Accepted struct {
	RedirectURL string
}

type Failed struct {
	Kind      FailureKind
	Message   string
	Retryable bool
}

func (CheckingAuth) acceptanceState()    {}
func (AwaitingLogin) acceptanceState()   {}
func (VerifyingInvite) acceptanceState() {}
func (Ready) acceptanceState()           {}
func (Accepting) acceptanceState()       {}
func (Accepted) acceptanceState()        {}
func (Failed) acceptanceState()          {}

// Acceptance is one visitor's pass through the invite link. Link parameters
// arrive raw from the query string; sessionID is zero until the identity
// provider has reported back.
type Acceptance struct {
	identity service.IdentityProvider
	invites  service.InviteService
	baseURL  string

	token      string
	projectID  string
	sessionID  int64
	hasSession bool

	state State
}

type Params struct {
	Token      string
	ProjectID  string
	SessionID  int64
	HasSession bool
}

func NewAcceptance(identity service.IdentityProvider, invites service.InviteService, baseURL string, params Params) *Acceptance {
	return &Acceptance{
		identity:   identity,
		invites:    invites,
		baseURL:    baseURL,
		token:      params.Token,
		projectID:  params.ProjectID,
		sessionID:  params.SessionID,
		hasSession: params.HasSession,
		state:      CheckingAuth{},
	}
}

// State reports where the flow can resume from.
func (a *Acceptance) State() State {
	return a.state
}

// Begin validates the link, authenticates the visitor, and verifies the
// invite, stopping at Ready. Link validation runs before any identity
// provider contact so malformed links fail fast without forcing a login.
// The returned error is non-nil only when ctx is cancelled.
func (a *Acceptance) Begin(ctx context.Context) (State, error) {
	if a.token == "" || a.projectID == "" {
		return a.fail(Failed{Kind: FailInvalidLink, Message: MsgInvalidLink}), nil
	}
	if _, err := strconv.ParseInt(a.projectID, 10, 64); err != nil {
		return a.fail(Failed{Kind: FailInvalidLink, Message: MsgInvalidLink}), nil
	}

	a.state = CheckingAuth{}
	if err := ctx.Err(); err != nil {
		return a.state, err
	}

	if !a.hasSession {
		return a.awaitLogin()
	}
	if _, err := a.identity.Identify(ctx, a.sessionID); err != nil {
		if errors.Is(err, service.ErrAuthRequired) {
			return a.awaitLogin()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return a.state, ctxErr
		}
		return a.fail(Failed{Kind: FailPersistence, Message: MsgInvalidInvite}), nil
	}

	a.state = VerifyingInvite{}
	if err := ctx.Err(); err != nil {
		return a.state, err
	}

	details, err := a.invites.Verify(ctx, a.token)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return a.state, ctxErr
		}
		if errors.Is(err, service.ErrInviteNotFound) {
			return a.fail(Failed{Kind: FailNotFound, Message: MsgInvalidInvite}), nil
		}
		return a.fail(Failed{Kind: FailPersistence, Message: MsgInvalidInvite}), nil
	}

	a.state = Ready{Details: *details}
	return a.state, nil
}

// Confirm finalizes acceptance from Ready. A missing wallet re-triggers the
// login interaction instead of failing; a persistence failure leaves the
// flow in Ready so the confirmation can be retried.
func (a *Acceptance) Confirm(ctx context.Context, walletAddress string) (State, error) {
	ready, ok := a.state.(Ready)
	if !ok {
		return a.state, nil
	}
	if err := ctx.Err(); err != nil {
		return a.state, err
	}

	wallet := walletAddress
	if wallet == "" {
		identity, err := a.identity.Identify(ctx, a.sessionID)
		if err != nil {
			if errors.Is(err, service.ErrAuthRequired) {
				return a.awaitLogin()
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return a.state, ctxErr
			}
			return Failed{Kind: FailPersistence, Message: MsgAcceptFailed, Retryable: true}, nil
		}
		wallet = identity.WalletAddress
	}
	if wallet == "" {
		return a.awaitLogin()
	}

	a.state = Accepting{}
	if err := ctx.Err(); err != nil {
		return a.state, err
	}

	if _, err := a.invites.Accept(ctx, a.token, wallet); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return a.state, ctxErr
		}
		if errors.Is(err, service.ErrInviteNotFound) {
			return a.fail(Failed{Kind: FailNotFound, Message: MsgInvalidInvite}), nil
		}
		a.state = ready
		return Failed{Kind: FailPersistence, Message: MsgAcceptFailed, Retryable: true}, nil
	}

	a.state = Accepted{
		RedirectURL: fmt.Sprintf("%s/projects/%s", a.baseURL, ready.Details.ProjectSlug),
	}
	return a.state, nil
}

func (a *Acceptance) awaitLogin() (State, error) {
	loginURL, err := a.identity.LoginURL(a.token)
	if err != nil {
		return a.fail(Failed{Kind: FailPersistence, Message: MsgInvalidInvite}), nil
	}
	a.state = AwaitingLogin{LoginURL: loginURL}
	return a.state, nil
}

func (a *Acceptance) fail(f Failed) State {
	a.state = f
	return a.state
}
