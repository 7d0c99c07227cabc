package store

import (
	"context"
	"errors"

	"chordfund.app/api-server/core/db/sqlc"
	"chordfund.app/api-server/internal/model"
	"github.com/jackc/pgx/v5"
)

type teamMemberStore struct {
	queries *sqlc.Queries
}

func newTeamMemberStore(queries *sqlc.Queries) TeamMemberStore {
	return &teamMemberStore{queries: queries}
}

func (s *teamMemberStore) GetByProjectAndEmail(ctx context.Context, projectID int64, email string) (*model.TeamMember, error) {
	row, err := s.queries.GetTeamMemberByProjectAndEmail(ctx, sqlc.GetTeamMemberByProjectAndEmailParams{
		ProjectID: projectID,
		Email:     email,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toTeamMemberModel(row), nil
}

func (s *teamMemberStore) GetByInviteToken(ctx context.Context, token string) (*model.TeamMember, error) {
	row, err := s.queries.GetTeamMemberByInviteToken(ctx, &token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toTeamMemberModel(row), nil
}

func (s *teamMemberStore) Create(ctx context.Context, member *model.TeamMember) error {
	row, err := s.queries.CreateTeamMember(ctx, sqlc.CreateTeamMemberParams{
		ID:        member.ID,
		ProjectID: member.ProjectID,
		Email:     member.Email,
		Name:      member.Name,
		Role:      member.Role,
	})
	if err != nil {
		return err
	}
	*member = *toTeamMemberModel(row)
	return nil
}

func (s *teamMemberStore) SetInviteToken(ctx context.Context, projectID int64, email, token string) (*model.TeamMember, error) {
	row, err := s.queries.SetTeamMemberInviteToken(ctx, sqlc.SetTeamMemberInviteTokenParams{
		ProjectID:   projectID,
		Email:       email,
		InviteToken: &token,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toTeamMemberModel(row), nil
}

func (s *teamMemberStore) Accept(ctx context.Context, token, walletAddress string) (*model.TeamMember, error) {
	row, err := s.queries.AcceptTeamMemberInvite(ctx, sqlc.AcceptTeamMemberInviteParams{
		InviteToken:   &token,
		WalletAddress: &walletAddress,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toTeamMemberModel(row), nil
}

func (s *teamMemberStore) ListByProject(ctx context.Context, projectID int64) ([]model.TeamMember, error) {
	rows, err := s.queries.ListTeamMembersByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toTeamMemberModels(rows), nil
}

func toTeamMemberModel(row sqlc.TeamMember) *model.TeamMember {
	return &model.TeamMember{
		ID:            row.ID,
		ProjectID:     row.ProjectID,
		Email:         row.Email,
		Name:          row.Name,
		Role:          row.Role,
		InviteToken:   row.InviteToken,
		Status:        model.InviteStatus(row.Status),
		WalletAddress: row.WalletAddress,
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}

func toTeamMemberModels(rows []sqlc.TeamMember) []model.TeamMember {
	result := make([]model.TeamMember, len(rows))
	for i, row := range rows {
		result[i] = *toTeamMemberModel(row)
	}
	return result
}
