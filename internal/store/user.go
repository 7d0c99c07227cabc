package store

import (
	"context"
	"errors"

	"chordfund.app/api-server/core/db/sqlc"
	"chordfund.app/api-server/internal/model"
	"github.com/jackc/pgx/v5"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toUserModel(row), nil
}

func (s *userStore) UpsertByWorkOSID(ctx context.Context, user *model.User) error {
	row, err := s.queries.UpsertUserByWorkOSID(ctx, sqlc.UpsertUserByWorkOSIDParams{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		AvatarUrl:     user.AvatarURL,
		WalletAddress: user.WalletAddress,
		WorkosID:      user.WorkOSID,
	})
	if err != nil {
		return err
	}
	*user = *toUserModel(row)
	return nil
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		AvatarURL:     row.AvatarUrl,
		WalletAddress: row.WalletAddress,
		WorkOSID:      row.WorkosID,
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}
