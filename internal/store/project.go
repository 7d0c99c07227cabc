package store

import (
	"context"
	"errors"

	"chordfund.app/api-server/core/db/sqlc"
	"chordfund.app/api-server/internal/model"
	"github.com/jackc/pgx/v5"
)

type projectStore struct {
	queries *sqlc.Queries
}

func newProjectStore(queries *sqlc.Queries) ProjectStore {
	return &projectStore{queries: queries}
}

func (s *projectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	row, err := s.queries.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toProjectModel(row), nil
}

func (s *projectStore) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	row, err := s.queries.GetProjectBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toProjectModel(row), nil
}

func (s *projectStore) Create(ctx context.Context, project *model.Project) error {
	row, err := s.queries.CreateProject(ctx, sqlc.CreateProjectParams{
		ID:            project.ID,
		CreatorUserID: project.CreatorUserID,
		Name:          project.Name,
		Slug:          project.Slug,
	})
	if err != nil {
		return err
	}
	*project = *toProjectModel(row)
	return nil
}

func (s *projectStore) ListByCreator(ctx context.Context, userID int64) ([]model.Project, error) {
	rows, err := s.queries.ListProjectsByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Project, len(rows))
	for i, row := range rows {
		result[i] = *toProjectModel(row)
	}
	return result, nil
}

func toProjectModel(row sqlc.Project) *model.Project {
	return &model.Project{
		ID:            row.ID,
		CreatorUserID: row.CreatorUserID,
		Name:          row.Name,
		Slug:          row.Slug,
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}
