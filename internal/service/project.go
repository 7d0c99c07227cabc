package service

import (
	"context"
	"errors"
	"fmt"

	"chordfund.app/api-server/common"
	"chordfund.app/api-server/common/id"
	"chordfund.app/api-server/internal/model"
	"chordfund.app/api-server/internal/store"
)

type ProjectService interface {
	Create(ctx context.Context, name string, slug *string, creatorUserID int64) (*model.Project, error)
	GetBySlug(ctx context.Context, slug string) (*model.Project, error)
	// AddMember puts a person on the roster in status not_invited; invite
	// dispatch happens separately through the invite service.
	AddMember(ctx context.Context, projectID int64, email, name, role string) (*model.TeamMember, error)
	ListMembers(ctx context.Context, projectID int64) ([]model.TeamMember, error)
}

type projectService struct {
	projects store.ProjectStore
	members  store.TeamMemberStore
}

func NewProjectService(projects store.ProjectStore, members store.TeamMemberStore) ProjectService {
	return &projectService{
		projects: projects,
		members:  members,
	}
}

func (s *projectService) Create(ctx context.Context, name string, slug *string, creatorUserID int64) (*model.Project, error) {
	finalSlug, err := s.ensureProjectSlug(ctx, name, slug)
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		ID:            id.New(),
		CreatorUserID: creatorUserID,
		Name:          name,
		Slug:          finalSlug,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return project, nil
}

func (s *projectService) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	return s.projects.GetBySlug(ctx, slug)
}

func (s *projectService) AddMember(ctx context.Context, projectID int64, email, name, role string) (*model.TeamMember, error) {
	if email == "" || name == "" || role == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("looking up project: %w", err)
	}

	member := &model.TeamMember{
		ID:        id.New(),
		ProjectID: projectID,
		Email:     email,
		Name:      name,
		Role:      role,
		Status:    model.InviteStatusNotInvited,
	}

	if err := s.members.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("creating team member: %w", err)
	}

	return member, nil
}

func (s *projectService) ListMembers(ctx context.Context, projectID int64) ([]model.TeamMember, error) {
	return s.members.ListByProject(ctx, projectID)
}

func (s *projectService) ensureProjectSlug(ctx context.Context, name string, slug *string) (string, error) {
	input := name
	if slug != nil && *slug != "" {
		input = *slug
	}

	base, err := common.Slugify(input, "project")
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	// Fast path
	if _, err := s.projects.GetBySlug(ctx, base); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return base, nil
		}
		return "", fmt.Errorf("checking slug availability: %w", err)
	}

	// Add numeric suffix until available
	for i := 1; i <= 20; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		_, err := s.projects.GetBySlug(ctx, candidate)
		if errors.Is(err, store.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slug availability: %w", err)
		}
	}

	return "", fmt.Errorf("unable to find available slug for %q", base)
}
