package service

import (
	"context"

	"github.com/google/uuid"

	"arena/core/internal/model"
	"arena/core/internal/repository"
)

type CreateApplicationInput struct {
	CompetitionID uuid.UUID
	TeamID        *uuid.UUID
	UserID        *uuid.UUID
}

type ApplicationService interface {
	CreateApplication(ctx context.Context, input CreateApplicationInput) (*model.Application, error)
	FindApplication(ctx context.Context, id uuid.UUID) (*model.Application, error)
	ListApplications(ctx context.Context) ([]model.Application, error)
	ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]model.Application, error)
	ListByRegion(ctx context.Context, regionID int) ([]model.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Application, error)
	UpdateApplication(ctx context.Context, id uuid.UUID, status model.ApplicationStatus, comment string) (*model.Application, error)
}

type applicationService struct {
	store repository.Store
	teams TeamService
}

func NewApplicationService(store repository.Store, teams TeamService) ApplicationService {
	return &applicationService{store: store, teams: teams}
}

// CreateApplication enters a team, or a single user when no team is given. Open and regional
// competitions approve entries immediately; federal ones wait for a moderator.
func (s *applicationService) CreateApplication(ctx context.Context, input CreateApplicationInput) (*model.Application, error) {
	comp, err := s.store.Competitions().GetByID(ctx, input.CompetitionID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCompetitionNotFound
		}
		return nil, Internal("find competition", err)
	}

	app := &model.Application{CompetitionID: comp.ID}
	switch {
	case input.TeamID != nil:
		if _, err := s.store.Teams().GetByID(ctx, *input.TeamID); err != nil {
			if isNotFound(err) {
				return nil, ErrTeamNotFound
			}
			return nil, Internal("find team", err)
		}
		app.TeamID = input.TeamID
	case input.UserID != nil:
		app.UserID = input.UserID
	default:
		return nil, ErrApplicationApplicant
	}

	app.Status = model.ApplicationStatusPending
	if comp.AutoApproves() {
		app.Status = model.ApplicationStatusApproved
	}
	if err := s.store.Applications().Create(ctx, app); err != nil {
		return nil, Internal("create application", err)
	}
	return app, nil
}

func (s *applicationService) FindApplication(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	app, err := s.store.Applications().GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, Internal("find application", err)
	}
	return app, nil
}

func (s *applicationService) ListApplications(ctx context.Context) ([]model.Application, error) {
	apps, err := s.store.Applications().List(ctx)
	if err != nil {
		return nil, Internal("list applications", err)
	}
	return apps, nil
}

// ListByRegion returns entries to competitions held in regionID.
func (s *applicationService) ListByRegion(ctx context.Context, regionID int) ([]model.Application, error) {
	apps, err := s.store.Applications().ListByRegion(ctx, regionID)
	if err != nil {
		return nil, Internal("list applications by region", err)
	}
	return apps, nil
}

// ListByUser returns the user's solo entries and the entries of every team they belong to.
// The team lookup goes through ListTeamsForUser, so a user without any team gets ErrNoTeamsForUser
// even when solo entries exist.
func (s *applicationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Application, error) {
	teams, err := s.teams.ListTeamsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	teamIDs := make([]uuid.UUID, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	apps, err := s.store.Applications().ListByUser(ctx, userID, teamIDs)
	if err != nil {
		return nil, Internal("list applications by user", err)
	}
	return apps, nil
}

func (s *applicationService) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]model.Application, error) {
	apps, err := s.store.Applications().ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, Internal("list applications", err)
	}
	return apps, nil
}

func (s *applicationService) UpdateApplication(ctx context.Context, id uuid.UUID, status model.ApplicationStatus, comment string) (*model.Application, error) {
	if !status.Valid() {
		return nil, Validation("unknown application status %q", status)
	}

	app, err := s.store.Applications().GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, Internal("find application", err)
	}
	app.Status = status
	app.Comment = comment
	if err := s.store.Applications().Update(ctx, app); err != nil {
		return nil, Internal("update application", err)
	}
	return app, nil
}

var _ ApplicationService = (*applicationService)(nil)
