package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"arena/core/internal/model"
	"arena/core/internal/repository"
)

type CreateCompetitionInput struct {
	Name       string
	Type       model.CompetitionType
	Discipline model.Discipline
	StartDate  time.Time
	EndDate    time.Time
	RegionID   *int
}

type CompetitionService interface {
	CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*model.Competition, error)
	FindCompetition(ctx context.Context, id uuid.UUID) (*model.Competition, error)
	ListCompetitions(ctx context.Context) ([]model.Competition, error)
}

type competitionService struct {
	store repository.Store
}

func NewCompetitionService(store repository.Store) CompetitionService {
	return &competitionService{store: store}
}

func (s *competitionService) CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*model.Competition, error) {
	name := strings.TrimSpace(input.Name)
	switch {
	case name == "":
		return nil, Validation("competition name is required")
	case !input.Type.Valid():
		return nil, Validation("unknown competition type %q", input.Type)
	case !input.Discipline.Valid():
		return nil, Validation("unknown discipline %q", input.Discipline)
	case input.StartDate.IsZero() || input.EndDate.IsZero():
		return nil, Validation("start and end dates are required")
	case input.EndDate.Before(input.StartDate):
		return nil, Validation("end date is before start date")
	}

	comp := &model.Competition{
		Name:       name,
		Type:       input.Type,
		Discipline: input.Discipline,
		StartDate:  input.StartDate.UTC(),
		EndDate:    input.EndDate.UTC(),
		RegionID:   input.RegionID,
	}
	if err := s.store.Competitions().Create(ctx, comp); err != nil {
		return nil, Internal("create competition", err)
	}
	return comp, nil
}

func (s *competitionService) FindCompetition(ctx context.Context, id uuid.UUID) (*model.Competition, error) {
	comp, err := s.store.Competitions().GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCompetitionNotFound
		}
		return nil, Internal("find competition", err)
	}
	return comp, nil
}

func (s *competitionService) ListCompetitions(ctx context.Context) ([]model.Competition, error) {
	list, err := s.store.Competitions().List(ctx)
	if err != nil {
		return nil, Internal("list competitions", err)
	}
	return list, nil
}

var _ CompetitionService = (*competitionService)(nil)
