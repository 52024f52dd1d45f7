package repository

import (
	"context"

	"github.com/google/uuid"

	"arena/core/internal/model"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	// GetByID and the List methods load Competition and Team alongside each application.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error)
	List(ctx context.Context) ([]model.Application, error)
	ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]model.Application, error)
	ListByRegion(ctx context.Context, regionID int) ([]model.Application, error)
	// ListByUser returns solo entries of userID together with entries of any team in teamIDs.
	ListByUser(ctx context.Context, userID uuid.UUID, teamIDs []uuid.UUID) ([]model.Application, error)
	Update(ctx context.Context, app *model.Application) error
}
