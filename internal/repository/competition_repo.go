package repository

import (
	"context"

	"github.com/google/uuid"

	"arena/core/internal/model"
)

type CompetitionRepository interface {
	Create(ctx context.Context, c *model.Competition) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Competition, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]model.Competition, error)
}
