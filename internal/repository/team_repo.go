package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"arena/core/internal/model"
)

type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error)
	GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Team, error)
	GetByInviteCode(ctx context.Context, code string) (*model.Team, error)
	InviteCodeExists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]model.Team, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Team, error)
	// Updates applies the column map and reports the number of affected rows.
	Updates(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.TeamStatus) error
	// Touch bumps updated_at. Inside a transaction it takes the row write lock.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
