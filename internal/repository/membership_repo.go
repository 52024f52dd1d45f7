package repository

import (
	"context"

	"github.com/google/uuid"

	"arena/core/internal/model"
)

type MembershipRepository interface {
	Create(ctx context.Context, m *model.Membership) error
	// GetLatest returns the most recent membership of userID in teamID.
	GetLatest(ctx context.Context, teamID, userID uuid.UUID) (*model.Membership, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Membership, error)
	ListByTeams(ctx context.Context, teamIDs []uuid.UUID) ([]model.Membership, error)
	ListByUserWithTeam(ctx context.Context, userID uuid.UUID) ([]model.Membership, error)
	CountByStatus(ctx context.Context, teamID uuid.UUID, status model.MemberStatus) (int64, error)
	Update(ctx context.Context, m *model.Membership) error
}
