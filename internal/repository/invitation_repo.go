package repository

import (
	"context"

	"github.com/google/uuid"

	"arena/core/internal/model"
)

type InvitationRepository interface {
	Create(ctx context.Context, inv *model.Invitation) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*model.Invitation, error)
	// ConsumeUse decrements uses_left only while it is positive and reports whether a use was taken.
	ConsumeUse(ctx context.Context, id uuid.UUID) (bool, error)
}
