package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"arena/core/internal/model"
	"arena/core/internal/repository"
	"arena/core/pkg/crypto"
)

// DefaultInvitationTTL is how long an invitation link stays valid.
const DefaultInvitationTTL = 7 * 24 * time.Hour

type InvitationService interface {
	// CreateInvitation issues a link for teamID. usesLeft of 0 means a single use.
	CreateInvitation(ctx context.Context, teamID, createdBy uuid.UUID, usesLeft int) (*model.Invitation, error)
}

type invitationService struct {
	store  repository.Store
	logger *zap.Logger
	ttl    time.Duration
	now    func() time.Time
}

func NewInvitationService(store repository.Store, logger *zap.Logger, ttl time.Duration) InvitationService {
	if ttl <= 0 {
		ttl = DefaultInvitationTTL
	}
	return &invitationService{store: store, logger: logger, ttl: ttl, now: utcNow}
}

func (s *invitationService) CreateInvitation(ctx context.Context, teamID, createdBy uuid.UUID, usesLeft int) (*model.Invitation, error) {
	if usesLeft == 0 {
		usesLeft = 1
	}
	if usesLeft < 1 {
		return nil, Validation("uses_left must be at least 1")
	}

	if _, err := s.store.Teams().GetByID(ctx, teamID); err != nil {
		if isNotFound(err) {
			return nil, ErrTeamNotFound
		}
		return nil, Internal("find team", err)
	}

	token, err := crypto.GenerateInvitationToken()
	if err != nil {
		return nil, Internal("generate invitation token", err)
	}

	at := s.now()
	inv := &model.Invitation{
		TeamID:    teamID,
		TokenHash: crypto.HashToken(token),
		CreatedBy: createdBy,
		ExpiresAt: at.Add(s.ttl),
		UsesLeft:  usesLeft,
		CreatedAt: at,
	}
	if err := s.store.Invitations().Create(ctx, inv); err != nil {
		return nil, Internal("create invitation", err)
	}
	inv.Token = token

	s.logger.Info("invitation created",
		zap.String("team_id", teamID.String()),
		zap.String("invitation_id", inv.ID.String()),
		zap.Int("uses_left", usesLeft),
		zap.Time("expires_at", inv.ExpiresAt))
	return inv, nil
}

var _ InvitationService = (*invitationService)(nil)
