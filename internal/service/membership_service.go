package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"arena/core/internal/model"
	"arena/core/internal/repository"
	"arena/core/pkg/crypto"
)

type MembershipService interface {
	RedeemInviteCode(ctx context.Context, code string, userID uuid.UUID) (*model.Membership, error)
	RedeemInvitationToken(ctx context.Context, token string, userID uuid.UUID) (*model.Membership, error)
	ConfirmMembership(ctx context.Context, teamID, userID uuid.UUID, accept bool) (*model.Membership, error)
}

type membershipService struct {
	store  repository.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewMembershipService(store repository.Store, logger *zap.Logger) MembershipService {
	return &membershipService{store: store, logger: logger, now: utcNow}
}

// RedeemInviteCode joins userID to the team owning code. Recruiting teams mark the member
// invited; any other status still registers the user but as pending.
func (s *membershipService) RedeemInviteCode(ctx context.Context, code string, userID uuid.UUID) (*model.Membership, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInviteCodeNotFound
	}

	team, err := s.store.Teams().GetByInviteCode(ctx, code)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInviteCodeNotFound
		}
		return nil, Internal("find team by invite code", err)
	}

	status := model.MemberStatusPending
	if team.Status == model.TeamStatusRecruiting {
		status = model.MemberStatusInvited
	}
	member := &model.Membership{
		TeamID:   team.ID,
		UserID:   userID,
		Role:     model.MemberRoleMember,
		Status:   status,
		JoinedAt: s.now(),
	}
	if err := s.store.Memberships().Create(ctx, member); err != nil {
		return nil, Internal("create membership", err)
	}

	s.logger.Info("joined by invite code",
		zap.String("team_id", team.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("status", string(status)))
	return member, nil
}

// RedeemInvitationToken spends one use of the invitation and creates the membership in the
// same transaction. The decrement is conditional on uses_left > 0, so when several requests
// race for the last use only one of them gets a row back.
func (s *membershipService) RedeemInvitationToken(ctx context.Context, token string, userID uuid.UUID) (*model.Membership, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvitationNotFound
	}
	tokenHash := crypto.HashToken(token)

	var member *model.Membership
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		inv, err := tx.Invitations().GetByTokenHash(ctx, tokenHash)
		if err != nil {
			if isNotFound(err) {
				return ErrInvitationNotFound
			}
			return Internal("find invitation", err)
		}

		at := s.now()
		if !at.Before(inv.ExpiresAt) {
			return ErrInvitationExpired
		}
		if inv.UsesLeft < 1 {
			return ErrInvitationExhausted
		}

		consumed, err := tx.Invitations().ConsumeUse(ctx, inv.ID)
		if err != nil {
			return Internal("consume invitation use", err)
		}
		if !consumed {
			return ErrInvitationExhausted
		}

		member = &model.Membership{
			TeamID:   inv.TeamID,
			UserID:   userID,
			Role:     model.MemberRoleMember,
			Status:   model.MemberStatusInvited,
			JoinedAt: at,
		}
		if err := tx.Memberships().Create(ctx, member); err != nil {
			return Internal("create membership", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("joined by invitation link",
		zap.String("team_id", member.TeamID.String()),
		zap.String("user_id", userID.String()))
	return member, nil
}

// ConfirmMembership records the captain's answer and forms the team when the confirmed count
// reaches capacity. The team row is write-locked for the whole transaction, so confirmations for
// one team are applied one at a time and the capacity check always sees the latest count.
func (s *membershipService) ConfirmMembership(ctx context.Context, teamID, userID uuid.UUID, accept bool) (*model.Membership, error) {
	next := model.MemberStatusRejected
	if accept {
		next = model.MemberStatusConfirmed
	}

	var (
		member *model.Membership
		formed bool
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		at := s.now()
		locked, err := tx.Teams().Touch(ctx, teamID, at)
		if err != nil {
			return Internal("lock team", err)
		}
		if locked == 0 {
			return ErrMembershipNotFound
		}

		member, err = tx.Memberships().GetLatest(ctx, teamID, userID)
		if err != nil {
			if isNotFound(err) {
				return ErrMembershipNotFound
			}
			return Internal("find membership", err)
		}

		switch {
		case member.Status == next:
			// Same answer again: nothing changes except a re-check of capacity below.
		case member.Status.Terminal():
			return ErrMembershipAnswered
		default:
			member.Status = next
			member.RespondedAt = &at
			if err := tx.Memberships().Update(ctx, member); err != nil {
				return Internal("update membership", err)
			}
		}

		formed, err = promoteIfFull(ctx, tx, teamID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("membership answered",
		zap.String("team_id", teamID.String()),
		zap.String("user_id", userID.String()),
		zap.String("status", string(member.Status)))
	if formed {
		s.logger.Info("team formed", zap.String("team_id", teamID.String()))
	}
	return member, nil
}

var _ MembershipService = (*membershipService)(nil)
