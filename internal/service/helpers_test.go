package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"arena/core/internal/model"
	"arena/core/internal/repository"
	"arena/core/internal/storetest"
)

type fixture struct {
	store       repository.Store
	teams       TeamService
	memberships *membershipService
	invitations *invitationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storetest.NewStore(t)
	logger := zap.NewNop()
	return &fixture{
		store:       store,
		teams:       NewTeamService(store, logger),
		memberships: NewMembershipService(store, logger).(*membershipService),
		invitations: NewInvitationService(store, logger, time.Hour).(*invitationService),
	}
}

func (f *fixture) createTeam(t *testing.T, maxMembers int) *model.Team {
	t.Helper()
	team, err := f.teams.CreateTeam(context.Background(), CreateTeamInput{
		Name:       "team-" + uuid.NewString()[:8],
		CaptainID:  uuid.New(),
		RegionID:   77,
		MaxMembers: maxMembers,
	})
	require.NoError(t, err)
	return team
}

func (f *fixture) join(t *testing.T, team *model.Team) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	_, err := f.memberships.RedeemInviteCode(context.Background(), team.InviteCode, userID)
	require.NoError(t, err)
	return userID
}

func (f *fixture) teamStatus(t *testing.T, id uuid.UUID) model.TeamStatus {
	t.Helper()
	team, err := f.store.Teams().GetByID(context.Background(), id)
	require.NoError(t, err)
	return team.Status
}
