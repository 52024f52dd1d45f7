package repository_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"arena/core/internal/model"
	"arena/core/internal/repository"
	"arena/core/internal/storetest"
)

func createTeam(t *testing.T, store repository.Store, code string) *model.Team {
	t.Helper()
	team := &model.Team{Name: "Team " + code, CaptainID: uuid.New(), MaxMembers: 3, InviteCode: code}
	require.NoError(t, store.Teams().Create(context.Background(), team))
	return team
}

func TestTeamRepository_InviteCodeUnique(t *testing.T) {
	store := storetest.NewStore(t)
	ctx := context.Background()
	team := createTeam(t, store, "ABCD1234")
	assert.Equal(t, model.TeamStatusRecruiting, team.Status)

	err := store.Teams().Create(ctx, &model.Team{Name: "Other", CaptainID: uuid.New(), MaxMembers: 2, InviteCode: "ABCD1234"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	exists, err := store.Teams().InviteCodeExists(ctx, "ABCD1234")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := store.Teams().GetByInviteCode(ctx, "ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, team.ID, found.ID)
}

func TestTeamRepository_Touch(t *testing.T) {
	store := storetest.NewStore(t)
	ctx := context.Background()
	team := createTeam(t, store, "T0UCH000")

	n, err := store.Teams().Touch(ctx, team.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = store.Teams().Touch(ctx, uuid.New(), time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInvitationRepository_ConsumeUse(t *testing.T) {
	store := storetest.NewStore(t)
	ctx := context.Background()
	team := createTeam(t, store, "INV00001")

	inv := &model.Invitation{
		TeamID:    team.ID,
		TokenHash: "hash-1",
		CreatedBy: team.CaptainID,
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
		UsesLeft:  2,
	}
	require.NoError(t, store.Invitations().Create(ctx, inv))

	for i := 0; i < 2; i++ {
		ok, err := store.Invitations().ConsumeUse(ctx, inv.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := store.Invitations().ConsumeUse(ctx, inv.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := store.Invitations().GetByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.Zero(t, got.UsesLeft)
	require.NotNil(t, got.Team)
	assert.Equal(t, team.ID, got.Team.ID)
}

func newInvitation(t *testing.T, store repository.Store, team *model.Team, hash string, uses int) *model.Invitation {
	t.Helper()
	inv := &model.Invitation{
		TeamID:    team.ID,
		TokenHash: hash,
		CreatedBy: team.CaptainID,
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
		UsesLeft:  uses,
	}
	require.NoError(t, store.Invitations().Create(context.Background(), inv))
	return inv
}

func TestInvitationRepository_ConsumeUseConcurrent(t *testing.T) {
	store := storetest.NewStore(t)
	ctx := context.Background()
	team := createTeam(t, store, "INV00002")
	inv := newInvitation(t, store, team, "hash-2", 3)

	const callers = 16
	var (
		wg    sync.WaitGroup
		taken atomic.Int32
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Invitations().ConsumeUse(ctx, inv.ID)
			assert.NoError(t, err)
			if ok {
				taken.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 3, taken.Load())
	got, err := store.Invitations().GetByTokenHash(ctx, "hash-2")
	require.NoError(t, err)
	assert.Zero(t, got.UsesLeft)
}

// Two redeemers both read uses_left = 1 before either writes. The second decrement must be
// refused by the row's current value, not the value the caller saw.
func TestInvitationRepository_ConsumeUseAfterStaleRead(t *testing.T) {
	store := storetest.NewStore(t)
	ctx := context.Background()
	team := createTeam(t, store, "INV00003")
	newInvitation(t, store, team, "hash-3", 1)

	first, err := store.Invitations().GetByTokenHash(ctx, "hash-3")
	require.NoError(t, err)
	second, err := store.Invitations().GetByTokenHash(ctx, "hash-3")
	require.NoError(t, err)
	require.Equal(t, 1, first.UsesLeft)
	require.Equal(t, 1, second.UsesLeft)

	ok, err := store.Invitations().ConsumeUse(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Invitations().ConsumeUse(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := store.Invitations().GetByTokenHash(ctx, "hash-3")
	require.NoError(t, err)
	assert.Zero(t, got.UsesLeft)
}

func TestStore_TransactionRollsBack(t *testing.T) {
	store := storetest.NewStore(t)
	ctx := context.Background()
	team := createTeam(t, store, "ROLLBACK")
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx repository.Store) error {
		m := &model.Membership{TeamID: team.ID, UserID: uuid.New(), Role: model.MemberRoleMember, Status: model.MemberStatusInvited}
		if err := tx.Memberships().Create(ctx, m); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	members, err := store.Memberships().ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestTeamRepository_DeleteCascades(t *testing.T) {
	store := storetest.NewStore(t)
	ctx := context.Background()
	team := createTeam(t, store, "DEL00001")
	keep := createTeam(t, store, "KEEP0001")

	for _, id := range []uuid.UUID{team.ID, keep.ID} {
		require.NoError(t, store.Memberships().Create(ctx, &model.Membership{
			TeamID: id, UserID: uuid.New(), Role: model.MemberRoleMember, Status: model.MemberStatusPending,
		}))
	}
	require.NoError(t, store.Invitations().Create(ctx, &model.Invitation{
		TeamID: team.ID, TokenHash: "hash-del", CreatedBy: team.CaptainID, ExpiresAt: time.Now().Add(time.Hour), UsesLeft: 1,
	}))

	n, err := store.Teams().Delete(ctx, team.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	members, err := store.Memberships().ListByTeams(ctx, []uuid.UUID{team.ID, keep.ID})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, keep.ID, members[0].TeamID)

	_, err = store.Invitations().GetByTokenHash(ctx, "hash-del")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err = store.Teams().Delete(ctx, team.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
