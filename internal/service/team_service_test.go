package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arena/core/internal/model"
)

func TestCreateTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	captain := uuid.New()

	team, err := f.teams.CreateTeam(ctx, CreateTeamInput{
		Name:       "  Falcons ",
		CaptainID:  captain,
		RegionID:   50,
		MaxMembers: 4,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, team.ID)
	assert.Equal(t, "Falcons", team.Name)
	assert.Equal(t, captain, team.CaptainID)
	assert.Equal(t, model.TeamStatusRecruiting, team.Status)
	assert.Len(t, team.InviteCode, 8)

	found, err := f.teams.FindTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, team.InviteCode, found.InviteCode)
	assert.Empty(t, found.Members)
}

func TestCreateTeam_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		input CreateTeamInput
	}{
		{"empty name", CreateTeamInput{Name: "   ", MaxMembers: 3}},
		{"zero capacity", CreateTeamInput{Name: "A", MaxMembers: 0}},
		{"negative capacity", CreateTeamInput{Name: "A", MaxMembers: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.teams.CreateTeam(context.Background(), tt.input)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
}

func TestCreateTeam_ExplicitInviteCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	team, err := f.teams.CreateTeam(ctx, CreateTeamInput{Name: "A", MaxMembers: 2, InviteCode: "ALPHA"})
	require.NoError(t, err)
	assert.Equal(t, "ALPHA", team.InviteCode)

	_, err = f.teams.CreateTeam(ctx, CreateTeamInput{Name: "B", MaxMembers: 2, InviteCode: "ALPHA"})
	assert.ErrorIs(t, err, ErrInviteCodeTaken)
}

func TestCreateTeam_InviteCodesAreUnique(t *testing.T) {
	f := newFixture(t)

	seen := make(map[string]struct{})
	for i := 0; i < 40; i++ {
		team := f.createTeam(t, 3)
		_, dup := seen[team.InviteCode]
		require.False(t, dup, "duplicate invite code %s", team.InviteCode)
		seen[team.InviteCode] = struct{}{}
	}
}

func TestFindTeam_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.teams.FindTeam(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestFindTeam_IncludesMembersAndInvitations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.createTeam(t, 3)
	f.join(t, team)
	_, err := f.invitations.CreateInvitation(ctx, team.ID, team.CaptainID, 2)
	require.NoError(t, err)

	found, err := f.teams.FindTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Len(t, found.Members, 1)
	require.Len(t, found.Invitations, 1)
	assert.Empty(t, found.Invitations[0].Token)
}

func TestUpdateTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.createTeam(t, 3)
	other := f.createTeam(t, 3)

	name := "Renamed"
	capacity := 5
	updated, err := f.teams.UpdateTeam(ctx, team.ID, UpdateTeamInput{Name: &name, MaxMembers: &capacity})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 5, updated.MaxMembers)
	assert.Equal(t, team.InviteCode, updated.InviteCode)
	assert.Equal(t, 77, updated.RegionID)

	_, err = f.teams.UpdateTeam(ctx, team.ID, UpdateTeamInput{InviteCode: &other.InviteCode})
	assert.ErrorIs(t, err, ErrInviteCodeTaken)

	same := team.InviteCode
	_, err = f.teams.UpdateTeam(ctx, team.ID, UpdateTeamInput{InviteCode: &same})
	assert.NoError(t, err)

	zero := 0
	_, err = f.teams.UpdateTeam(ctx, team.ID, UpdateTeamInput{MaxMembers: &zero})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = f.teams.UpdateTeam(ctx, uuid.New(), UpdateTeamInput{Name: &name})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestSetTeamStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		path    []model.TeamStatus
		next    model.TeamStatus
		wantErr error
	}{
		{"recruiting to formed", nil, model.TeamStatusFormed, nil},
		{"recruiting to recruiting", nil, model.TeamStatusRecruiting, nil},
		{"recruiting to locked", nil, model.TeamStatusLocked, ErrInvalidTransition},
		{"formed to locked", []model.TeamStatus{model.TeamStatusFormed}, model.TeamStatusLocked, nil},
		{"formed to recruiting", []model.TeamStatus{model.TeamStatusFormed}, model.TeamStatusRecruiting, ErrInvalidTransition},
		{"locked to disbanded", []model.TeamStatus{model.TeamStatusFormed, model.TeamStatusLocked}, model.TeamStatusDisbanded, nil},
		{"disbanded to formed", []model.TeamStatus{model.TeamStatusDisbanded}, model.TeamStatusFormed, ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			team := f.createTeam(t, 2)
			for _, s := range tt.path {
				_, err := f.teams.SetTeamStatus(ctx, team.ID, s)
				require.NoError(t, err)
			}

			got, err := f.teams.SetTeamStatus(ctx, team.ID, tt.next)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, got.Status)
		})
	}
}

func TestSetTeamStatus_Unknown(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t, 2)

	_, err := f.teams.SetTeamStatus(context.Background(), team.ID, model.TeamStatus("archived"))
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestRemoveTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.createTeam(t, 3)
	userID := f.join(t, team)
	inv, err := f.invitations.CreateInvitation(ctx, team.ID, team.CaptainID, 1)
	require.NoError(t, err)

	comp, err := NewCompetitionService(f.store).CreateCompetition(ctx, testCompetition(model.CompetitionTypeOpen))
	require.NoError(t, err)
	app, err := NewApplicationService(f.store, f.teams).CreateApplication(ctx, CreateApplicationInput{
		CompetitionID: comp.ID,
		TeamID:        &team.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.teams.RemoveTeam(ctx, team.ID))

	_, err = f.teams.FindTeam(ctx, team.ID)
	assert.ErrorIs(t, err, ErrTeamNotFound)
	_, err = f.teams.ListTeamsForUser(ctx, userID)
	assert.ErrorIs(t, err, ErrNoTeamsForUser)
	_, err = f.memberships.RedeemInvitationToken(ctx, inv.Token, uuid.New())
	assert.ErrorIs(t, err, ErrInvitationNotFound)

	kept, err := f.store.Applications().GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.TeamID)

	assert.ErrorIs(t, f.teams.RemoveTeam(ctx, team.ID), ErrTeamNotFound)
}

func TestListTeamsForUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.createTeam(t, 3)
	b := f.createTeam(t, 3)
	f.createTeam(t, 3)

	userID := f.join(t, a)
	_, err := f.memberships.RedeemInviteCode(ctx, a.InviteCode, userID)
	require.NoError(t, err)
	_, err = f.memberships.RedeemInviteCode(ctx, b.InviteCode, userID)
	require.NoError(t, err)

	teams, err := f.teams.ListTeamsForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, a.ID, teams[0].ID)
	assert.Equal(t, b.ID, teams[1].ID)

	_, err = f.teams.ListTeamsForUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNoTeamsForUser)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListTeams(t *testing.T) {
	f := newFixture(t)
	f.createTeam(t, 2)
	f.createTeam(t, 2)

	teams, err := f.teams.ListTeams(context.Background())
	require.NoError(t, err)
	assert.Len(t, teams, 2)
}
