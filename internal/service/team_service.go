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

// inviteCodeAttempts bounds regeneration when a random invite code collides with an existing one.
const inviteCodeAttempts = 5

type CreateTeamInput struct {
	Name       string
	CaptainID  uuid.UUID
	RegionID   int
	MaxMembers int
	InviteCode string
}

// UpdateTeamInput is a partial update; nil fields are left untouched.
type UpdateTeamInput struct {
	Name       *string
	CaptainID  *uuid.UUID
	RegionID   *int
	MaxMembers *int
	InviteCode *string
	Status     *model.TeamStatus
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*model.Team, error)
	FindTeam(ctx context.Context, id uuid.UUID) (*model.Team, error)
	ListTeams(ctx context.Context) ([]model.Team, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, input UpdateTeamInput) (*model.Team, error)
	SetTeamStatus(ctx context.Context, id uuid.UUID, status model.TeamStatus) (*model.Team, error)
	RemoveTeam(ctx context.Context, id uuid.UUID) error
	ListTeamsForUser(ctx context.Context, userID uuid.UUID) ([]model.Team, error)
}

type teamService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewTeamService(store repository.Store, logger *zap.Logger) TeamService {
	return &teamService{store: store, logger: logger}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*model.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, Validation("team name is required")
	}
	if input.MaxMembers < 1 {
		return nil, Validation("max_members must be at least 1")
	}

	code := strings.TrimSpace(input.InviteCode)
	if code != "" {
		taken, err := s.store.Teams().InviteCodeExists(ctx, code)
		if err != nil {
			return nil, Internal("check invite code", err)
		}
		if taken {
			return nil, ErrInviteCodeTaken
		}
	} else {
		generated, err := s.uniqueInviteCode(ctx)
		if err != nil {
			return nil, err
		}
		code = generated
	}

	team := &model.Team{
		Name:       name,
		CaptainID:  input.CaptainID,
		RegionID:   input.RegionID,
		MaxMembers: input.MaxMembers,
		InviteCode: code,
		Status:     model.TeamStatusRecruiting,
	}
	if err := s.store.Teams().Create(ctx, team); err != nil {
		if isDuplicate(err) {
			return nil, ErrInviteCodeTaken
		}
		return nil, Internal("create team", err)
	}

	s.logger.Info("team created",
		zap.String("team_id", team.ID.String()),
		zap.String("name", team.Name),
		zap.Int("max_members", team.MaxMembers))
	return team, nil
}

func (s *teamService) uniqueInviteCode(ctx context.Context) (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := crypto.GenerateInviteCode()
		if err != nil {
			return "", Internal("generate invite code", err)
		}
		taken, err := s.store.Teams().InviteCodeExists(ctx, code)
		if err != nil {
			return "", Internal("check invite code", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", Internal("generate invite code", ErrInviteCodeTaken)
}

func (s *teamService) FindTeam(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	team, err := s.store.Teams().GetByIDWithRelations(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTeamNotFound
		}
		return nil, Internal("find team", err)
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]model.Team, error) {
	teams, err := s.store.Teams().List(ctx)
	if err != nil {
		return nil, Internal("list teams", err)
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id uuid.UUID, input UpdateTeamInput) (*model.Team, error) {
	fields := make(map[string]interface{})
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, Validation("team name is required")
		}
		fields["name"] = name
	}
	if input.CaptainID != nil {
		fields["captain_id"] = *input.CaptainID
	}
	if input.RegionID != nil {
		fields["region_id"] = *input.RegionID
	}
	if input.MaxMembers != nil {
		if *input.MaxMembers < 1 {
			return nil, Validation("max_members must be at least 1")
		}
		fields["max_members"] = *input.MaxMembers
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		// Lock the row first so status checks and the write see the same team.
		locked, err := tx.Teams().Touch(ctx, id, utcNow())
		if err != nil {
			return Internal("lock team", err)
		}
		if locked == 0 {
			return ErrTeamNotFound
		}

		if input.InviteCode != nil {
			code := strings.TrimSpace(*input.InviteCode)
			if code == "" {
				return Validation("invite code must not be empty")
			}
			current, err := tx.Teams().GetByInviteCode(ctx, code)
			switch {
			case err == nil && current.ID != id:
				return ErrInviteCodeTaken
			case err != nil && !isNotFound(err):
				return Internal("check invite code", err)
			}
			fields["invite_code"] = code
		}
		if input.Status != nil {
			team, err := tx.Teams().GetByID(ctx, id)
			if err != nil {
				if isNotFound(err) {
					return ErrTeamNotFound
				}
				return Internal("find team", err)
			}
			if err := checkTransition(team.Status, *input.Status); err != nil {
				return err
			}
			fields["status"] = *input.Status
		}
		if len(fields) == 0 {
			return nil
		}

		affected, err := tx.Teams().Updates(ctx, id, fields)
		if err != nil {
			if isDuplicate(err) {
				return ErrInviteCodeTaken
			}
			return Internal("update team", err)
		}
		if affected == 0 {
			return ErrTeamNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindTeam(ctx, id)
}

func (s *teamService) SetTeamStatus(ctx context.Context, id uuid.UUID, status model.TeamStatus) (*model.Team, error) {
	team, err := s.UpdateTeam(ctx, id, UpdateTeamInput{Status: &status})
	if err != nil {
		return nil, err
	}
	s.logger.Info("team status set",
		zap.String("team_id", id.String()),
		zap.String("status", string(status)))
	return team, nil
}

func checkTransition(from, to model.TeamStatus) error {
	if !to.Valid() {
		return Validation("unknown team status %q", to)
	}
	if !from.CanTransitionTo(to) {
		return ErrInvalidTransition
	}
	return nil
}

func (s *teamService) RemoveTeam(ctx context.Context, id uuid.UUID) error {
	affected, err := s.store.Teams().Delete(ctx, id)
	if err != nil {
		return Internal("remove team", err)
	}
	if affected == 0 {
		return ErrTeamNotFound
	}
	s.logger.Info("team removed", zap.String("team_id", id.String()))
	return nil
}

func (s *teamService) ListTeamsForUser(ctx context.Context, userID uuid.UUID) ([]model.Team, error) {
	memberships, err := s.store.Memberships().ListByUserWithTeam(ctx, userID)
	if err != nil {
		return nil, Internal("list memberships", err)
	}

	seen := make(map[uuid.UUID]struct{}, len(memberships))
	teams := make([]model.Team, 0, len(memberships))
	for _, m := range memberships {
		if m.Team == nil {
			continue
		}
		if _, ok := seen[m.TeamID]; ok {
			continue
		}
		seen[m.TeamID] = struct{}{}
		teams = append(teams, *m.Team)
	}
	if len(teams) == 0 {
		return nil, ErrNoTeamsForUser
	}
	return teams, nil
}

// promoteIfFull marks the team formed once its confirmed memberships reach capacity.
// It only moves a recruiting team; formed, locked and disbanded teams are left alone.
func promoteIfFull(ctx context.Context, store repository.Store, teamID uuid.UUID) (bool, error) {
	team, err := store.Teams().GetByID(ctx, teamID)
	if err != nil {
		if isNotFound(err) {
			return false, ErrTeamNotFound
		}
		return false, Internal("find team", err)
	}
	if team.Status != model.TeamStatusRecruiting {
		return false, nil
	}

	confirmed, err := store.Memberships().CountByStatus(ctx, teamID, model.MemberStatusConfirmed)
	if err != nil {
		return false, Internal("count confirmed members", err)
	}
	if confirmed < int64(team.MaxMembers) {
		return false, nil
	}

	if err := store.Teams().SetStatus(ctx, teamID, model.TeamStatusFormed); err != nil {
		return false, Internal("mark team formed", err)
	}
	return true, nil
}

var _ TeamService = (*teamService)(nil)

func utcNow() time.Time { return time.Now().UTC() }
