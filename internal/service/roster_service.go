package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"arena/core/internal/directory"
	"arena/core/internal/model"
	"arena/core/internal/repository"
)

// TeamRoster is a team registered for a competition with every one of its memberships.
type TeamRoster struct {
	Team    model.Team         `json:"team"`
	Members []model.Membership `json:"members"`
}

type RosterOptions struct {
	// LookupTimeout bounds each directory call.
	LookupTimeout time.Duration
	// Concurrency caps parallel directory calls.
	Concurrency int
}

type RosterService interface {
	GetParticipants(ctx context.Context, competitionID uuid.UUID) ([]directory.UserRecord, error)
	GetTeamsWithMembers(ctx context.Context, competitionID uuid.UUID) ([]TeamRoster, error)
}

type rosterService struct {
	store     repository.Store
	directory directory.UserDirectory
	opts      RosterOptions
	logger    *zap.Logger
}

func NewRosterService(store repository.Store, dir directory.UserDirectory, opts RosterOptions, logger *zap.Logger) RosterService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &rosterService{store: store, directory: dir, opts: opts, logger: logger}
}

func (s *rosterService) requireCompetition(ctx context.Context, id uuid.UUID) error {
	ok, err := s.store.Competitions().Exists(ctx, id)
	if err != nil {
		return Internal("check competition", err)
	}
	if !ok {
		return ErrCompetitionNotFound
	}
	return nil
}

// GetParticipants lists every user entered in the competition: solo applicants plus all
// members of entered teams, whatever their membership status. Ids the directory cannot
// resolve are logged and left out.
func (s *rosterService) GetParticipants(ctx context.Context, competitionID uuid.UUID) ([]directory.UserRecord, error) {
	if err := s.requireCompetition(ctx, competitionID); err != nil {
		return nil, err
	}

	apps, err := s.store.Applications().ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, Internal("list applications", err)
	}

	var ids orderedSet
	teamIDs := teamIDsOf(apps)
	for _, app := range apps {
		if app.TeamID == nil && app.UserID != nil {
			ids.add(*app.UserID)
		}
	}
	if len(teamIDs) > 0 {
		members, err := s.store.Memberships().ListByTeams(ctx, teamIDs)
		if err != nil {
			return nil, Internal("list team members", err)
		}
		for _, m := range members {
			ids.add(m.UserID)
		}
	}

	return s.resolve(ctx, ids.items)
}

// resolve looks ids up in the directory. Individual failures are skipped, but a cancelled caller
// context fails the whole call rather than returning a truncated list.
func (s *rosterService) resolve(ctx context.Context, ids []uuid.UUID) ([]directory.UserRecord, error) {
	resolved := make([]*directory.UserRecord, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	var mu sync.Mutex
	for i, id := range ids {
		g.Go(func() error {
			lookupCtx := gctx
			if s.opts.LookupTimeout > 0 {
				var cancel context.CancelFunc
				lookupCtx, cancel = context.WithTimeout(gctx, s.opts.LookupTimeout)
				defer cancel()
			}

			user, err := s.directory.GetUser(lookupCtx, id)
			if err != nil {
				level := s.logger.Warn
				if errors.Is(err, directory.ErrUserNotFound) {
					level = s.logger.Info
				}
				level("participant skipped", zap.String("user_id", id.String()), zap.Error(err))
				return nil
			}
			mu.Lock()
			resolved[i] = user
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, Internal("resolve participants", err)
	}

	users := make([]directory.UserRecord, 0, len(ids))
	for _, u := range resolved {
		if u != nil {
			users = append(users, *u)
		}
	}
	return users, nil
}

// GetTeamsWithMembers returns each team entered in the competition once, in application order.
func (s *rosterService) GetTeamsWithMembers(ctx context.Context, competitionID uuid.UUID) ([]TeamRoster, error) {
	if err := s.requireCompetition(ctx, competitionID); err != nil {
		return nil, err
	}

	apps, err := s.store.Applications().ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, Internal("list applications", err)
	}
	teamIDs := teamIDsOf(apps)
	if len(teamIDs) == 0 {
		return []TeamRoster{}, nil
	}

	teams, err := s.store.Teams().ListByIDs(ctx, teamIDs)
	if err != nil {
		return nil, Internal("list teams", err)
	}
	members, err := s.store.Memberships().ListByTeams(ctx, teamIDs)
	if err != nil {
		return nil, Internal("list team members", err)
	}

	byTeam := make(map[uuid.UUID][]model.Membership, len(teamIDs))
	for _, m := range members {
		byTeam[m.TeamID] = append(byTeam[m.TeamID], m)
	}
	teamByID := make(map[uuid.UUID]model.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	rosters := make([]TeamRoster, 0, len(teamIDs))
	for _, id := range teamIDs {
		team, ok := teamByID[id]
		if !ok {
			continue
		}
		list := byTeam[id]
		if list == nil {
			list = []model.Membership{}
		}
		rosters = append(rosters, TeamRoster{Team: team, Members: list})
	}
	return rosters, nil
}

func teamIDsOf(apps []model.Application) []uuid.UUID {
	var set orderedSet
	for _, app := range apps {
		if app.TeamID != nil {
			set.add(*app.TeamID)
		}
	}
	return set.items
}

// orderedSet keeps the first occurrence of each id.
type orderedSet struct {
	seen  map[uuid.UUID]struct{}
	items []uuid.UUID
}

func (s *orderedSet) add(id uuid.UUID) {
	if s.seen == nil {
		s.seen = make(map[uuid.UUID]struct{})
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.items = append(s.items, id)
}

var _ RosterService = (*rosterService)(nil)
