package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle. Transaction runs fn against a
// Store bound to a single database transaction; returning an error rolls it back.
type Store interface {
	Teams() TeamRepository
	Memberships() MembershipRepository
	Invitations() InvitationRepository
	Competitions() CompetitionRepository
	Applications() ApplicationRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Teams() TeamRepository               { return NewGormTeamRepository(s.db) }
func (s *gormStore) Memberships() MembershipRepository   { return NewGormMembershipRepository(s.db) }
func (s *gormStore) Invitations() InvitationRepository   { return NewGormInvitationRepository(s.db) }
func (s *gormStore) Competitions() CompetitionRepository { return NewGormCompetitionRepository(s.db) }
func (s *gormStore) Applications() ApplicationRepository { return NewGormApplicationRepository(s.db) }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

var _ Store = (*gormStore)(nil)
