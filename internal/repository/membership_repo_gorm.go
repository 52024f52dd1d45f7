package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"arena/core/internal/model"
)

type gormMembershipRepository struct {
	db *gorm.DB
}

func NewGormMembershipRepository(db *gorm.DB) MembershipRepository {
	return &gormMembershipRepository{db: db}
}

func (r *gormMembershipRepository) Create(ctx context.Context, m *model.Membership) error {
	return r.db.WithContext(ctx).Omit("Team").Create(m).Error
}

func (r *gormMembershipRepository) GetLatest(ctx context.Context, teamID, userID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Order("joined_at DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormMembershipRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Membership, error) {
	var members []model.Membership
	err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Order("joined_at").Find(&members).Error
	return members, err
}

func (r *gormMembershipRepository) ListByTeams(ctx context.Context, teamIDs []uuid.UUID) ([]model.Membership, error) {
	var members []model.Membership
	if len(teamIDs) == 0 {
		return members, nil
	}
	err := r.db.WithContext(ctx).Where("team_id IN ?", teamIDs).Order("joined_at").Find(&members).Error
	return members, err
}

func (r *gormMembershipRepository) ListByUserWithTeam(ctx context.Context, userID uuid.UUID) ([]model.Membership, error) {
	var members []model.Membership
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("user_id = ?", userID).
		Order("joined_at").
		Find(&members).Error
	return members, err
}

func (r *gormMembershipRepository) CountByStatus(ctx context.Context, teamID uuid.UUID, status model.MemberStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("team_id = ? AND status = ?", teamID, status).
		Count(&n).Error
	return n, err
}

func (r *gormMembershipRepository) Update(ctx context.Context, m *model.Membership) error {
	return r.db.WithContext(ctx).Omit("Team").Save(m).Error
}
