package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"arena/core/internal/model"
)

type gormInvitationRepository struct {
	db *gorm.DB
}

func NewGormInvitationRepository(db *gorm.DB) InvitationRepository {
	return &gormInvitationRepository{db: db}
}

func (r *gormInvitationRepository) Create(ctx context.Context, inv *model.Invitation) error {
	return r.db.WithContext(ctx).Omit("Team").Create(inv).Error
}

func (r *gormInvitationRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*model.Invitation, error) {
	var inv model.Invitation
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("token_hash = ?", tokenHash).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *gormInvitationRepository) ConsumeUse(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Invitation{}).
		Where("id = ? AND uses_left > 0", id).
		UpdateColumn("uses_left", gorm.Expr("uses_left - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
