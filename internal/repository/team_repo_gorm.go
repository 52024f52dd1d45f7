package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"arena/core/internal/model"
)

type gormTeamRepository struct {
	db *gorm.DB
}

func NewGormTeamRepository(db *gorm.DB) TeamRepository {
	return &gormTeamRepository{db: db}
}

func (r *gormTeamRepository) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *gormTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *gormTeamRepository) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at") }).
		Preload("Invitations", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *gormTeamRepository) GetByInviteCode(ctx context.Context, code string) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).Where("invite_code = ?", code).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *gormTeamRepository) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Team{}).Where("invite_code = ?", code).Count(&n).Error
	return n > 0, err
}

func (r *gormTeamRepository) List(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Invitations").
		Order("created_at").
		Find(&teams).Error
	return teams, err
}

func (r *gormTeamRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Team, error) {
	var teams []model.Team
	if len(ids) == 0 {
		return teams, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&teams).Error
	return teams, err
}

func (r *gormTeamRepository) Updates(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Team{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *gormTeamRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.TeamStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *gormTeamRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", at)
	return res.RowsAffected, res.Error
}

// Delete removes the team together with its memberships and invitations.
func (r *gormTeamRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).Delete(&model.Invitation{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Application{}).Where("team_id = ?", id).Update("team_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Team{}, "id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}
