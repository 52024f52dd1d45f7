package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"arena/core/internal/model"
)

type gormCompetitionRepository struct {
	db *gorm.DB
}

func NewGormCompetitionRepository(db *gorm.DB) CompetitionRepository {
	return &gormCompetitionRepository{db: db}
}

func (r *gormCompetitionRepository) Create(ctx context.Context, c *model.Competition) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *gormCompetitionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Competition, error) {
	var c model.Competition
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormCompetitionRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Competition{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *gormCompetitionRepository) List(ctx context.Context) ([]model.Competition, error) {
	var list []model.Competition
	err := r.db.WithContext(ctx).Order("start_date").Find(&list).Error
	return list, err
}
