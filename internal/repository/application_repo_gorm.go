package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"arena/core/internal/model"
)

type gormApplicationRepository struct {
	db *gorm.DB
}

func NewGormApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &gormApplicationRepository{db: db}
}

func (r *gormApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Omit("Competition", "Team").Create(app).Error
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Competition").Preload("Team")
}

func (r *gormApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	var app model.Application
	if err := r.db.WithContext(ctx).Scopes(withRelations).First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *gormApplicationRepository) List(ctx context.Context) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).Scopes(withRelations).Order("created_at").Find(&apps).Error
	return apps, err
}

func (r *gormApplicationRepository) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Scopes(withRelations).
		Where("competition_id = ?", competitionID).
		Order("created_at").
		Find(&apps).Error
	return apps, err
}

func (r *gormApplicationRepository) ListByRegion(ctx context.Context, regionID int) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Scopes(withRelations).
		Joins("JOIN competitions ON competitions.id = applications.competition_id").
		Where("competitions.region_id = ?", regionID).
		Order("applications.created_at").
		Find(&apps).Error
	return apps, err
}

func (r *gormApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID, teamIDs []uuid.UUID) ([]model.Application, error) {
	var apps []model.Application
	q := r.db.WithContext(ctx).Scopes(withRelations).Where("user_id = ?", userID)
	if len(teamIDs) > 0 {
		q = q.Or("team_id IN ?", teamIDs)
	}
	err := q.Order("created_at").Find(&apps).Error
	return apps, err
}

func (r *gormApplicationRepository) Update(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Omit("Competition", "Team").Save(app).Error
}
