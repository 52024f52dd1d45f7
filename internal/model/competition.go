package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompetitionType string

const (
	CompetitionTypeOpen     CompetitionType = "open"
	CompetitionTypeRegional CompetitionType = "regional"
	CompetitionTypeFederal  CompetitionType = "federal"
)

func (t CompetitionType) Valid() bool {
	switch t {
	case CompetitionTypeOpen, CompetitionTypeRegional, CompetitionTypeFederal:
		return true
	}
	return false
}

type Discipline string

const (
	DisciplineProduct  Discipline = "product"
	DisciplineSecurity Discipline = "security"
	DisciplineAlgo     Discipline = "algo"
	DisciplineRobot    Discipline = "robot"
	DisciplineUAV      Discipline = "uav"
)

func (d Discipline) Valid() bool {
	switch d {
	case DisciplineProduct, DisciplineSecurity, DisciplineAlgo, DisciplineRobot, DisciplineUAV:
		return true
	}
	return false
}

type Competition struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Type       CompetitionType `gorm:"type:varchar(16);not null" json:"type"`
	Discipline Discipline      `gorm:"type:varchar(16);not null" json:"discipline"`
	StartDate  time.Time       `gorm:"not null" json:"start_date"`
	EndDate    time.Time       `gorm:"not null" json:"end_date"`
	RegionID   *int            `json:"region_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (Competition) TableName() string { return "competitions" }

func (c *Competition) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// AutoApproves reports whether entries to this competition skip moderation.
func (c *Competition) AutoApproves() bool {
	return c.Type == CompetitionTypeOpen || c.Type == CompetitionTypeRegional
}
