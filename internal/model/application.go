package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application is a competition entry, either by a team or by a single user.
type Application struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	CompetitionID uuid.UUID         `gorm:"type:uuid;not null;index" json:"competition_id"`
	TeamID        *uuid.UUID        `gorm:"type:uuid;index" json:"team_id,omitempty"`
	UserID        *uuid.UUID        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Status        ApplicationStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	Comment       string            `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Competition *Competition `gorm:"foreignKey:CompetitionID;constraint:OnDelete:CASCADE" json:"competition,omitempty"`
	Team        *Team        `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL" json:"team,omitempty"`
}

func (Application) TableName() string { return "applications" }

func (a *Application) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
