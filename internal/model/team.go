package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamStatus string

const (
	TeamStatusRecruiting TeamStatus = "recruiting"
	TeamStatusFormed     TeamStatus = "formed"
	TeamStatusLocked     TeamStatus = "locked"
	TeamStatusDisbanded  TeamStatus = "disbanded"
)

// Valid reports whether s is one of the known team statuses.
func (s TeamStatus) Valid() bool {
	switch s {
	case TeamStatusRecruiting, TeamStatusFormed, TeamStatusLocked, TeamStatusDisbanded:
		return true
	}
	return false
}

// CanTransitionTo reports whether an explicit status change from s to next is allowed.
// A team never goes back to recruiting; locking requires a formed team; any team may be disbanded.
func (s TeamStatus) CanTransitionTo(next TeamStatus) bool {
	if s == next {
		return true
	}
	switch next {
	case TeamStatusFormed:
		return s == TeamStatusRecruiting
	case TeamStatusLocked:
		return s == TeamStatusFormed
	case TeamStatusDisbanded:
		return true
	}
	return false
}

type Team struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string     `gorm:"type:varchar(255);not null" json:"name"`
	CaptainID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"captain_id"`
	RegionID   int        `gorm:"not null" json:"region_id"`
	MaxMembers int        `gorm:"not null" json:"max_members"`
	InviteCode string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"invite_code"`
	Status     TeamStatus `gorm:"type:varchar(16);not null;default:'recruiting'" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Members     []Membership `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Invitations []Invitation `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"invitations,omitempty"`
}

func (Team) TableName() string { return "teams" }

func (t *Team) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TeamStatusRecruiting
	}
	return nil
}
