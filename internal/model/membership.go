package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRole string

const (
	MemberRoleCaptain MemberRole = "captain"
	MemberRoleMember  MemberRole = "member"
)

type MemberStatus string

const (
	MemberStatusPending   MemberStatus = "pending"
	MemberStatusInvited   MemberStatus = "invited"
	MemberStatusConfirmed MemberStatus = "confirmed"
	MemberStatusRejected  MemberStatus = "rejected"
)

// Terminal reports whether the captain has already answered.
func (s MemberStatus) Terminal() bool {
	return s == MemberStatusConfirmed || s == MemberStatusRejected
}

type Membership struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID      uuid.UUID    `gorm:"type:uuid;not null;index:idx_memberships_team_user" json:"team_id"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;index:idx_memberships_team_user;index" json:"user_id"`
	Role        MemberRole   `gorm:"type:varchar(16);not null;default:'member'" json:"role"`
	Status      MemberStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	JoinedAt    time.Time    `gorm:"not null" json:"joined_at"`
	RespondedAt *time.Time   `json:"responded_at,omitempty"`

	Team *Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

func (Membership) TableName() string { return "memberships" }

func (m *Membership) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	return nil
}
