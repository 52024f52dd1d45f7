package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invitation is a use-limited, expiring join link for a team.
// Only a digest of the token is persisted; Token is filled in once, on creation.
type Invitation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;index" json:"team_id"`
	TokenHash string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"-"`
	Token     string    `gorm:"-" json:"token,omitempty"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	UsesLeft  int       `gorm:"not null;default:1" json:"uses_left"`
	CreatedAt time.Time `json:"created_at"`

	Team *Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

func (Invitation) TableName() string { return "invitations" }

func (i *Invitation) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
