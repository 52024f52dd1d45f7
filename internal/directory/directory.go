// Package directory resolves user records held by the users service.
package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when the users service has no record for the id.
var ErrUserNotFound = errors.New("user not found in directory")

type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UserRecord is the public view of a user as served by the users service.
type UserRecord struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	RegionID  *int      `json:"region_id,omitempty"`
	Roles     []Role    `json:"roles,omitempty"`
}

type UserDirectory interface {
	GetUser(ctx context.Context, id uuid.UUID) (*UserRecord, error)
}
