package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind classifies an error for the transport layer.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal"
)

// Error is a domain error carrying its kind and a caller-facing message.
// Err holds the underlying cause for internal errors and is never shown to callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind and message, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an infrastructure failure. msg describes the operation that failed.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the kind of err; errors that are not *Error are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	ErrTeamNotFound         = NotFound("team not found")
	ErrInviteCodeNotFound   = NotFound("invite code invalid")
	ErrInviteCodeTaken      = Conflict("invite code already in use")
	ErrInvitationNotFound   = NotFound("invitation token invalid")
	ErrInvitationExpired    = Conflict("invitation expired")
	ErrInvitationExhausted  = Conflict("invitation has no uses left")
	ErrMembershipNotFound   = NotFound("member not found")
	ErrMembershipAnswered   = Conflict("membership already answered")
	ErrNoTeamsForUser       = NotFound("no teams found for user")
	ErrInvalidTransition    = Conflict("team status transition not allowed")
	ErrCompetitionNotFound  = NotFound("competition not found")
	ErrApplicationNotFound  = NotFound("application not found")
	ErrApplicationApplicant = Validation("team_id or user_id required")
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
