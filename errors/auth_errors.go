package errors

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrNoActiveRole         = errors.New("no active role in identity claims")
	ErrRoleNotHeld          = errors.New("role not held by user")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserInactive         = errors.New("user account is inactive")
	ErrOfficeSuspended      = errors.New("office is suspended")
	ErrOfficeMemberInactive = errors.New("office membership is inactive")

	// ErrAuthorizationDenied is the only error kind allowed to change the
	// outcome of a primary request; everything else stays in the logs.
	ErrAuthorizationDenied = errors.New("authorization denied")
)
