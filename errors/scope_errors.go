package errors

import "errors"

var (
	ErrScopeResolution = errors.New("could not resolve actor scope")
	ErrNoLinkedOffice  = errors.New("user is not linked to any office")
	ErrUnknownResource = errors.New("unknown resource type")
	ErrUnknownAction   = errors.New("unknown permission action")
)
