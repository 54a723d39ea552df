package errors

import "errors"

var (
	ErrDatabaseOperation  = errors.New("database operation failed")
	ErrInternalServer     = errors.New("internal server error")
	ErrInvalidRequestData = errors.New("invalid request data")
	ErrRecordNotFound     = errors.New("record not found")
	ErrOfficeNotFound     = errors.New("office not found")
)
