package repository

import "errors"

var (
	ErrCarNotFound    = errors.New("car not found")
	ErrCarUnavailable = errors.New("car not available for selected dates")
)
