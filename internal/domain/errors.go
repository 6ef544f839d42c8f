package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrDuplicateSlug = errors.New("slug already exists")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidInput  = errors.New("invalid input")
	ErrBucketUnknown = errors.New("bucket not configured")
	ErrObjectExists  = errors.New("object already exists")
	ErrSetupComplete = errors.New("setup already complete")
)
