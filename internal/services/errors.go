package services

import "errors"

var (
	// ErrForbidden is returned when a user touches a record they do not own.
	ErrForbidden = errors.New("you do not have access to this record")
	// ErrInvalidCredentials hides whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// maxSlugAttempts bounds the insert retries after a slug race.
const maxSlugAttempts = 5
