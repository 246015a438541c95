package auth

import "errors"

var (
	// ErrAccountAlreadyExists is returned by sign-up when the email is taken.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidAccessToken is returned for any token that fails verification,
	// whatever the reason.
	ErrInvalidAccessToken = errors.New("invalid access token")
)
