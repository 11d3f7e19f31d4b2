package errs

import (
	"errors"
	"net/http"
)

// Authentication & authorization sentinels
var (
	ErrMissingToken       = errors.New("missing access token")
	ErrInvalidToken       = errors.New("invalid access token")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrWrongProvider      = errors.New("account was created with a different sign-in method")
	ErrEmailNotFound      = errors.New("email not found")
	ErrDuplicateEmail     = errors.New("email already exists")
)

func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingToken,
		Details:    "No access token was provided",
		Field:      "authorization",
	}
}

func NewInvalidTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrInvalidToken,
		Details:    "Access token is invalid",
		Field:      "authorization",
	}
}

func NewInvalidCredentialsError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrInvalidCredentials,
		Field:      "password",
	}
}

// NewWrongProviderError reports a sign-in attempt against an account that
// was registered through the other authentication method.
func NewWrongProviderError(details string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrWrongProvider,
		Details:    details,
	}
}

func NewEmailNotFoundError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrEmailNotFound,
		Field:      "email",
	}
}

func NewDuplicateEmailError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrDuplicateEmail,
		Field:      "email",
	}
}

func IsMissingToken(err error) bool { return errors.Is(err, ErrMissingToken) }
func IsInvalidToken(err error) bool { return errors.Is(err, ErrInvalidToken) }
