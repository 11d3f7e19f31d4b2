package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// usernameSuffixLen is the number of random characters appended to a
// username when the email local-part is already taken.
const usernameSuffixLen = 5

// UniqueUsername derives a username from the email local-part and, when
// that name is already taken, disambiguates it with a random suffix. The
// taken predicate is expected to consult the user store.
func UniqueUsername(ctx context.Context, email string, taken func(context.Context, string) (bool, error)) (string, error) {
	username := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		username = email[:at]
	}
	username = strings.ToLower(username)

	inUse, err := taken(ctx, username)
	if err != nil {
		return "", err
	}
	if inUse {
		username += "-" + uuid.NewString()[:usernameSuffixLen]
	}
	return username, nil
}
