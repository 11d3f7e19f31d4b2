package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell-app/inkwell-backend/errs"
)

// TokenIssuer produces and verifies the signed session tokens presented on
// every authenticated request. Tokens are HS256-signed and unencrypted; the
// only claim the platform relies on is the subject user id. No expiry is
// set server-side, so a token stays valid as long as its signature does.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) TokenIssuer {
	return TokenIssuer{secret: []byte(secret)}
}

// Issue signs a session token for the user id.
func (t TokenIssuer) Issue(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
	})
	return token.SignedString(t.secret)
}

// Verify checks the token signature and returns the user id it asserts.
func (t TokenIssuer) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errs.NewMissingTokenError()
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errs.NewInvalidTokenError()
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errs.NewInvalidTokenError()
	}
	return sub, nil
}
