package auth

import (
	"context"
	"strings"

	"google.golang.org/api/idtoken"

	"github.com/inkwell-app/inkwell-backend/errs"
)

// GoogleIdentity is the subset of a verified Google ID token the platform
// cares about.
type GoogleIdentity struct {
	Email   string
	Name    string
	Picture string
}

// GoogleVerifier validates Google-issued ID tokens for federated sign-in.
type GoogleVerifier struct {
	clientID string

	// validate is swappable in tests; it defaults to idtoken.Validate.
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return GoogleVerifier{
		clientID: clientID,
		validate: idtoken.Validate,
	}
}

// Verify checks the ID token against Google's public keys and the
// configured OAuth client id, and extracts the identity claims.
func (g GoogleVerifier) Verify(ctx context.Context, token string) (GoogleIdentity, error) {
	if token == "" {
		return GoogleIdentity{}, errs.NewMissingTokenError()
	}

	payload, err := g.validate(ctx, token, g.clientID)
	if err != nil {
		return GoogleIdentity{}, errs.NewInvalidTokenError()
	}

	identity := GoogleIdentity{
		Email:   claimString(payload.Claims, "email"),
		Name:    claimString(payload.Claims, "name"),
		Picture: claimString(payload.Claims, "picture"),
	}
	if identity.Email == "" {
		return GoogleIdentity{}, errs.NewInvalidTokenError()
	}

	// Google hands out a low-resolution thumbnail by default.
	identity.Picture = strings.Replace(identity.Picture, "s96-c", "s384-c", 1)

	return identity, nil
}

func claimString(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
