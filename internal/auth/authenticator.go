package auth

import (
	"context"
	"errors"
	"fmt"

	"classifieds/internal/models"
)

// UserLookup finds a user by username. A missing user is (nil, nil).
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Verifier is the verification half of a token service.
type Verifier interface {
	Verify(token string) (string, error)
}

// Authenticator resolves bearer tokens to users. It only reads.
type Authenticator struct {
	tokens Verifier
	users  UserLookup
}

// NewAuthenticator wires a token verifier to a user lookup.
func NewAuthenticator(tokens Verifier, users UserLookup) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Resolve verifies token and returns the user named by its subject.
// Token failures yield an Unauthenticated AuthError; a subject with no
// matching user yields UnknownSubject. Lookup failures are returned as-is.
func (a *Authenticator) Resolve(ctx context.Context, token string) (*models.User, error) {
	subject, err := a.tokens.Verify(token)
	if err != nil {
		return nil, &AuthError{Kind: Unauthenticated, Err: err}
	}

	user, err := a.users.GetByUsername(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("resolve subject: %w", err)
	}
	if user == nil {
		return nil, &AuthError{Kind: UnknownSubject, Err: fmt.Errorf("no user %q", subject)}
	}
	return user, nil
}

// KindOf extracts the most specific failure reason from err, for logs
// and metrics. Verification kinds take precedence over authentication kinds.
func KindOf(err error) string {
	var vErr *VerificationError
	if errors.As(err, &vErr) {
		return string(vErr.Kind)
	}
	var aErr *AuthError
	if errors.As(err, &aErr) {
		return string(aErr.Kind)
	}
	return "unknown"
}
