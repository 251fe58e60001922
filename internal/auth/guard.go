package auth

import (
	"errors"

	"classifieds/internal/models"
)

var errNotOwner = errors.New("actor does not own the advertisement")

// AuthorizeMutation allows updating or deleting ad only when actor owns it.
func AuthorizeMutation(actor *models.User, ad *models.Advertisement) error {
	if actor == nil || ad == nil || actor.ID != ad.OwnerID {
		return &AuthError{Kind: Forbidden, Err: errNotOwner}
	}
	return nil
}

// IsKind reports whether err carries an AuthError of the given kind.
func IsKind(err error, kind AuthErrorKind) bool {
	var aErr *AuthError
	return errors.As(err, &aErr) && aErr.Kind == kind
}
