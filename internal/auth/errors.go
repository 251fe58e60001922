// Package auth implements credential hashing, bearer token issuance and
// verification, identity resolution and the ownership guard for listings.
package auth

import "fmt"

// VerificationKind classifies why a token failed verification.
type VerificationKind string

const (
	Malformed      VerificationKind = "malformed"
	BadSignature   VerificationKind = "bad_signature"
	Expired        VerificationKind = "expired"
	MissingSubject VerificationKind = "missing_subject"
)

// VerificationError is returned by TokenService.Verify. The kind is meant for
// logs and metrics only; clients always see a generic 401.
type VerificationError struct {
	Kind VerificationKind
	Err  error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token verification failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("token verification failed (%s)", e.Kind)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// AuthErrorKind classifies identity and permission failures.
type AuthErrorKind string

const (
	Unauthenticated AuthErrorKind = "unauthenticated"
	UnknownSubject  AuthErrorKind = "unknown_subject"
	Forbidden       AuthErrorKind = "forbidden"
)

// AuthError is returned by the Authenticator and the ownership guard.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
