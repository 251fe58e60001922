// Package service holds the business rules for accounts and listings.
package service

import (
	"context"
	"strings"
	"time"

	"classifieds/internal/middleware"
	"classifieds/internal/models"
	"classifieds/internal/observability"
	"classifieds/internal/repository"
	"classifieds/internal/validation"
)

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
	DummyHash() string
}

// TokenIssuer mints bearer tokens for a subject.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
	TTL() time.Duration
}

// ErrInvalidCredentials is the single sign-in failure, whatever the cause.
var ErrInvalidCredentials = models.NewUnauthorizedError("Incorrect username or password")

type AuthService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
}

type SignUpInput struct {
	Username string
	Email    string
	Password string
}

// AccessToken is the sign-in response body.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{userRepo: userRepo, hasher: hasher, tokens: tokens}
}

// SignUp registers a new account. Duplicate usernames or emails are conflicts,
// whether caught by the pre-check or by the unique indexes.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Username, email, and password are required")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Username already registered")
	}
	existing, err = s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// SignIn exchanges a username and password for a bearer token. Blank, unknown
// and wrong credentials all fail with ErrInvalidCredentials. An unknown
// username still costs one bcrypt comparison, against the dummy hash.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*AccessToken, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, s.rejectSignIn(ctx, "missing_credentials")
	}

	user, err := s.userRepo.GetCredentials(ctx, username)
	if err != nil {
		return nil, err
	}

	if user == nil {
		s.hasher.Verify(password, s.hasher.DummyHash())
		return nil, s.rejectSignIn(ctx, "unknown_user")
	}
	if !s.hasher.Verify(password, user.Password) {
		return nil, s.rejectSignIn(ctx, "wrong_password")
	}

	token, err := s.tokens.Issue(user.Username, s.tokens.TTL())
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AccessToken{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *AuthService) rejectSignIn(ctx context.Context, reason string) error {
	observability.AuthFailures.WithLabelValues(reason).Inc()
	middleware.Logger.WarnContext(ctx, "sign-in rejected", "reason", reason)
	return ErrInvalidCredentials
}
