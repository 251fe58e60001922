package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"classifieds/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotImplemented = errors.New("not implemented")

type userRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	getCredentialsFn func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	deleteFn         func(context.Context, uint) error
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		},
		getByUsernameFn:  func(context.Context, string) (*models.User, error) { return nil, nil },
		getByEmailFn:     func(context.Context, string) (*models.User, error) { return nil, nil },
		getCredentialsFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:         func(context.Context, *models.User) error { return nil },
		deleteFn:         func(context.Context, uint) error { return errNotImplemented },
	}
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetCredentials(ctx context.Context, username string) (*models.User, error) {
	return s.getCredentialsFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type adRepoStub struct {
	createFn      func(context.Context, *models.Advertisement) error
	getByIDFn     func(context.Context, uint) (*models.Advertisement, error)
	listFn        func(context.Context, int, int) ([]models.Advertisement, error)
	listByOwnerFn func(context.Context, uint, int, int) ([]models.Advertisement, error)
	searchFn      func(context.Context, string, int, int) ([]models.Advertisement, error)
	updateFn      func(context.Context, *models.Advertisement) error
	deleteFn      func(context.Context, uint) error
}

func noopAdRepo() *adRepoStub {
	return &adRepoStub{
		createFn: func(context.Context, *models.Advertisement) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Advertisement, error) {
			return nil, models.NewNotFoundError("Advertisement", id)
		},
		listFn:        func(context.Context, int, int) ([]models.Advertisement, error) { return nil, nil },
		listByOwnerFn: func(context.Context, uint, int, int) ([]models.Advertisement, error) { return nil, nil },
		searchFn:      func(context.Context, string, int, int) ([]models.Advertisement, error) { return nil, nil },
		updateFn:      func(context.Context, *models.Advertisement) error { return nil },
		deleteFn:      func(context.Context, uint) error { return nil },
	}
}

func (s *adRepoStub) Create(ctx context.Context, ad *models.Advertisement) error {
	return s.createFn(ctx, ad)
}
func (s *adRepoStub) GetByID(ctx context.Context, id uint) (*models.Advertisement, error) {
	return s.getByIDFn(ctx, id)
}
func (s *adRepoStub) List(ctx context.Context, limit, offset int) ([]models.Advertisement, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *adRepoStub) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Advertisement, error) {
	return s.listByOwnerFn(ctx, ownerID, limit, offset)
}
func (s *adRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]models.Advertisement, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *adRepoStub) Update(ctx context.Context, ad *models.Advertisement) error {
	return s.updateFn(ctx, ad)
}
func (s *adRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

// hasherStub hashes by prefixing and records every Verify call.
type hasherStub struct {
	verified []string
	hashErr  error
}

func (h *hasherStub) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *hasherStub) Verify(password, hash string) bool {
	h.verified = append(h.verified, hash)
	return hash == "hashed:"+password
}

func (h *hasherStub) DummyHash() string { return "dummy" }

type issuerStub struct {
	subjects []string
	err      error
}

func (i *issuerStub) Issue(subject string, _ time.Duration) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	i.subjects = append(i.subjects, subject)
	return "token-for-" + subject, nil
}

func (i *issuerStub) TTL() time.Duration { return 30 * time.Minute }

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
