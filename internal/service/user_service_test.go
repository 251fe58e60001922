package service

import (
	"context"
	"testing"

	"classifieds/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetUserByID(t *testing.T) {
	t.Parallel()
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 1 {
			return &models.User{ID: 1, Username: "alice"}, nil
		}
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewUserService(repo)

	user, err := svc.GetUserByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.GetUserByID(context.Background(), 2)
	assertCode(t, err, models.CodeNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Parallel()
	repo := noopUserRepo()
	var deleted uint
	repo.deleteFn = func(_ context.Context, id uint) error {
		deleted = id
		return nil
	}
	svc := NewUserService(repo)

	require.NoError(t, svc.DeleteUser(context.Background(), 3))
	assert.Equal(t, uint(3), deleted)
}
