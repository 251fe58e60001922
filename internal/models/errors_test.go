package models

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", NewValidationError("bad"), http.StatusBadRequest},
		{"conflict", NewConflictError("taken"), http.StatusConflict},
		{"unauthorized", NewUnauthorizedError("who"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden},
		{"not found", NewNotFoundError("Advertisement", 7), http.StatusNotFound},
		{"internal", NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("lookup: %w", NewNotFoundError("User", 1)), http.StatusNotFound},
		{"plain error", errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusOf(tt.err))
		})
	}
}

func TestAppError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError(cause)

	assert.Equal(t, "Internal server error: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Advertisement with ID 3 not found", NewNotFoundError("Advertisement", 3).Error())
}

func TestAdvertisementFields_Apply(t *testing.T) {
	ad := &Advertisement{ID: 4, OwnerID: 9, Title: "old", Price: "1"}
	AdvertisementFields{Title: "Bike", Price: "100 EUR", Location: "Riga"}.Apply(ad)

	assert.Equal(t, uint(4), ad.ID)
	assert.Equal(t, uint(9), ad.OwnerID)
	assert.Equal(t, "Bike", ad.Title)
	assert.Equal(t, "100 EUR", ad.Price)
	assert.Equal(t, "Riga", ad.Location)
	assert.Empty(t, ad.Description, "full replacement clears omitted fields")
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(NewConflictError("x"), CodeConflict))
	assert.False(t, IsCode(NewConflictError("x"), CodeNotFound))
	assert.False(t, IsCode(errors.New("x"), CodeConflict))
}
