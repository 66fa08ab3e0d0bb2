package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	errA := NewError(http.StatusBadRequest, "User already exists")
	sameA := NewError(http.StatusBadRequest, "User already exists")
	otherCode := NewError(http.StatusConflict, "User already exists")

	assert.True(t, errors.Is(errA, sameA))
	assert.False(t, errors.Is(errA, otherCode))
	assert.True(t, errors.Is(fmt.Errorf("signup: %w", errA), sameA))
	assert.False(t, errors.Is(errors.New("User already exists"), errA))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(NewError(http.StatusBadRequest, "bad")))
	assert.Equal(t, http.StatusOK, StatusCode(fmt.Errorf("wrapped: %w", NewError(http.StatusOK, "ok"))))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}
