package handlerUtil

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"FaceAttendance/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, err error) (int, string) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	h := New(log)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return h.Handle(c, "req-1", err, c.Path(), "test")
	})

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, testErr)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestHandleDomainError(t *testing.T) {
	status, body := serve(t, response.NewError(http.StatusBadRequest, "User already exists"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"User already exists"}`, body)
}

func TestHandleWrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), response.NewError(http.StatusOK, "User does not exist"))
	status, body := serve(t, wrapped)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"User does not exist"}`, body)
}

func TestHandleUnexpectedError(t *testing.T) {
	status, body := serve(t, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `{"message":"An unexpected error occurred","trace_id":"req-1"}`, body)
}

func TestHandleFiberError(t *testing.T) {
	status, body := serve(t, fiber.NewError(fiber.StatusUnprocessableEntity, "bad form"))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.JSONEq(t, `{"message":"bad form"}`, body)
}
