package student

import (
	"FaceAttendance/pkg/response"
	"net/http"
)

// Login failures are reported with 200 and a message; clients read the message text.
var (
	ErrStudentAlreadyExists = response.NewError(http.StatusBadRequest, "User already exists")
	ErrStudentNotFound      = response.NewError(http.StatusOK, "User does not exist")
	ErrIncorrectPassword    = response.NewError(http.StatusOK, "Incorrect password")
	ErrEmbeddingExists      = response.NewError(http.StatusConflict, "embedding already exists")
	ErrFailedToStorePhoto   = response.NewError(http.StatusInternalServerError, "failed to store photo")
	ErrPhotoTooLarge        = response.NewError(http.StatusBadRequest, "File too large")
)
