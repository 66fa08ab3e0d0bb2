package attendance

import (
	"FaceAttendance/pkg/response"
	"net/http"
)

var (
	ErrInvalidImage  = response.NewError(http.StatusBadRequest, "Invalid file type")
	ErrImageTooLarge = response.NewError(http.StatusBadRequest, "File too large")
)
