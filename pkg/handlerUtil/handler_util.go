package handlerUtil

import (
	"FaceAttendance/pkg/log"
	"FaceAttendance/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

const MsgUnexpectedError = "An unexpected error occurred"

type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle writes err as {"message": ...}. Domain errors carry their own status;
// anything else becomes a 500 with a generic message and a logged trace id.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		entry := h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		})
		if respErr.Code >= fiber.StatusInternalServerError {
			entry.Error("Operation failed with error response")
		} else {
			entry.Warn("Operation failed with error response")
		}
		return c.Status(respErr.Code).JSON(ErrorResponse{Message: respErr.Err.Error()})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Request rejected")
		return c.Status(fiberErr.Code).JSON(ErrorResponse{Message: fiberErr.Message})
	}

	traceID := log.ErrorWithTraceID(h.logger, log.Fields{
		log.RequestIDKey: requestID,
		"error":          err.Error(),
		"path":           path,
		"operation":      operation,
	}, "Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Message: MsgUnexpectedError,
		TraceID: traceID,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Message: "Validation failed: " + err.Error(),
		Code:    "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(ErrorResponse{
		Message: utils.StatusMessage(fiber.StatusRequestTimeout),
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
