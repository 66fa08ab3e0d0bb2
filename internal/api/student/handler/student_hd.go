package studentHandler

import (
	"FaceAttendance/internal/api/student"
	contextPkg "FaceAttendance/pkg/context"
	"FaceAttendance/pkg/handlerUtil"
	"FaceAttendance/pkg/log"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *StudentHandler) HandleSignup(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req student.SignupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	photo := handlerUtil.FormFile(ctx, student.ImageField)
	if photo != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"file_name":  photo.Filename,
			"file_size":  photo.Size,
		}).Debug("Signup with photo")
	}

	if _, err := h.studentService.Signup(c, req, photo); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "student_signup")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, student.MessageResponse{
			Message: student.MsgSignupSuccess,
		})
	}
}

func (h *StudentHandler) HandleLogin(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req student.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.studentService.Login(c, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "student_login")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, student.MessageResponse{
			Message: student.MsgLoginSuccess,
		})
	}
}
