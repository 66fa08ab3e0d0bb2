package studentHandler

import (
	studentService "FaceAttendance/internal/api/student/service"
	"FaceAttendance/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type StudentHandler struct {
	log            *logrus.Logger
	studentService studentService.StudentService
	validator      *validator.Validate
	middleware     middleware.Middleware
}

func New(
	log *logrus.Logger,
	ss studentService.StudentService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *StudentHandler {
	return &StudentHandler{
		log:            log,
		studentService: ss,
		validator:      validate,
		middleware:     middleware,
	}
}

func (h *StudentHandler) Start(srv fiber.Router) {
	srv.Post("/student-signup", h.HandleSignup)
	srv.Post("/login", h.middleware.NewRateLimiter, h.HandleLogin)
}
