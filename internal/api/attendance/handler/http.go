package attendanceHandler

import (
	attendanceService "FaceAttendance/internal/api/attendance/service"
	"FaceAttendance/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AttendanceHandler struct {
	log               *logrus.Logger
	middleware        middleware.Middleware
	attendanceService attendanceService.AttendanceService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	as attendanceService.AttendanceService,
) *AttendanceHandler {
	return &AttendanceHandler{
		log:               log,
		middleware:        middleware,
		attendanceService: as,
	}
}

func (h *AttendanceHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	srv.Post("/search", h.HandleSearch)
	srv.Use("/search/ws", wsMiddleware)
	srv.Get("/search/ws", websocket.New(h.handleWebSocket))
}
