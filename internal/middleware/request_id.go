package middleware

import (
	contextPkg "FaceAttendance/pkg/context"
	"FaceAttendance/pkg/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

const RequestIDKey = contextPkg.HeaderKey

func NewRequestIDMiddleware() fiber.Handler {
	utilsInstance := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)

		if requestID == "" {
			requestID, _ = utilsInstance.NewULIDFromTimestamp(time.Now())
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}
