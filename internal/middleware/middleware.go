package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultRequestRate rate.Limit = 5
	defaultBurstSize              = 20
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	NewLoggingMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
}

type middleware struct {
	rateLimitter        *rateLimiter
	requestIDMiddleware fiber.Handler
	log                 *logrus.Logger
}

func New(logger *logrus.Logger) Middleware {
	return NewWithRateLimit(logger, defaultRequestRate, defaultBurstSize)
}

// NewWithRateLimit sets the per-IP token bucket used by NewRateLimiter.
func NewWithRateLimit(logger *logrus.Logger, reqRate rate.Limit, burstSize int) Middleware {
	return &middleware{
		rateLimitter:        newRateLimiter(reqRate, burstSize),
		requestIDMiddleware: NewRequestIDMiddleware(),
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}

func (m *middleware) NewLoggingMiddleware() fiber.Handler {
	return LoggerConfig(m.log)
}
