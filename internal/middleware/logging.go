package middleware

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const secretPlaceholder = "[SECRET]"

var sensitiveFields = []string{
	"password", "token", "secret", "key", "auth",
	"credential", "authorization",
}

func LoggerConfig(logger *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID, ok := c.Locals(RequestIDKey).(string)
		if !ok || requestID == "" {
			requestID = "unknown"
		}

		err := c.Next()

		latency := time.Since(start)
		status := c.Response().StatusCode()

		logFields := logrus.Fields{
			"request_id":    requestID,
			"method":        c.Method(),
			"path":          c.Path(),
			"status":        status,
			"latency_ms":    latency.Milliseconds(),
			"ip":            c.IP(),
			"user_agent":    c.Get("User-Agent"),
			"response_size": len(c.Response().Body()),
		}

		if body := c.Request().Body(); len(body) > 0 {
			logFields["request_body"] = sanitizeRequestBody(string(c.Request().Header.ContentType()), body)
		}

		entry := logger.WithFields(logFields)
		switch {
		case status >= 500:
			entry.Error("Server error")
		case status >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Success")
		}

		return err
	}
}

// sanitizeRequestBody masks credentials in JSON and urlencoded bodies. Multipart
// bodies carry photos and are never logged.
func sanitizeRequestBody(contentType string, body []byte) string {
	switch {
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		return "[multipart body]"
	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return "[unparseable form body]"
		}
		for field := range values {
			if isSensitive(field) {
				values.Set(field, secretPlaceholder)
			}
		}
		return values.Encode()
	}

	var jsonBody map[string]interface{}
	if err := jsoniter.Unmarshal(body, &jsonBody); err != nil {
		return "[non-JSON body]"
	}

	for field := range jsonBody {
		if isSensitive(field) {
			jsonBody[field] = secretPlaceholder
		}
	}

	sanitized, err := jsoniter.Marshal(jsonBody)
	if err != nil {
		return "[sanitization-failed]"
	}

	return string(sanitized)
}

func isSensitive(field string) bool {
	field = strings.ToLower(field)
	for _, s := range sensitiveFields {
		if strings.Contains(field, s) {
			return true
		}
	}
	return false
}
