package config

import (
	contextPkg "FaceAttendance/pkg/context"
	"FaceAttendance/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger, bodyLimit int) *fiber.App {
	errHandler := handlerUtil.New(logger)

	app := fiber.New(
		fiber.Config{
			AppName:          "Face Attendance",
			BodyLimit:        bodyLimit,
			DisableKeepalive: false,
			StrictRouting:    true,
			CaseSensitive:    true,
			JSONEncoder:      jsoniter.Marshal,
			JSONDecoder:      jsoniter.Unmarshal,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				requestID, _ := c.Locals(contextPkg.HeaderKey).(string)
				return errHandler.Handle(c, requestID, err, c.Path(), "fiber")
			},
		})

	return app
}
