package attendanceHandler

import (
	"FaceAttendance/internal/api/attendance"
	contextPkg "FaceAttendance/pkg/context"
	"FaceAttendance/pkg/handlerUtil"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

func (h *AttendanceHandler) HandleSearch(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req attendance.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, attendance.ErrInvalidImage, ctx.Path(), "parse_request_body")
	}

	photo := handlerUtil.FormFile(ctx, attendance.ImageField)

	present, err := h.attendanceService.Search(c, req, photo)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "attendance_search")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, attendance.SearchResponse{Message: present})
	}
}

// handleWebSocket answers every binary frame with the students found in it.
func (h *AttendanceHandler) handleWebSocket(c *websocket.Conn) {
	requestID, _ := c.Locals(contextPkg.HeaderKey).(string)
	if requestID == "" {
		requestID = "unknown"
	}

	h.log.WithField("request_id", requestID).Info("Live search WebSocket client connected")
	defer h.log.WithField("request_id", requestID).Info("Live search WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Errorf("Live search WebSocket error: %v", err)
			}
			break
		}

		if messageType != websocket.BinaryMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		frameCtx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), 30*time.Second)
		present, err := h.attendanceService.SearchImage(frameCtx, message)
		cancel()

		var reply interface{} = attendance.SearchResponse{Message: present}
		if err != nil {
			reply = attendance.LiveSearchError{Error: err.Error()}
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(reply); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			break
		}
	}
}
