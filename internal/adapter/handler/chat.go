package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	chatdto "github.com/salescoach-dev/sales-coach/internal/adapter/dto/chat"
	"github.com/salescoach-dev/sales-coach/internal/usecase/coach"
)

// Chat handles the debrief conversation endpoints
type Chat struct {
	service *coach.ChatService
	logger  *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(service *coach.ChatService, logger *zap.Logger) *Chat {
	return &Chat{service: service, logger: logger}
}

// Seed handles GET /api/chat/seed. The client shows this fixed greeting
// before the first model call.
func (h *Chat) Seed(c echo.Context) error {
	return HandleSuccess(c, h.logger, chatdto.SeedResponse{Content: coach.SeedGreeting})
}

// Exchange handles POST /api/chat. The client sends the full conversation
// and receives the next interviewer turn; when the session closed on this
// turn the extracted analysis rides along.
func (h *Chat) Exchange(c echo.Context) error {
	var req chatdto.ChatRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(c, h.logger, err)
	}

	result, err := h.service.Exchange(c.Request().Context(), req.Turns())
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, h.logger, chatdto.ChatResponse{
		Content:   result.Reply,
		Stage:     result.Stage.String(),
		Analysis:  result.Analysis,
		HistoryID: result.HistoryID,
	})
}
