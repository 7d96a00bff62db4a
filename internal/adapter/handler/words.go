package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	wordsUsecase "github.com/salescoach-dev/sales-coach/internal/usecase/words"
)

// Words handles the custom word registry endpoints
type Words struct {
	service *wordsUsecase.Service
	logger  *zap.Logger
}

// NewWordsHandler creates a new word registry handler
func NewWordsHandler(service *wordsUsecase.Service, logger *zap.Logger) *Words {
	return &Words{service: service, logger: logger}
}

type addWordRequest struct {
	Reading string `json:"reading" validate:"required"`
	Word    string `json:"word" validate:"required"`
}

// List handles GET /api/words
func (h *Words) List(c echo.Context) error {
	words, err := h.service.List(c.Request().Context())
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, h.logger, words)
}

// Add handles POST /api/words
func (h *Words) Add(c echo.Context) error {
	var req addWordRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(c, h.logger, err)
	}

	words, err := h.service.Add(c.Request().Context(), req.Reading, req.Word)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, h.logger, words)
}

// Remove handles DELETE /api/words/:reading
func (h *Words) Remove(c echo.Context) error {
	words, err := h.service.Remove(c.Request().Context(), c.Param("reading"))
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, h.logger, words)
}
