package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/salescoach-dev/sales-coach/internal/adapter/repository"
	"github.com/salescoach-dev/sales-coach/internal/usecase/coach"
	"github.com/salescoach-dev/sales-coach/pkg/ai"
	"github.com/salescoach-dev/sales-coach/pkg/validator"
)

type cannedClient struct {
	reply string
}

func (c *cannedClient) Complete(_ context.Context, _ string, _ []ai.ChatMessage) (string, error) {
	return c.reply, nil
}

func newChatEcho(t *testing.T, reply string) (*echo.Echo, *Chat) {
	t.Helper()
	e := echo.New()
	e.Validator = validator.New()

	repo := repository.NewHistoryFileRepository(filepath.Join(t.TempDir(), "history.json"))
	service := coach.NewChatService(&cannedClient{reply: reply}, repo, zap.NewNop())
	return e, NewChatHandler(service, zap.NewNop())
}

func TestChatExchange(t *testing.T) {
	e, h := newChatEcho(t, coach.PurposeQuestion)

	body := `{"messages": [
		{"role": "assistant", "content": "まず、今日はどんな会社の方と商談をされましたか？"},
		{"role": "user", "content": "ABC商事、感触は良かった"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Exchange(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			Content string `json:"content"`
			Stage   string `json:"stage"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, coach.PurposeQuestion, envelope.Data.Content)
	assert.Equal(t, "purpose", envelope.Data.Stage)
}

func TestChatExchange_EmptyMessagesRejected(t *testing.T) {
	e, h := newChatEcho(t, "unused")

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages": []}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Exchange(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatSeed(t *testing.T) {
	e, h := newChatEcho(t, "unused")

	req := httptest.NewRequest(http.MethodGet, "/api/chat/seed", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Seed(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "商談お疲れさまでした")
}
