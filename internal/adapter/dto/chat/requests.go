package chat

import (
	"time"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

// TurnRequest is one message in the client-held conversation
type TurnRequest struct {
	Role      string    `json:"role" validate:"required,oneof=user assistant"`
	Content   string    `json:"content" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest carries the full conversation; the server holds no session
// state between calls.
type ChatRequest struct {
	Messages []TurnRequest `json:"messages" validate:"required,min=1,dive"`
}

// Turns converts the request payload into domain turns
func (r *ChatRequest) Turns() []entities.Turn {
	turns := make([]entities.Turn, 0, len(r.Messages))
	for _, m := range r.Messages {
		turns = append(turns, entities.Turn{
			Role:      entities.TurnRole(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return turns
}

// ChatResponse is one completed exchange
type ChatResponse struct {
	Content   string                  `json:"content"`
	Stage     string                  `json:"stage"`
	Analysis  *entities.MeetingRecord `json:"analysis,omitempty"`
	HistoryID string                  `json:"historyId,omitempty"`
}

// SeedResponse is the fixed opening turn for a fresh session
type SeedResponse struct {
	Content string `json:"content"`
}
