package coach

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/salescoach-dev/sales-coach/errors"
	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
	"github.com/salescoach-dev/sales-coach/internal/domain/repositories"
	"github.com/salescoach-dev/sales-coach/pkg/ai"
)

// CompletionClient is the language-model boundary
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt string, conversation []ai.ChatMessage) (string, error)
}

// ExchangeResult is one completed round-trip: the interviewer's reply, the
// stage it was generated in, and the extracted analysis when the session
// closed on this turn.
type ExchangeResult struct {
	Reply      string
	Stage      Stage
	Analysis   *entities.MeetingRecord
	HistoryID  string
	Violations []string
}

// ChatService runs the debrief conversation: it forwards the full turn list
// to the language model, validates the reply against the scripted flow, and
// archives a history record when the closing analysis appears.
type ChatService struct {
	client      CompletionClient
	historyRepo repositories.HistoryRepository
	logger      *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(client CompletionClient, historyRepo repositories.HistoryRepository, logger *zap.Logger) *ChatService {
	return &ChatService{
		client:      client,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// Exchange sends the conversation to the model and appends its reply. The
// caller owns the conversation: the returned reply is not stored
// server-side, only the closing analysis is.
func (s *ChatService) Exchange(ctx context.Context, turns []entities.Turn) (*ExchangeResult, error) {
	if err := entities.ValidateTurns(turns); err != nil {
		return nil, apperrors.ErrInvalidPayload().WithDetail("reason", err.Error())
	}

	stage := InferStage(turns)

	conversation := make([]ai.ChatMessage, 0, len(turns))
	for _, turn := range turns {
		conversation = append(conversation, ai.ChatMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}

	reply, err := s.client.Complete(ctx, SystemPrompt, conversation)
	if err != nil {
		s.logger.Error("chat completion failed", zap.Error(err), zap.Int("turns", len(turns)))
		return nil, apperrors.ErrChatCompletionFailed(err)
	}

	result := &ExchangeResult{
		Reply: reply,
		Stage: stage,
	}

	if violations := ValidateReply(stage, reply); len(violations) > 0 {
		// The generator is an untrusted oracle; protocol drift is logged
		// but the reply is still returned.
		s.logger.Warn("reply violates flow contract",
			zap.String("stage", stage.String()),
			zap.Strings("violations", violations))
		result.Violations = violations
	}

	if analysis := ExtractAnalysis(reply); analysis != nil {
		result.Analysis = analysis
		result.HistoryID = s.archive(ctx, turns, reply, analysis)
	}

	return result, nil
}

// archive synthesizes a history record from the closed session and prepends
// it to the store. Archive failures do not fail the exchange: the reply and
// analysis are already in the caller's hands.
func (s *ChatService) archive(ctx context.Context, turns []entities.Turn, reply string, analysis *entities.MeetingRecord) string {
	now := time.Now()

	record := *analysis
	record.ID = uuid.New().String()
	record.Date = now.Format("2006/1/2")
	record.Conversation = append(append([]entities.Turn{}, turns...), entities.NewTurn(entities.TurnRoleAssistant, reply))

	entry := entities.HistoryRecord{
		ID:           record.ID,
		SavedAt:      now,
		CustomerName: record.CustomerName,
		Date:         record.Date,
		Messages:     record.Conversation,
		Analysis:     record,
	}

	records, err := s.historyRepo.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load history before archive", zap.Error(err))
		return record.ID
	}

	records = append([]entities.HistoryRecord{entry}, records...)
	if err := s.historyRepo.Save(ctx, records); err != nil {
		s.logger.Error("failed to archive history record", zap.Error(err), zap.String("id", record.ID))
	}

	return record.ID
}
