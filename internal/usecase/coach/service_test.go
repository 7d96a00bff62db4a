package coach

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/salescoach-dev/sales-coach/internal/adapter/repository"
	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
	"github.com/salescoach-dev/sales-coach/pkg/ai"
)

// scriptedClient replays canned replies in order
type scriptedClient struct {
	replies []string
	calls   [][]ai.ChatMessage
	err     error
}

func (c *scriptedClient) Complete(_ context.Context, _ string, conversation []ai.ChatMessage) (string, error) {
	c.calls = append(c.calls, conversation)
	if c.err != nil {
		return "", c.err
	}
	reply := c.replies[len(c.calls)-1]
	return reply, nil
}

func newTestService(t *testing.T, client CompletionClient) (*ChatService, *repository.HistoryFileRepository) {
	t.Helper()
	repo := repository.NewHistoryFileRepository(filepath.Join(t.TempDir(), "history.json"))
	return NewChatService(client, repo, zap.NewNop()), repo
}

func TestExchange_ScriptedOpeningOrder(t *testing.T) {
	client := &scriptedClient{replies: []string{PurposeQuestion, ImpressionQuestion}}
	service, _ := newTestService(t, client)
	ctx := context.Background()

	// Seed greeting asks for company; the rep answers
	turns := []entities.Turn{
		entities.NewTurn(entities.TurnRoleAssistant, SeedGreeting),
		entities.NewTurn(entities.TurnRoleUser, "ABC商事、感触は良かった"),
	}

	result, err := service.Exchange(ctx, turns)
	require.NoError(t, err)
	assert.Equal(t, StagePurpose, result.Stage)
	assert.Equal(t, PurposeQuestion, result.Reply)
	assert.Empty(t, result.Violations)
	assert.Nil(t, result.Analysis)

	// Purpose answered; the impression question must follow
	turns = append(turns,
		entities.NewTurn(entities.TurnRoleAssistant, result.Reply),
		entities.NewTurn(entities.TurnRoleUser, "提案"))

	result, err = service.Exchange(ctx, turns)
	require.NoError(t, err)
	assert.Equal(t, StageImpression, result.Stage)
	assert.Equal(t, ImpressionQuestion, result.Reply)
	assert.Empty(t, result.Violations)
}

func TestExchange_ClosingTurnArchivesHistory(t *testing.T) {
	client := &scriptedClient{replies: []string{fullAnalysisReply}}
	service, repo := newTestService(t, client)
	ctx := context.Background()

	turns := []entities.Turn{
		entities.NewTurn(entities.TurnRoleAssistant, SeedGreeting),
		entities.NewTurn(entities.TurnRoleUser, "ABC商事です"),
		entities.NewTurn(entities.TurnRoleAssistant, PurposeQuestion),
		entities.NewTurn(entities.TurnRoleUser, "ありがとうございました。終了します"),
	}

	result, err := service.Exchange(ctx, turns)
	require.NoError(t, err)
	assert.Equal(t, StageClose, result.Stage)
	require.NotNil(t, result.Analysis)
	assert.Equal(t, "ABC商事", result.Analysis.CustomerName)
	require.NotEmpty(t, result.HistoryID)

	records, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, result.HistoryID, records[0].ID)
	assert.Equal(t, "ABC商事", records[0].CustomerName)
	// Archived conversation includes the closing reply
	assert.Len(t, records[0].Messages, len(turns)+1)
}

func TestExchange_NewestRecordFirst(t *testing.T) {
	client := &scriptedClient{replies: []string{fullAnalysisReply, fullAnalysisReply}}
	service, repo := newTestService(t, client)
	ctx := context.Background()

	turns := []entities.Turn{
		entities.NewTurn(entities.TurnRoleAssistant, SeedGreeting),
		entities.NewTurn(entities.TurnRoleUser, "ありがとうございました"),
	}

	first, err := service.Exchange(ctx, turns)
	require.NoError(t, err)
	second, err := service.Exchange(ctx, turns)
	require.NoError(t, err)

	records, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.HistoryID, records[0].ID)
	assert.Equal(t, first.HistoryID, records[1].ID)
}

func TestExchange_OrdinaryTurnDoesNotArchive(t *testing.T) {
	client := &scriptedClient{replies: []string{"なるほど。そのとき顧客は何と言いましたか？"}}
	service, repo := newTestService(t, client)
	ctx := context.Background()

	turns := []entities.Turn{
		entities.NewTurn(entities.TurnRoleAssistant, SeedGreeting),
		entities.NewTurn(entities.TurnRoleUser, "ABC商事です"),
		entities.NewTurn(entities.TurnRoleAssistant, PurposeQuestion),
		entities.NewTurn(entities.TurnRoleUser, "提案です"),
		entities.NewTurn(entities.TurnRoleAssistant, ImpressionQuestion),
		entities.NewTurn(entities.TurnRoleUser, "良かったです"),
	}

	result, err := service.Exchange(ctx, turns)
	require.NoError(t, err)
	assert.Nil(t, result.Analysis)
	assert.Empty(t, result.HistoryID)

	records, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExchange_EmptyConversationRejected(t *testing.T) {
	service, _ := newTestService(t, &scriptedClient{})

	_, err := service.Exchange(context.Background(), nil)
	require.Error(t, err)
}

func TestExchange_CompletionFailureSurfaces(t *testing.T) {
	client := &scriptedClient{err: errors.New("rate limited")}
	service, _ := newTestService(t, client)

	turns := []entities.Turn{entities.NewTurn(entities.TurnRoleUser, "ABC商事です")}
	_, err := service.Exchange(context.Background(), turns)
	require.Error(t, err)
}
