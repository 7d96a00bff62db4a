package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

func turn(role entities.TurnRole, content string) entities.Turn {
	return entities.NewTurn(role, content)
}

func TestInferStage_ScriptedOpening(t *testing.T) {
	turns := []entities.Turn{turn(entities.TurnRoleAssistant, SeedGreeting)}
	assert.Equal(t, StageGreeting, InferStage(turns))

	turns = append(turns, turn(entities.TurnRoleUser, "ABC商事の田中様です。感触は良かったです"))
	assert.Equal(t, StagePurpose, InferStage(turns))

	turns = append(turns,
		turn(entities.TurnRoleAssistant, PurposeQuestion),
		turn(entities.TurnRoleUser, "提案です"))
	assert.Equal(t, StageImpression, InferStage(turns))

	turns = append(turns,
		turn(entities.TurnRoleAssistant, ImpressionQuestion),
		turn(entities.TurnRoleUser, "好感触でした。次回も会ってくれるそうです"))
	assert.Equal(t, StageDeepDive, InferStage(turns))
}

func TestInferStage_ClosingSignalWins(t *testing.T) {
	turns := []entities.Turn{
		turn(entities.TurnRoleAssistant, SeedGreeting),
		turn(entities.TurnRoleUser, "ABC商事です"),
		turn(entities.TurnRoleAssistant, PurposeQuestion),
		turn(entities.TurnRoleUser, "今日はありがとうございました。終了します"),
	}
	assert.Equal(t, StageClose, InferStage(turns))
}

func TestCountQuestions(t *testing.T) {
	assert.Equal(t, 0, CountQuestions("なるほど、承知しました。"))
	assert.Equal(t, 1, CountQuestions("そのとき顧客は何と言いましたか？"))
	assert.Equal(t, 2, CountQuestions("目的は何ですか？結果はどうでしたか？"))
	assert.Equal(t, 1, CountQuestions("What did they say?"))
}

func TestValidateReply_DeepDiveSingleQuestion(t *testing.T) {
	assert.Empty(t, ValidateReply(StageDeepDive, "顧客の現在の体制について、もう少し教えていただけますか？"))

	violations := ValidateReply(StageDeepDive, "課題は何でしたか？予算はいくらですか？")
	assert.Len(t, violations, 1)
}

func TestValidateReply_ScriptedTurns(t *testing.T) {
	assert.Empty(t, ValidateReply(StagePurpose, "ありがとうございます。今日の訪問目的を教えてください。"))
	assert.NotEmpty(t, ValidateReply(StagePurpose, "順調そうですね。それで、どんな話をしましたか？"))

	assert.Empty(t, ValidateReply(StageImpression, "全体的な感触はいかがでしたか？詳しく聞かせてください。"))
	assert.NotEmpty(t, ValidateReply(StageImpression, "なるほど。"))
}

func TestValidateReply_CloseNeedsAnalysisBlock(t *testing.T) {
	assert.NotEmpty(t, ValidateReply(StageClose, "お疲れさまでした！"))
	assert.Empty(t, ValidateReply(StageClose, fullAnalysisReply))
}

func TestIsClosingSignal(t *testing.T) {
	assert.True(t, IsClosingSignal("ありがとうございました"))
	assert.True(t, IsClosingSignal("これで終了でお願いします"))
	assert.False(t, IsClosingSignal("提案です"))
}
