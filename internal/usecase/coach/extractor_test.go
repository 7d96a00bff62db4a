package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullAnalysisReply = "お疲れさまでした！本日の商談を分析しました。\n\n```json\n" + `{
  "customerName": "ABC商事",
  "summary": "新規提案の商談。担当者の反応は良好。",
  "spinAnalysis": {
    "situation": ["現行システムは5年前に導入"],
    "problem": ["月次の集計作業に3日かかっている"],
    "implication": ["締め遅延が営業判断を遅らせている"],
    "needPayoff": ["自動集計で月次を1日に短縮できる"]
  },
  "score": {
    "situation": 75,
    "problem": 60,
    "implication": 40,
    "needPayoff": 50,
    "overall": 56
  },
  "actionPlan": ["見積書を送付する", "来週フォロー訪問"],
  "strengths": ["ヒアリングが丁寧"],
  "improvements": ["示唆質問が少ない"]
}` + "\n```"

func TestExtractAnalysis_FullBlock(t *testing.T) {
	record := ExtractAnalysis(fullAnalysisReply)
	require.NotNil(t, record)

	assert.Equal(t, "ABC商事", record.CustomerName)
	assert.Equal(t, 75, record.Score.Situation)
	assert.Equal(t, 56, record.Score.Overall)
	assert.Equal(t, []string{"現行システムは5年前に導入"}, record.SPINAnalysis.Situation)
	assert.Len(t, record.ActionPlan, 2)
}

func TestExtractAnalysis_NoBlock(t *testing.T) {
	replies := []string{
		"今日の訪問目的を教えてください。",
		"なるほど、それは大変でしたね。",
		"", // empty reply
		"jsonという言葉が出てくるだけの普通の返答です。",
	}
	for _, reply := range replies {
		assert.Nil(t, ExtractAnalysis(reply), "reply %q should yield no analysis", reply)
	}
}

func TestExtractAnalysis_MalformedBlockFailsSoft(t *testing.T) {
	reply := "分析結果です。\n```json\n{\"customerName\": \"ABC商事\", broken\n```"
	assert.Nil(t, ExtractAnalysis(reply))
}

func TestExtractAnalysis_MissingScoreDefaultsToZero(t *testing.T) {
	reply := "```json\n{\"customerName\": \"ABC商事\", \"summary\": \"要約\"}\n```"

	record := ExtractAnalysis(reply)
	require.NotNil(t, record)
	assert.Equal(t, 0, record.Score.Situation)
	assert.Equal(t, 0, record.Score.Problem)
	assert.Equal(t, 0, record.Score.Implication)
	assert.Equal(t, 0, record.Score.NeedPayoff)
	assert.Equal(t, 0, record.Score.Overall)
}

func TestExtractAnalysis_MissingImplicationDefaultsIndependently(t *testing.T) {
	reply := "```json\n" + `{
  "customerName": "ABC商事",
  "spinAnalysis": {
    "situation": ["状況1"],
    "problem": ["問題1"],
    "needPayoff": ["価値1"]
  }
}` + "\n```"

	record := ExtractAnalysis(reply)
	require.NotNil(t, record)
	assert.Equal(t, []string{"状況1"}, record.SPINAnalysis.Situation)
	assert.Equal(t, []string{"問題1"}, record.SPINAnalysis.Problem)
	assert.Empty(t, record.SPINAnalysis.Implication)
	assert.NotNil(t, record.SPINAnalysis.Implication)
	assert.Equal(t, []string{"価値1"}, record.SPINAnalysis.NeedPayoff)
}

func TestExtractAnalysis_MissingCustomerNameGetsPlaceholder(t *testing.T) {
	reply := "```json\n{\"summary\": \"要約のみ\"}\n```"

	record := ExtractAnalysis(reply)
	require.NotNil(t, record)
	assert.Equal(t, "不明", record.CustomerName)
	assert.NotNil(t, record.ActionPlan)
	assert.NotNil(t, record.Strengths)
	assert.NotNil(t, record.Improvements)
}
