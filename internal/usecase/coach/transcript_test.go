package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

func TestTranscriptAccumulator_MergesFinalAndInterim(t *testing.T) {
	ta := NewTranscriptAccumulator(nil)

	ta.SetInterim("えーびー")
	assert.Equal(t, "えーびー", ta.Text())

	// Interim text is replaced wholesale, not appended
	ta.SetInterim("えーびーしー")
	assert.Equal(t, "えーびーしー", ta.Text())

	ta.CommitFinal("ABC商事に訪問しました。")
	assert.Equal(t, "ABC商事に訪問しました。", ta.Text())

	ta.SetInterim("感触は")
	assert.Equal(t, "ABC商事に訪問しました。感触は", ta.Text())

	ta.CommitFinal("感触は良かったです。")
	assert.Equal(t, "ABC商事に訪問しました。感触は良かったです。", ta.Text())
}

func TestTranscriptAccumulator_AppliesCustomWordsOnCommit(t *testing.T) {
	words := []entities.CustomWord{
		{Reading: "えーびーしーしょうじ", Word: "ABC商事"},
	}
	ta := NewTranscriptAccumulator(words)

	// Interim fragments are left untouched
	ta.SetInterim("えーびーしーしょうじ")
	assert.Equal(t, "えーびーしーしょうじ", ta.Text())

	ta.CommitFinal("えーびーしーしょうじに行きました")
	assert.Equal(t, "ABC商事に行きました", ta.Text())
}

func TestTranscriptAccumulator_Reset(t *testing.T) {
	ta := NewTranscriptAccumulator(nil)
	ta.CommitFinal("一回目の発話")
	ta.Reset()
	assert.Equal(t, "", ta.Text())
}

func TestApplyCustomWords_RegistrationOrder(t *testing.T) {
	words := []entities.CustomWord{
		{Reading: "すぴん", Word: "SPIN"},
		{Reading: "SPIN営業", Word: "SPIN営業術"},
		{Reading: "", Word: "無視される"},
	}

	got := ApplyCustomWords("すぴん営業の研修", words)
	assert.Equal(t, "SPIN営業術の研修", got)
}
