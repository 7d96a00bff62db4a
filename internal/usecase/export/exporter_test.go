package export

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

func sampleRecord() entities.HistoryRecord {
	return entities.HistoryRecord{
		ID:           "rec-1",
		CustomerName: "ABC商事",
		Date:         "2026/9/1",
		Messages: []entities.Turn{
			{Role: entities.TurnRoleAssistant, Content: "今日の訪問目的を教えてください。"},
			{Role: entities.TurnRoleUser, Content: "提案です"},
		},
		Analysis: entities.MeetingRecord{
			ID:           "rec-1",
			CustomerName: "ABC商事",
			Summary:      "新規提案の商談。反応は良好。",
			SPINAnalysis: entities.SPINAnalysis{
				Situation:   []string{"現行システムは5年前に導入"},
				Problem:     []string{"集計に3日かかる"},
				Implication: []string{},
				NeedPayoff:  []string{"自動化で1日に短縮"},
			},
			Score:      entities.Score{Situation: 75, Problem: 60, NeedPayoff: 50, Overall: 56},
			ActionPlan: []string{"見積書を送付する"},
			Strengths:  []string{"ヒアリングが丁寧"},
		},
	}
}

func TestRenderMarkdown(t *testing.T) {
	body := RenderMarkdown(sampleRecord())

	assert.Contains(t, body, "# 商談レポート")
	assert.Contains(t, body, "**顧客名**: ABC商事")
	assert.Contains(t, body, "新規提案の商談。反応は良好。")
	assert.Contains(t, body, "**S（状況）** (75/100): 現行システムは5年前に導入")
	assert.Contains(t, body, "**総合スコア**: 56/100")
	assert.Contains(t, body, "- 見積書を送付する")
	assert.Contains(t, body, "**[営業担当]** 提案です")
	// Empty SPIN dimensions are omitted rather than rendered blank
	assert.NotContains(t, body, "I（示唆）")
}

func TestExport_FilenameSanitized(t *testing.T) {
	exporter := NewExporter(nil, zap.NewNop())

	report := exporter.Export(context.Background(), sampleRecord())
	assert.Equal(t, "商談レポート_ABC商事_2026-9-1.md", report.Filename)
	assert.Equal(t, "text/markdown; charset=utf-8", report.ContentType)
}

func TestExport_EmptyCustomerNameFallsBack(t *testing.T) {
	record := sampleRecord()
	record.CustomerName = ""

	exporter := NewExporter(nil, zap.NewNop())
	report := exporter.Export(context.Background(), record)
	assert.Contains(t, report.Filename, "不明")
}

type recordingArchiver struct {
	objectName string
	body       string
	err        error
}

func (a *recordingArchiver) ArchiveReport(_ context.Context, objectName, markdown string) error {
	if a.err != nil {
		return a.err
	}
	a.objectName = objectName
	a.body = markdown
	return nil
}

func TestExport_ArchivesWhenConfigured(t *testing.T) {
	archiver := &recordingArchiver{}
	exporter := NewExporter(archiver, zap.NewNop())

	report := exporter.Export(context.Background(), sampleRecord())
	assert.Equal(t, "reports/rec-1.md", archiver.objectName)
	assert.Equal(t, report.Body, archiver.body)
}

func TestExport_ArchiveFailureDoesNotFail(t *testing.T) {
	archiver := &recordingArchiver{err: errors.New("bucket gone")}
	exporter := NewExporter(archiver, zap.NewNop())

	report := exporter.Export(context.Background(), sampleRecord())
	assert.NotEmpty(t, report.Body)
}
