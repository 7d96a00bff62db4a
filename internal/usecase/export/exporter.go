package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

// Archiver stores exported reports in object storage
type Archiver interface {
	ArchiveReport(ctx context.Context, objectName, markdown string) error
}

// Report is a rendered export: the document body plus the suggested
// download filename.
type Report struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Body        string `json:"body"`
}

// Exporter renders a saved debrief into a human-readable Markdown report.
// Rendering is a pure transform; archiving to object storage is optional
// and best-effort.
type Exporter struct {
	archiver Archiver
	logger   *zap.Logger
}

// NewExporter creates an exporter. The archiver may be nil when object
// storage is not configured.
func NewExporter(archiver Archiver, logger *zap.Logger) *Exporter {
	return &Exporter{archiver: archiver, logger: logger}
}

// Export renders the record and, when storage is configured, archives a
// copy under reports/<id>.md. Archive failures never fail the export.
func (e *Exporter) Export(ctx context.Context, record entities.HistoryRecord) Report {
	body := RenderMarkdown(record)

	report := Report{
		Filename:    exportFilename(record),
		ContentType: "text/markdown; charset=utf-8",
		Body:        body,
	}

	if e.archiver != nil && record.ID != "" {
		objectName := fmt.Sprintf("reports/%s.md", record.ID)
		if err := e.archiver.ArchiveReport(ctx, objectName, body); err != nil {
			e.logger.Warn("failed to archive report", zap.String("id", record.ID), zap.Error(err))
		}
	}

	return report
}

// RenderMarkdown produces the report document: header, basic info, SPIN
// breakdown with scores, action plan, strengths/improvements and the full
// transcript.
func RenderMarkdown(record entities.HistoryRecord) string {
	analysis := record.Analysis
	var b strings.Builder

	b.WriteString("# 商談レポート\n\n")
	fmt.Fprintf(&b, "**日付**: %s\n\n", record.Date)
	fmt.Fprintf(&b, "**顧客名**: %s\n\n", record.CustomerName)

	if analysis.Summary != "" {
		b.WriteString("## 基本情報\n\n")
		fmt.Fprintf(&b, "%s\n\n", analysis.Summary)
	}

	b.WriteString("## SPIN分析\n\n")
	writeSPINSection(&b, "S（状況）", analysis.SPINAnalysis.Situation, analysis.Score.Situation)
	writeSPINSection(&b, "P（問題）", analysis.SPINAnalysis.Problem, analysis.Score.Problem)
	writeSPINSection(&b, "I（示唆）", analysis.SPINAnalysis.Implication, analysis.Score.Implication)
	writeSPINSection(&b, "N（解決）", analysis.SPINAnalysis.NeedPayoff, analysis.Score.NeedPayoff)
	fmt.Fprintf(&b, "**総合スコア**: %d/100\n\n", analysis.Score.Overall)

	writeListSection(&b, "アクションプラン", analysis.ActionPlan)
	writeListSection(&b, "良かった点", analysis.Strengths)
	writeListSection(&b, "改善点", analysis.Improvements)

	if len(record.Messages) > 0 {
		b.WriteString("## 商談議事録\n\n")
		for _, msg := range record.Messages {
			label := "AIマネージャー"
			if msg.Role == entities.TurnRoleUser {
				label = "営業担当"
			}
			fmt.Fprintf(&b, "**[%s]** %s\n\n", label, msg.Content)
		}
	}

	fmt.Fprintf(&b, "---\n出力日時: %s\n", time.Now().Format("2006/01/02 15:04"))

	return b.String()
}

func writeSPINSection(b *strings.Builder, label string, items []string, score int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s** (%d/100): %s\n\n", label, score, strings.Join(items, "、"))
}

func writeListSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

// exportFilename builds the download name, replacing path separators the
// slash-formatted date would otherwise introduce.
func exportFilename(record entities.HistoryRecord) string {
	date := strings.ReplaceAll(record.Date, "/", "-")
	name := record.CustomerName
	if name == "" {
		name = "不明"
	}
	return fmt.Sprintf("商談レポート_%s_%s.md", name, date)
}
