package coach

import (
	"strings"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

// Stage is the interviewer's position in the scripted debrief flow. The
// script itself lives in the system prompt; the stage machine mirrors it in
// code so replies can be validated instead of trusted blindly.
type Stage int

const (
	// StageGreeting is the seed turn asking for company and impression.
	StageGreeting Stage = iota
	// StagePurpose asks for the visit's objective.
	StagePurpose
	// StageImpression asks how the meeting went.
	StageImpression
	// StageDeepDive probes the four SPIN dimensions, one question per turn.
	StageDeepDive
	// StageClose is reached when the rep signals the session is over.
	StageClose
)

func (s Stage) String() string {
	switch s {
	case StageGreeting:
		return "greeting"
	case StagePurpose:
		return "purpose"
	case StageImpression:
		return "impression"
	case StageDeepDive:
		return "deep_dive"
	case StageClose:
		return "close"
	}
	return "unknown"
}

// closingSignals are the phrases that end the debrief and trigger the
// analysis block.
var closingSignals = []string{"終了", "ありがとう", "ありがとうございました", "以上です", "おわり"}

// IsClosingSignal reports whether a user message signals session end
func IsClosingSignal(content string) bool {
	for _, signal := range closingSignals {
		if strings.Contains(content, signal) {
			return true
		}
	}
	return false
}

// InferStage determines the current stage from the conversation so far.
// The first three interviewer turns are fixed by the script: greeting,
// purpose, impression. From the third user answer on, the interviewer is
// in the deep-dive until the user signals closing.
func InferStage(turns []entities.Turn) Stage {
	userTurns := 0
	for _, turn := range turns {
		if turn.Role == entities.TurnRoleUser {
			userTurns++
			if IsClosingSignal(turn.Content) {
				return StageClose
			}
		}
	}

	switch userTurns {
	case 0:
		return StageGreeting
	case 1:
		return StagePurpose
	case 2:
		return StageImpression
	default:
		return StageDeepDive
	}
}

// CountQuestions counts sentences ending in a question mark, accepting both
// the ASCII and the full-width form.
func CountQuestions(content string) int {
	return strings.Count(content, "?") + strings.Count(content, "？")
}

// ValidateReply checks a generated reply against the stage contract. During
// the deep-dive each turn must carry at most one question; the scripted
// purpose and impression turns must contain their fixed question. This is a
// soft heuristic over generated text, so violations are reported rather
// than fatal — the caller decides whether to log or drop the reply.
func ValidateReply(stage Stage, reply string) []string {
	var violations []string

	switch stage {
	case StagePurpose:
		if !strings.Contains(reply, PurposeQuestion) {
			violations = append(violations, "purpose turn missing the scripted question")
		}
	case StageImpression:
		if !strings.Contains(reply, ImpressionQuestion) {
			violations = append(violations, "impression turn missing the scripted question")
		}
	case StageDeepDive:
		if CountQuestions(reply) > 1 {
			violations = append(violations, "deep-dive turn asks more than one question")
		}
	case StageClose:
		if ExtractAnalysis(reply) == nil {
			violations = append(violations, "closing turn missing the analysis block")
		}
	}

	return violations
}
