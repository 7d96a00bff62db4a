package entities

import "time"

// TurnRole identifies the author of a conversation turn
type TurnRole string

const (
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
)

// IsValid checks if the turn role is valid
func (r TurnRole) IsValid() bool {
	return r == TurnRoleUser || r == TurnRoleAssistant
}

// Turn is one message in a coaching conversation. Turns are immutable once
// created; a conversation only ever grows by appending. The server holds no
// conversation state: the client resends the full turn list on every call.
type Turn struct {
	Role      TurnRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurn creates a turn stamped with the current time
func NewTurn(role TurnRole, content string) Turn {
	return Turn{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// LastAssistantTurn returns the most recent assistant turn, or false when the
// conversation has none.
func LastAssistantTurn(turns []Turn) (Turn, bool) {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == TurnRoleAssistant {
			return turns[i], true
		}
	}
	return Turn{}, false
}

// ValidateTurns checks that every turn carries a known role and non-empty
// content.
func ValidateTurns(turns []Turn) error {
	if len(turns) == 0 {
		return ErrEmptyConversation
	}
	for _, t := range turns {
		if !t.Role.IsValid() {
			return ErrInvalidTurnRole
		}
		if t.Content == "" {
			return ErrEmptyTurnContent
		}
	}
	return nil
}
