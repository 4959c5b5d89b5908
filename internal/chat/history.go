package chat

import (
	"time"

	"go-hfchat/internal/llm"
)

// Turn stores a single message in the conversation
type Turn struct {
	Role      llm.Role
	Content   string
	Timestamp time.Time
}

// History is the ordered list of past turns resent with each request.
type History struct {
	systemPrompt string
	// limit caps how many turns Messages returns. Zero means unlimited.
	limit int
	turns []Turn
	now   func() time.Time
}

// NewHistory creates an empty history. The system prompt, when set, always
// leads the messages and survives Reset.
func NewHistory(systemPrompt string, limit int) *History {
	return &History{
		systemPrompt: systemPrompt,
		limit:        limit,
		turns:        make([]Turn, 0),
		now:          time.Now,
	}
}

// Append adds a turn to the end of the history.
func (h *History) Append(role llm.Role, content string) {
	h.turns = append(h.turns, Turn{
		Role:      role,
		Content:   content,
		Timestamp: h.now(),
	})
}

// Messages returns the messages to send for the next request.
func (h *History) Messages() []llm.Message {
	start := 0
	if h.limit > 0 && len(h.turns) > h.limit {
		start = len(h.turns) - h.limit
		// Never open the window on an assistant reply
		for start < len(h.turns) && h.turns[start].Role != llm.RoleUser {
			start++
		}
	}

	messages := make([]llm.Message, 0, len(h.turns)-start+1)
	if h.systemPrompt != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: h.systemPrompt})
	}
	for _, turn := range h.turns[start:] {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	return messages
}

// Turns returns a copy of the recorded turns.
func (h *History) Turns() []Turn {
	turns := make([]Turn, len(h.turns))
	copy(turns, h.turns)
	return turns
}

// Len returns the number of recorded turns.
func (h *History) Len() int {
	return len(h.turns)
}

// Reset forgets every turn.
func (h *History) Reset() {
	h.turns = h.turns[:0]
}

// truncate drops turns beyond n.
func (h *History) truncate(n int) {
	if n < len(h.turns) {
		h.turns = h.turns[:n]
	}
}
