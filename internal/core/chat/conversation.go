// Package chat answers questions about the current video using retrieved
// transcript context.
package chat

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of a conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Conversation is an append-only sequence of turns, scoped to one video.
type Conversation struct {
	turns []Turn
}

// Append adds a turn to the end of the conversation.
func (c *Conversation) Append(role Role, text string) {
	c.turns = append(c.turns, Turn{Role: role, Text: text})
}

// Turns returns a copy of the conversation in order.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	return len(c.turns)
}

// Clear discards all turns. Called when the active video changes.
func (c *Conversation) Clear() {
	c.turns = nil
}
