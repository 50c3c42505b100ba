package chat

import "time"

// Role tags a turn's author within a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged message unit in a session log. ID and
// CreatedAt are stamped by the session store on append.
type Turn struct {
	ID        string    `json:"id,omitempty"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// NewTurn builds an unstamped turn.
func NewTurn(role Role, content string) Turn {
	return Turn{Role: role, Content: content}
}

// SessionKey identifies one bounded conversation log.
type SessionKey struct {
	AgentID string
	UserID  string
}

// String renders the key in the form used for log fields and Redis keys.
func (k SessionKey) String() string {
	return k.AgentID + ":" + k.UserID
}
