package models

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversational turn half. Timestamp is kept as an
// RFC 3339 string so persisted files round-trip byte-for-byte.
type Message struct {
	Role      string `json:"role"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// TranscriptFile is the on-disk shape of the persisted conversation.
// Field names match existing history files and must not change.
type TranscriptFile struct {
	Messages    []Message `json:"messages"`
	LastUpdated string    `json:"last_updated"`
}

type ConversationStats struct {
	TotalMessages     int `json:"total_messages"`
	UserMessages      int `json:"user_messages"`
	AssistantMessages int `json:"assistant_messages"`
}
