package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"jarvis/db"
	"jarvis/models"

	"github.com/samber/lo"
)

var (
	ErrInvalidRole = errors.New("role must be either 'user' or 'assistant'")
	ErrExport      = errors.New("failed to export conversation")
)

// TranscriptService owns the bounded in-memory transcript and persists it
// through the repository after every mutation. Persistence failures are
// logged and swallowed so a storage problem never breaks the chat flow.
type TranscriptService struct {
	repo       db.TranscriptRepository
	maxHistory int
	messages   []models.Message
}

func NewTranscriptService(repo db.TranscriptRepository, maxHistory int) *TranscriptService {
	s := &TranscriptService{
		repo:       repo,
		maxHistory: maxHistory,
		messages:   []models.Message{},
	}

	messages, err := repo.Load()
	if err != nil {
		log.Printf("[WARN] Could not load conversation history: %v", err)
		return s
	}

	s.messages = messages
	log.Printf("[INFO] Loaded %d messages from conversation history", len(messages))
	return s
}

// Add appends a message with the current timestamp, trims the transcript
// to the configured maximum and persists the result.
func (s *TranscriptService) Add(role, text string) error {
	if role != models.RoleUser && role != models.RoleAssistant {
		log.Printf("[ERROR] Rejected message with invalid role %q", role)
		return ErrInvalidRole
	}

	s.messages = append(s.messages, models.Message{
		Role:      role,
		Message:   text,
		Timestamp: time.Now().Format(time.RFC3339),
	})

	if len(s.messages) > s.maxHistory {
		s.messages = s.messages[len(s.messages)-s.maxHistory:]
	}

	s.persist()
	return nil
}

// History returns a copy of the last n messages. n <= 0 yields an empty
// slice.
func (s *TranscriptService) History(lastN int) []models.Message {
	if lastN <= 0 {
		return []models.Message{}
	}
	if lastN > len(s.messages) {
		lastN = len(s.messages)
	}
	history := make([]models.Message, lastN)
	copy(history, s.messages[len(s.messages)-lastN:])
	return history
}

// All returns a copy of the full transcript.
func (s *TranscriptService) All() []models.Message {
	all := make([]models.Message, len(s.messages))
	copy(all, s.messages)
	return all
}

// ContextBlock renders the last n messages for prompt injection. Empty
// history renders as the empty string.
func (s *TranscriptService) ContextBlock(lastN int) string {
	history := s.History(lastN)
	if len(history) == 0 {
		return ""
	}

	parts := []string{"Previous conversation:"}
	for _, msg := range history {
		prefix := "User"
		if msg.Role == models.RoleAssistant {
			prefix = "Assistant"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", prefix, msg.Message))
	}
	return strings.Join(parts, "\n")
}

// FormattedHistory renders the last n messages for display.
func (s *TranscriptService) FormattedHistory(lastN int) string {
	history := s.History(lastN)
	if len(history) == 0 {
		return "No conversation history."
	}

	lines := make([]string, 0, len(history))
	for _, msg := range history {
		label := "User"
		if msg.Role == models.RoleAssistant {
			label = "JARVIS"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, msg.Message))
	}
	return strings.Join(lines, "\n")
}

func (s *TranscriptService) Clear() {
	log.Printf("[INFO] Clearing conversation history")
	s.messages = []models.Message{}
	s.persist()
}

// Export writes the full transcript to a human-readable text file and
// returns the path written. An empty filename derives one from the
// current timestamp.
func (s *TranscriptService) Export(filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("conversation_export_%s.txt", time.Now().Format("20060102_150405"))
	}

	var b strings.Builder
	b.WriteString("JARVIS Conversation Export\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, msg := range s.messages {
		label := "User"
		if msg.Role == models.RoleAssistant {
			label = "JARVIS"
		}
		b.WriteString(fmt.Sprintf("[%s] %s:\n", msg.Timestamp, label))
		b.WriteString(msg.Message + "\n\n")
		b.WriteString(strings.Repeat("-", 50) + "\n\n")
	}

	if err := os.WriteFile(filename, []byte(b.String()), 0644); err != nil {
		log.Printf("[ERROR] Failed to export conversation to %s: %v", filename, err)
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}

	log.Printf("[INFO] Exported %d messages to %s", len(s.messages), filename)
	return filename, nil
}

func (s *TranscriptService) Statistics() models.ConversationStats {
	userCount := lo.CountBy(s.messages, func(msg models.Message) bool {
		return msg.Role == models.RoleUser
	})
	return models.ConversationStats{
		TotalMessages:     len(s.messages),
		UserMessages:      userCount,
		AssistantMessages: len(s.messages) - userCount,
	}
}

func (s *TranscriptService) persist() {
	if err := s.repo.Save(s.messages); err != nil {
		log.Printf("[WARN] Could not save conversation history: %v", err)
	}
}
