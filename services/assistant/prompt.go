package assistant

import (
	"fmt"
	"strings"

	"jarvis/models"
	"jarvis/services"
)

// DefaultContextDepth is how many recent messages are injected into each
// outbound prompt.
const DefaultContextDepth = 10

// BuildPrompt assembles the outbound prompt: system prompt, recent
// conversation context, the user line, and a trailing "Assistant:" cue.
// The layout and literal cue tokens are a contract with the completion
// model; changing them changes model behavior.
func BuildPrompt(role models.Role, userInput string, transcript *services.TranscriptService, contextDepth int) string {
	parts := []string{role.SystemPrompt, ""}

	if transcript != nil {
		if context := transcript.ContextBlock(contextDepth); context != "" {
			parts = append(parts, context, "")
		}
	}

	parts = append(parts, fmt.Sprintf("User: %s", userInput))
	parts = append(parts, "Assistant:")

	return strings.Join(parts, "\n")
}

// Greeting renders the role's greeting with its display name substituted.
func Greeting(role models.Role) string {
	return fmt.Sprintf(role.GreetingTemplate, role.Name)
}

// FormatErrorResponse wraps a failure detail in the assistant's voice.
func FormatErrorResponse(detail string) string {
	return fmt.Sprintf("I apologize, but I encountered an issue: %s. Please try again or rephrase your request.", detail)
}
