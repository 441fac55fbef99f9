package assistant

import (
	"path/filepath"
	"strings"
	"testing"

	"jarvis/db"
	"jarvis/models"
	"jarvis/services"
)

func newTestTranscript(t *testing.T) *services.TranscriptService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	return services.NewTranscriptService(db.NewFileTranscriptRepository(path), 50)
}

func TestBuildPromptLayout(t *testing.T) {
	role, _ := RoleByKey("general")
	transcript := newTestTranscript(t)

	prompt := BuildPrompt(role, "what's the weather?", transcript, DefaultContextDepth)
	lines := strings.Split(prompt, "\n")

	if !strings.HasPrefix(prompt, role.SystemPrompt) {
		t.Error("prompt does not start with the role's system prompt")
	}
	if lines[len(lines)-1] != "Assistant:" {
		t.Errorf("prompt last line = %q, expected %q", lines[len(lines)-1], "Assistant:")
	}
	if lines[len(lines)-2] != "User: what's the weather?" {
		t.Errorf("prompt user line = %q", lines[len(lines)-2])
	}
	if strings.Contains(prompt, "Previous conversation:") {
		t.Error("prompt includes a context block with no history")
	}
}

func TestBuildPromptIncludesContext(t *testing.T) {
	role, _ := RoleByKey("tutor")
	transcript := newTestTranscript(t)
	transcript.Add(models.RoleUser, "teach me recursion")
	transcript.Add(models.RoleAssistant, "A function that calls itself.")

	prompt := BuildPrompt(role, "give me an example", transcript, DefaultContextDepth)

	for _, want := range []string{
		"Previous conversation:",
		"User: teach me recursion",
		"Assistant: A function that calls itself.",
		"User: give me an example",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if !strings.HasSuffix(prompt, "Assistant:") {
		t.Error("prompt does not end with the Assistant: cue")
	}

	// Context must appear between system prompt and the user line.
	contextIdx := strings.Index(prompt, "Previous conversation:")
	userIdx := strings.Index(prompt, "User: give me an example")
	if contextIdx > userIdx {
		t.Error("context block appears after the current user input")
	}
}

func TestBuildPromptDepthZeroOmitsContext(t *testing.T) {
	role, _ := RoleByKey("general")
	transcript := newTestTranscript(t)
	transcript.Add(models.RoleUser, "earlier message")

	prompt := BuildPrompt(role, "hi", transcript, 0)
	if strings.Contains(prompt, "earlier message") {
		t.Error("prompt with depth 0 includes history")
	}
}

func TestBuildPromptNilTranscript(t *testing.T) {
	role, _ := RoleByKey("general")
	prompt := BuildPrompt(role, "hi", nil, DefaultContextDepth)

	if !strings.Contains(prompt, "User: hi") || !strings.HasSuffix(prompt, "Assistant:") {
		t.Errorf("prompt with nil transcript malformed: %q", prompt)
	}
}

func TestGreeting(t *testing.T) {
	coder, _ := RoleByKey("coder")
	greeting := Greeting(coder)

	if !strings.Contains(greeting, "JARVIS (Coding Assistant)") {
		t.Errorf("coder greeting = %q, expected it to contain the display name", greeting)
	}
	if greeting != Greeting(coder) {
		t.Error("Greeting is not deterministic")
	}

	general, _ := RoleByKey("general")
	if !strings.Contains(Greeting(general), "your personal AI assistant") {
		t.Errorf("general greeting = %q", Greeting(general))
	}
}

func TestFormatErrorResponse(t *testing.T) {
	got := FormatErrorResponse("quota exceeded")
	if !strings.Contains(got, "I apologize, but I encountered an issue: quota exceeded") {
		t.Errorf("FormatErrorResponse = %q", got)
	}
	if !strings.Contains(got, "Please try again or rephrase your request.") {
		t.Errorf("FormatErrorResponse missing trailing guidance: %q", got)
	}
}
